package identity

const (
	reasonNoneLabelConstant = "none"
)

// ReasonCode names the heuristic that produced a match decision.
type ReasonCode string

// Supported reason codes.
const (
	ReasonNone                           ReasonCode = ""
	ReasonExactEmail                     ReasonCode = "exact-email"
	ReasonSameLocalPart                  ReasonCode = "same-local-part"
	ReasonGitHubNoReply                  ReasonCode = "github-noreply"
	ReasonGitHubNoReplyMatch             ReasonCode = "github-noreply-match"
	ReasonSimilarNameSameDomain          ReasonCode = "similar-name-same-domain"
	ReasonSimilarName                    ReasonCode = "similar-name"
	ReasonExactEmailNameMismatch         ReasonCode = "exact-email-name-mismatch"
	ReasonSameLocalPartNameMismatch      ReasonCode = "same-local-part-name-mismatch"
	ReasonGitHubNoReplyNameMismatch      ReasonCode = "github-noreply-name-mismatch"
	ReasonGitHubNoReplyMatchNameMismatch ReasonCode = "github-noreply-match-name-mismatch"
)

var nameMismatchVariants = map[ReasonCode]ReasonCode{
	ReasonExactEmail:         ReasonExactEmailNameMismatch,
	ReasonSameLocalPart:      ReasonSameLocalPartNameMismatch,
	ReasonGitHubNoReply:      ReasonGitHubNoReplyNameMismatch,
	ReasonGitHubNoReplyMatch: ReasonGitHubNoReplyMatchNameMismatch,
}

// ReasonCodes lists every reason code in declaration order.
func ReasonCodes() []ReasonCode {
	return []ReasonCode{
		ReasonNone,
		ReasonExactEmail,
		ReasonSameLocalPart,
		ReasonGitHubNoReply,
		ReasonGitHubNoReplyMatch,
		ReasonSimilarNameSameDomain,
		ReasonSimilarName,
		ReasonExactEmailNameMismatch,
		ReasonSameLocalPartNameMismatch,
		ReasonGitHubNoReplyNameMismatch,
		ReasonGitHubNoReplyMatchNameMismatch,
	}
}

// String returns the reason label, using "none" for the empty reason.
func (reason ReasonCode) String() string {
	if reason == ReasonNone {
		return reasonNoneLabelConstant
	}
	return string(reason)
}

// IsKnown reports whether the reason belongs to the supported set.
func (reason ReasonCode) IsKnown() bool {
	for _, knownReason := range ReasonCodes() {
		if reason == knownReason {
			return true
		}
	}
	return false
}

// IsEmailReason reports whether the reason comes from an email signal, demoted or not.
func (reason ReasonCode) IsEmailReason() bool {
	if _, isBase := nameMismatchVariants[reason]; isBase {
		return true
	}
	for _, demotedReason := range nameMismatchVariants {
		if reason == demotedReason {
			return true
		}
	}
	return false
}

// WithNameMismatch returns the demoted variant of an email reason.
// Reasons without a demoted variant are returned unchanged.
func (reason ReasonCode) WithNameMismatch() ReasonCode {
	demotedReason, exists := nameMismatchVariants[reason]
	if !exists {
		return reason
	}
	return demotedReason
}
