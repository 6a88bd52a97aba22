package identity

import "strings"

const (
	emailSeparatorConstant            = "@"
	nameTokenSeparatorConstant        = " "
	noReplyMarkerConstant             = "noreply"
	hyphenatedNoReplyMarkerConstant   = "no-reply"
	githubNoReplyDomainConstant       = "users.noreply.github.com"
	gitlabNoReplyDomainConstant       = "users.noreply.gitlab.com"
	subaddressSeparatorMarkerConstant = "+"
)

var noReplyMarkers = []string{
	noReplyMarkerConstant,
	hyphenatedNoReplyMarkerConstant,
	githubNoReplyDomainConstant,
	gitlabNoReplyDomainConstant,
	subaddressSeparatorMarkerConstant,
}

// NormalizeName lower-cases a display name, turns every character outside
// [a-z0-9] into a space, and collapses whitespace runs.
func NormalizeName(name string) string {
	lowered := strings.ToLower(name)
	var builder strings.Builder
	builder.Grow(len(lowered))
	for _, character := range lowered {
		if (character >= 'a' && character <= 'z') || (character >= '0' && character <= '9') {
			builder.WriteRune(character)
			continue
		}
		builder.WriteString(nameTokenSeparatorConstant)
	}
	return strings.Join(strings.Fields(builder.String()), nameTokenSeparatorConstant)
}

// EmailLocalPart returns the lower-cased text before the first "@".
func EmailLocalPart(email string) string {
	localPart, _, _ := strings.Cut(email, emailSeparatorConstant)
	return strings.ToLower(localPart)
}

// EmailDomain returns the lower-cased text after the first "@", or an empty string.
func EmailDomain(email string) string {
	_, domain, found := strings.Cut(email, emailSeparatorConstant)
	if !found {
		return ""
	}
	return strings.ToLower(domain)
}

// IsNoReplyAddress reports whether an address looks like a no-reply or sub-addressed alias.
func IsNoReplyAddress(email string) bool {
	lowered := strings.ToLower(email)
	for _, marker := range noReplyMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
