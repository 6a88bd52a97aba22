package identity

import (
	"regexp"
	"strings"
)

const (
	// DefaultMinimumConfidence is the threshold applied when callers do not supply one.
	DefaultMinimumConfidence = 0.6

	exactNameSimilarityConstant                = 1.0
	substringNameSimilarityConstant            = 0.9
	tokenOverlapThresholdConstant              = 0.5
	tokenOverlapBaseSimilarityConstant         = 0.7
	tokenOverlapWeightConstant                 = 0.2
	exactEmailConfidenceConstant               = 1.0
	sameLocalPartConfidenceConstant            = 0.8
	sameLocalPartMinimumLengthConstant         = 3
	githubNoReplyConfidenceConstant            = 0.95
	githubNoReplyMatchConfidenceConstant       = 0.7
	similarNameThresholdConstant               = 0.8
	similarNameSameDomainWeightConstant        = 0.9
	similarNameWeightConstant                  = 0.7
	nameMismatchThresholdConstant              = 0.3
	nameMismatchPenaltyConstant                = 0.6
	githubNoReplyAddressPatternConstant        = `^(?:\d+\+)?([^@]+)@users\.noreply\.github\.com$`
	githubNoReplyUsernameSubmatchIndexConstant = 1
)

var githubNoReplyAddressPattern = regexp.MustCompile(githubNoReplyAddressPatternConstant)

// NameSimilarity returns a [0,1] similarity between two display names.
// Signals are applied in a fixed precedence: exact normalized equality,
// substring containment, token overlap, and finally edit distance.
func NameSimilarity(firstName string, secondName string) float64 {
	normalizedFirst := NormalizeName(firstName)
	normalizedSecond := NormalizeName(secondName)

	if normalizedFirst == normalizedSecond {
		return exactNameSimilarityConstant
	}
	if len(normalizedFirst) == 0 || len(normalizedSecond) == 0 {
		return 0
	}
	if strings.Contains(normalizedFirst, normalizedSecond) || strings.Contains(normalizedSecond, normalizedFirst) {
		return substringNameSimilarityConstant
	}

	tokenOverlap := tokenJaccard(normalizedFirst, normalizedSecond)
	if tokenOverlap > tokenOverlapThresholdConstant {
		return tokenOverlapBaseSimilarityConstant + tokenOverlap*tokenOverlapWeightConstant
	}

	longestLength := max(len(normalizedFirst), len(normalizedSecond))
	distance := levenshteinDistance(normalizedFirst, normalizedSecond)
	return 1 - float64(distance)/float64(longestLength)
}

// EmailsMatch compares two addresses using exact, local-part, and GitHub no-reply signals.
// The returned result carries IsMatch for any recognized signal regardless of threshold.
func EmailsMatch(firstEmail string, secondEmail string) MatchResult {
	if strings.EqualFold(firstEmail, secondEmail) {
		return MatchResult{IsMatch: true, Confidence: exactEmailConfidenceConstant, Reason: ReasonExactEmail}
	}

	firstLocalPart := EmailLocalPart(firstEmail)
	secondLocalPart := EmailLocalPart(secondEmail)
	if firstLocalPart == secondLocalPart && len(firstLocalPart) > sameLocalPartMinimumLengthConstant {
		return MatchResult{IsMatch: true, Confidence: sameLocalPartConfidenceConstant, Reason: ReasonSameLocalPart}
	}

	firstUsername, firstIsNoReply := githubNoReplyUsername(firstEmail)
	secondUsername, secondIsNoReply := githubNoReplyUsername(secondEmail)

	switch {
	case firstIsNoReply && secondIsNoReply:
		if firstUsername == secondUsername {
			return MatchResult{IsMatch: true, Confidence: githubNoReplyConfidenceConstant, Reason: ReasonGitHubNoReply}
		}
	case firstIsNoReply:
		if secondLocalPart == firstUsername {
			return MatchResult{IsMatch: true, Confidence: githubNoReplyMatchConfidenceConstant, Reason: ReasonGitHubNoReplyMatch}
		}
	case secondIsNoReply:
		if firstLocalPart == secondUsername {
			return MatchResult{IsMatch: true, Confidence: githubNoReplyMatchConfidenceConstant, Reason: ReasonGitHubNoReplyMatch}
		}
	}

	return MatchResult{}
}

// Scorer compares identity records and decides matches against a confidence threshold.
type Scorer struct {
	minimumConfidence float64
}

// NewScorer constructs a Scorer that reports matches at or above minimumConfidence.
func NewScorer(minimumConfidence float64) Scorer {
	return Scorer{minimumConfidence: minimumConfidence}
}

// MinimumConfidence returns the threshold used for IsMatch.
func (scorer Scorer) MinimumConfidence() float64 {
	return scorer.minimumConfidence
}

// Score computes the confidence that two records describe the same contributor.
// Email evidence takes precedence; names are consulted when emails disagree and
// to demote email matches whose names are clearly unrelated.
func (scorer Scorer) Score(first Record, second Record) MatchResult {
	emailResult := EmailsMatch(first.Email, second.Email)
	nameScore := NameSimilarity(first.Name, second.Name)

	confidence := 0.0
	reason := ReasonNone

	switch {
	case emailResult.IsMatch:
		confidence = emailResult.Confidence
		reason = emailResult.Reason
		if nameScore < nameMismatchThresholdConstant {
			confidence *= nameMismatchPenaltyConstant
			reason = reason.WithNameMismatch()
		}
	case nameScore > similarNameThresholdConstant:
		if EmailDomain(first.Email) == EmailDomain(second.Email) {
			confidence = nameScore * similarNameSameDomainWeightConstant
			reason = ReasonSimilarNameSameDomain
		} else {
			confidence = nameScore * similarNameWeightConstant
			reason = ReasonSimilarName
		}
	}

	return MatchResult{
		IsMatch:    confidence >= scorer.minimumConfidence,
		Confidence: confidence,
		Reason:     reason,
	}
}

func githubNoReplyUsername(email string) (string, bool) {
	submatches := githubNoReplyAddressPattern.FindStringSubmatch(strings.ToLower(email))
	if submatches == nil {
		return "", false
	}
	return submatches[githubNoReplyUsernameSubmatchIndexConstant], true
}

func tokenJaccard(firstNormalized string, secondNormalized string) float64 {
	firstTokens := tokenSet(firstNormalized)
	secondTokens := tokenSet(secondNormalized)
	if len(firstTokens) == 0 || len(secondTokens) == 0 {
		return 0
	}

	intersectionSize := 0
	for token := range firstTokens {
		if _, shared := secondTokens[token]; shared {
			intersectionSize++
		}
	}
	unionSize := len(firstTokens) + len(secondTokens) - intersectionSize
	return float64(intersectionSize) / float64(unionSize)
}

func tokenSet(normalized string) map[string]struct{} {
	tokens := strings.Fields(normalized)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
