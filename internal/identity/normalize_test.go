package identity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitaudit/internal/identity"
)

func TestNormalizeName(testInstance *testing.T) {
	testCases := []struct {
		name         string
		input        string
		expectedName string
	}{
		{name: "punctuation_becomes_separator", input: "O'Brien-Smith", expectedName: "o brien smith"},
		{name: "whitespace_collapsed", input: "  Jane   DOE ", expectedName: "jane doe"},
		{name: "parenthetical_kept_as_token", input: "Jane Doe (Acme)", expectedName: "jane doe acme"},
		{name: "non_ascii_letters_dropped", input: "José Núñez", expectedName: "jos n ez"},
		{name: "digits_kept", input: "dev42", expectedName: "dev42"},
		{name: "empty", input: "", expectedName: ""},
		{name: "only_punctuation", input: "--- ...", expectedName: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedName, identity.NormalizeName(testCase.input))
		})
	}
}

func TestNormalizeNameEquatesSpellingVariants(testInstance *testing.T) {
	require.Equal(testInstance, identity.NormalizeName("O'Brien-Smith"), identity.NormalizeName("o brien   SMITH"))
}

func TestEmailDecomposition(testInstance *testing.T) {
	testCases := []struct {
		name              string
		email             string
		expectedLocalPart string
		expectedDomain    string
	}{
		{name: "mixed_case", email: "Jane.Doe@Example.COM", expectedLocalPart: "jane.doe", expectedDomain: "example.com"},
		{name: "missing_separator", email: "nodomain", expectedLocalPart: "nodomain", expectedDomain: ""},
		{name: "multiple_separators", email: "a@b@c", expectedLocalPart: "a", expectedDomain: "b@c"},
		{name: "empty", email: "", expectedLocalPart: "", expectedDomain: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedLocalPart, identity.EmailLocalPart(testCase.email))
			require.Equal(testInstance, testCase.expectedDomain, identity.EmailDomain(testCase.email))
		})
	}
}

func TestIsNoReplyAddress(testInstance *testing.T) {
	testCases := []struct {
		name          string
		email         string
		expectNoReply bool
	}{
		{name: "github_noreply", email: "123+jane@users.noreply.github.com", expectNoReply: true},
		{name: "gitlab_noreply", email: "jane@users.noreply.gitlab.com", expectNoReply: true},
		{name: "noreply_local_part", email: "NoReply@example.com", expectNoReply: true},
		{name: "hyphenated_no_reply", email: "no-reply@example.com", expectNoReply: true},
		{name: "subaddress", email: "jane+git@gmail.com", expectNoReply: true},
		{name: "regular_address", email: "jane@example.com", expectNoReply: false},
		{name: "empty", email: "", expectNoReply: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectNoReply, identity.IsNoReplyAddress(testCase.email))
		})
	}
}
