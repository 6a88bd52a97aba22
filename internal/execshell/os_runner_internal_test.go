package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildEnvironmentAppendsOverridesAfterDefaults(testInstance *testing.T) {
	testCases := []struct {
		name         string
		overrides    map[string]string
		expectedTail []string
	}{
		{
			name:         "defaults only",
			expectedTail: []string{"GIT_PAGER=cat", "GIT_TERMINAL_PROMPT=0"},
		},
		{
			name:         "override replaces default",
			overrides:    map[string]string{"GIT_PAGER": "less", "LC_ALL": "C"},
			expectedTail: []string{"GIT_PAGER=less", "GIT_TERMINAL_PROMPT=0", "LC_ALL=C"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			environment := buildEnvironment(testCase.overrides)
			require.GreaterOrEqual(subtest, len(environment), len(testCase.expectedTail))
			require.Equal(subtest, testCase.expectedTail, environment[len(environment)-len(testCase.expectedTail):])
		})
	}
}
