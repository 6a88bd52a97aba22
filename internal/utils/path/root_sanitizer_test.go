package pathutils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/gitaudit/internal/utils/path"
)

const (
	testHomeDirectoryConstant = "/home/auditor"
	testWorkspaceRootConstant = "/srv/workspace"
)

func TestRootSanitizerSanitize(testInstance *testing.T) {
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})
	sanitizer := pathutils.NewRootSanitizer(homeExpander)

	testCases := []struct {
		name          string
		inputs        []string
		expectedRoots []string
	}{
		{
			name:          "trims_and_expands_home",
			inputs:        []string{"  ~/Projects\t", testWorkspaceRootConstant},
			expectedRoots: []string{filepath.Join(testHomeDirectoryConstant, "Projects"), testWorkspaceRootConstant},
		},
		{
			name:          "drops_duplicates_keeping_first",
			inputs:        []string{testWorkspaceRootConstant, testWorkspaceRootConstant + "/", testWorkspaceRootConstant},
			expectedRoots: []string{testWorkspaceRootConstant},
		},
		{
			name:          "drops_nested_roots_in_either_order",
			inputs:        []string{filepath.Join(testWorkspaceRootConstant, "service"), testWorkspaceRootConstant, filepath.Join(testWorkspaceRootConstant, "tools")},
			expectedRoots: []string{testWorkspaceRootConstant},
		},
		{
			name:          "keeps_sibling_with_shared_prefix",
			inputs:        []string{testWorkspaceRootConstant, testWorkspaceRootConstant + "-archive"},
			expectedRoots: []string{testWorkspaceRootConstant, testWorkspaceRootConstant + "-archive"},
		},
		{
			name:          "blank_inputs_yield_nil",
			inputs:        []string{"", "   ", "\n"},
			expectedRoots: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedRoots, sanitizer.Sanitize(testCase.inputs))
		})
	}
}

func TestHomeExpanderExpand(testInstance *testing.T) {
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	testCases := []struct {
		name         string
		input        string
		expectedPath string
	}{
		{name: "bare_tilde", input: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_prefix", input: "~/repos/.mailmap", expectedPath: filepath.Join(testHomeDirectoryConstant, "repos", ".mailmap")},
		{name: "absolute_untouched", input: testWorkspaceRootConstant, expectedPath: testWorkspaceRootConstant},
		{name: "other_user_untouched", input: "~someone/repos", expectedPath: "~someone/repos"},
		{name: "empty_untouched", input: "", expectedPath: ""},
		{name: "home_variable", input: "$HOME/src", expectedPath: filepath.Join(testHomeDirectoryConstant, "src")},
		{name: "braced_home_variable", input: "${HOME}/.mailmap", expectedPath: filepath.Join(testHomeDirectoryConstant, ".mailmap")},
		{name: "other_variable_kept", input: "/tmp/$PROJECT/repo", expectedPath: "/tmp/$PROJECT/repo"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, homeExpander.Expand(testCase.input))
		})
	}
}
