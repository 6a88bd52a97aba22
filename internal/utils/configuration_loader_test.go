package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitaudit/internal/utils"
)

const (
	testEnvironmentPrefixConstant     = "TESTGITAUDIT"
	testConfigurationNameConstant     = "config"
	testConfigurationTypeConstant     = "yaml"
	testConfigurationFileNameConstant = "config.yaml"
	testLogLevelKeyConstant           = "common.log_level"
	testMinimumConfidenceKeyConstant  = "tools.authors.min_confidence"
	testRootsKeyConstant              = "tools.authors.roots"
	testLogLevelEnvironmentConstant   = "TESTGITAUDIT_COMMON_LOG_LEVEL"
	testConfidenceEnvironmentConstant = "TESTGITAUDIT_TOOLS_AUTHORS_MIN_CONFIDENCE"
	testRootsEnvironmentConstant      = "TESTGITAUDIT_TOOLS_AUTHORS_ROOTS"
	testEmbeddedConfigurationConstant = "common:\n  log_level: warn\ntools:\n  authors:\n    min_confidence: 70\n"
	testFileConfigurationConstant     = "common:\n  log_level: debug\n"
)

type configurationFixture struct {
	Common struct {
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"common"`
	Tools struct {
		Authors struct {
			Roots             []string `mapstructure:"roots"`
			MinimumConfidence int      `mapstructure:"min_confidence"`
		} `mapstructure:"authors"`
	} `mapstructure:"tools"`
}

func testDefaultValues() map[string]any {
	return map[string]any{
		testLogLevelKeyConstant:          "info",
		testMinimumConfidenceKeyConstant: 60,
		testRootsKeyConstant:             []string{"."},
	}
}

func TestConfigurationLoaderPrecedence(testInstance *testing.T) {
	testCases := []struct {
		name               string
		embedded           bool
		file               bool
		environment        map[string]string
		expectedLogLevel   string
		expectedConfidence int
		expectedRoots      []string
	}{
		{name: "defaults only", expectedLogLevel: "info", expectedConfidence: 60, expectedRoots: []string{"."}},
		{name: "embedded over defaults", embedded: true, expectedLogLevel: "warn", expectedConfidence: 70, expectedRoots: []string{"."}},
		{name: "file over embedded", embedded: true, file: true, expectedLogLevel: "debug", expectedConfidence: 70, expectedRoots: []string{"."}},
		{
			name:               "environment over file",
			embedded:           true,
			file:               true,
			environment:        map[string]string{testLogLevelEnvironmentConstant: "error", testConfidenceEnvironmentConstant: "85"},
			expectedLogLevel:   "error",
			expectedConfidence: 85,
			expectedRoots:      []string{"."},
		},
		{
			name:               "comma separated environment list",
			environment:        map[string]string{testRootsEnvironmentConstant: "/srv/git,/home/dev/src"},
			expectedLogLevel:   "info",
			expectedConfidence: 60,
			expectedRoots:      []string{"/srv/git", "/home/dev/src"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			for environmentKey, environmentValue := range testCase.environment {
				subtest.Setenv(environmentKey, environmentValue)
			}

			configurationDirectory := subtest.TempDir()
			if testCase.file {
				writeConfigurationFile(subtest, configurationDirectory, testFileConfigurationConstant)
			}

			loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{configurationDirectory})
			if testCase.embedded {
				loader.SetEmbeddedConfiguration([]byte(testEmbeddedConfigurationConstant), testConfigurationTypeConstant)
			}

			var configuration configurationFixture
			metadata, loadError := loader.LoadConfiguration("", testDefaultValues(), &configuration)
			require.NoError(subtest, loadError)
			require.Equal(subtest, testCase.expectedLogLevel, configuration.Common.LogLevel)
			require.Equal(subtest, testCase.expectedConfidence, configuration.Tools.Authors.MinimumConfidence)
			require.Equal(subtest, testCase.expectedRoots, configuration.Tools.Authors.Roots)
			if testCase.file {
				require.Equal(subtest, filepath.Join(configurationDirectory, testConfigurationFileNameConstant), metadata.ConfigFileUsed)
			} else {
				require.Empty(subtest, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderSearchesHomeDirectory(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()
	testInstance.Setenv("HOME", homeDirectory)

	userConfigurationDirectory := filepath.Join(homeDirectory, ".gitaudit")
	require.NoError(testInstance, os.MkdirAll(userConfigurationDirectory, 0o755))
	writeConfigurationFile(testInstance, userConfigurationDirectory, testFileConfigurationConstant)

	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir(), "~/.gitaudit"})

	var configuration configurationFixture
	metadata, loadError := loader.LoadConfiguration("", testDefaultValues(), &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "debug", configuration.Common.LogLevel)
	require.Equal(testInstance, filepath.Join(userConfigurationDirectory, testConfigurationFileNameConstant), metadata.ConfigFileUsed)
}

func TestConfigurationLoaderExplicitFile(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()
	testInstance.Setenv("HOME", homeDirectory)
	writeConfigurationFile(testInstance, homeDirectory, testFileConfigurationConstant)

	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	var configuration configurationFixture
	metadata, loadError := loader.LoadConfiguration("~/"+testConfigurationFileNameConstant, testDefaultValues(), &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "debug", configuration.Common.LogLevel)
	require.Equal(testInstance, filepath.Join(homeDirectory, testConfigurationFileNameConstant), metadata.ConfigFileUsed)

	_, missingError := loader.LoadConfiguration(filepath.Join(homeDirectory, "missing.yaml"), testDefaultValues(), &configuration)
	require.Error(testInstance, missingError)
}

func TestConfigurationLoaderRejectsMalformedEmbeddedConfiguration(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)
	loader.SetEmbeddedConfiguration([]byte("common: [unterminated"), testConfigurationTypeConstant)

	var configuration configurationFixture
	_, loadError := loader.LoadConfiguration("", nil, &configuration)
	require.ErrorContains(testInstance, loadError, "failed to merge embedded configuration")
}

func writeConfigurationFile(testInstance *testing.T, directory string, content string) {
	testInstance.Helper()
	require.NoError(testInstance, os.WriteFile(filepath.Join(directory, testConfigurationFileNameConstant), []byte(content), 0o600))
}
