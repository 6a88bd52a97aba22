package tests

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationGitExecutableConstant      = "git"
	integrationAuthorNameEnvironmentKey   = "GIT_AUTHOR_NAME"
	integrationAuthorEmailEnvironmentKey  = "GIT_AUTHOR_EMAIL"
	integrationCommitterNameEnvironment   = "GIT_COMMITTER_NAME"
	integrationCommitterEmailEnvironment  = "GIT_COMMITTER_EMAIL"
	integrationEnvironmentAssignmentToken = "="
)

type integrationCommitAuthor struct {
	name    string
	email   string
	commits int
}

func runIntegrationCommand(testInstance *testing.T, repositoryRoot string, environment []string, timeout time.Duration, arguments []string) string {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	command := exec.CommandContext(executionContext, "go", arguments...)
	command.Dir = repositoryRoot
	command.Env = append(append([]string{}, os.Environ()...), environment...)

	outputBytes, runError := command.CombinedOutput()
	outputText := string(outputBytes)
	requireNoError(testInstance, runError, outputText)
	return outputText
}

func createRepositoryWithAuthors(testInstance *testing.T, repositoryPath string, commitAuthors []integrationCommitAuthor) {
	testInstance.Helper()

	runGit(testInstance, "", nil, "init", "--initial-branch=main", repositoryPath)
	for _, commitAuthor := range commitAuthors {
		authorEnvironment := []string{
			integrationAuthorNameEnvironmentKey + integrationEnvironmentAssignmentToken + commitAuthor.name,
			integrationAuthorEmailEnvironmentKey + integrationEnvironmentAssignmentToken + commitAuthor.email,
			integrationCommitterNameEnvironment + integrationEnvironmentAssignmentToken + commitAuthor.name,
			integrationCommitterEmailEnvironment + integrationEnvironmentAssignmentToken + commitAuthor.email,
		}
		for commitIndex := 0; commitIndex < commitAuthor.commits; commitIndex++ {
			runGit(testInstance, repositoryPath, authorEnvironment, "commit", "--allow-empty", "--no-gpg-sign", "-m", "change by "+commitAuthor.name)
		}
	}
}

func runGit(testInstance *testing.T, workingDirectory string, environment []string, arguments ...string) {
	testInstance.Helper()

	command := exec.Command(integrationGitExecutableConstant, arguments...)
	if len(workingDirectory) > 0 {
		command.Dir = workingDirectory
	}
	command.Env = append(append([]string{}, os.Environ()...), environment...)

	outputBytes, runError := command.CombinedOutput()
	require.NoError(testInstance, runError, string(outputBytes))
}

func repositoryRootDirectory(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	return filepath.Dir(workingDirectory)
}

func filterStructuredOutput(rawOutput string) string {
	lines := strings.Split(rawOutput, "\n")
	var filtered []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "{") {
			continue
		}
		filtered = append(filtered, line)
	}
	if len(filtered) == 0 {
		return ""
	}
	return strings.Join(filtered, "\n") + "\n"
}

func requireNoError(testInstance *testing.T, err error, output string) {
	testInstance.Helper()
	if err != nil {
		testInstance.Fatalf("command failed: %v\n%s", err, output)
	}
}
