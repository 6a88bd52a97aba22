package authors_test

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/gitaudit/internal/authors"
	"github.com/temirov/gitaudit/internal/execshell"
	"github.com/temirov/gitaudit/internal/identity"
)

const (
	testRepositoryOnePathConstant = "/tmp/workspace/repository-one"
	testRepositoryTwoPathConstant = "/tmp/workspace/repository-two"
	testBrokenRepositoryConstant  = "/tmp/workspace/broken"
	testWorkspaceRootConstant     = "/tmp/workspace"
	testCombinedShortlog          = "    40\tJane Doe <jane@corp.com>\n" +
		"    20\tJane Doe <jane@home.org>\n" +
		"     5\tjdoe <12345+jdoe@users.noreply.github.com>\n" +
		"     5\tBob Smith <bob@a.com>\n" +
		"     3\tCI <jane@corp.com>\n" +
		"     1\tBob Smith <bob@b.com>\n"
	testExpectedStatisticsComment = "# Total identities: 6\n" +
		"# Duplicate identities: 3\n" +
		"# Unique contributors: 3\n" +
		"# Consolidation rate: 50.0%\n" +
		"# Clusters: 2\n"
)

var errStubRepositoryBroken = errors.New("fatal: not a git repository")

var (
	testRepositoryOneAuthorLog = buildAuthorLog(
		authorLogEntry{line: "Jane Doe\tjane@corp.com", commits: 25},
		authorLogEntry{line: "jdoe\t12345+jdoe@users.noreply.github.com", commits: 5},
		authorLogEntry{line: "Bob Smith\tbob@a.com", commits: 5},
	)
	testRepositoryTwoAuthorLog = buildAuthorLog(
		authorLogEntry{line: "Jane Doe\tjane@home.org", commits: 20},
		authorLogEntry{line: "Jane Doe\tjane@corp.com", commits: 15},
		authorLogEntry{line: "CI\tjane@corp.com", commits: 3},
		authorLogEntry{line: "Bob Smith\tbob@b.com", commits: 1},
	)
)

type authorLogEntry struct {
	line    string
	commits int
}

func buildAuthorLog(entries ...authorLogEntry) string {
	var builder strings.Builder
	for _, entry := range entries {
		builder.WriteString(strings.Repeat(entry.line+"\n", entry.commits))
	}
	return builder.String()
}

type stubRepositoryDiscoverer struct {
	repositories  []string
	receivedRoots []string
	err           error
}

func (discoverer *stubRepositoryDiscoverer) DiscoverRepositories(roots []string) ([]string, error) {
	discoverer.receivedRoots = append([]string{}, roots...)
	if discoverer.err != nil {
		return nil, discoverer.err
	}
	return append([]string{}, discoverer.repositories...), nil
}

type stubGitExecutor struct {
	outputs          map[string]string
	failures         map[string]error
	executedCommands []execshell.CommandDetails
}

func newStubGitExecutor() *stubGitExecutor {
	return &stubGitExecutor{
		outputs: map[string]string{
			testRepositoryOnePathConstant: testRepositoryOneAuthorLog,
			testRepositoryTwoPathConstant: testRepositoryTwoAuthorLog,
		},
		failures: map[string]error{
			testBrokenRepositoryConstant: errStubRepositoryBroken,
		},
	}
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.executedCommands = append(executor.executedCommands, details)
	if failure, failing := executor.failures[details.WorkingDirectory]; failing {
		return execshell.ExecutionResult{}, failure
	}
	return execshell.ExecutionResult{StandardOutput: executor.outputs[details.WorkingDirectory]}, nil
}

type recordingMailmapWriter struct {
	path    string
	mode    authors.MailmapMode
	content string
	calls   int
}

func (writer *recordingMailmapWriter) Write(mailmapPath string, mode authors.MailmapMode, content string) error {
	writer.calls++
	writer.path = mailmapPath
	writer.mode = mode
	writer.content = content
	return nil
}

type decodedReport struct {
	Clusters []struct {
		Canonical    identity.Record `json:"canonical" yaml:"canonical"`
		TotalCommits int             `json:"total_commits" yaml:"total_commits"`
		Reason       string          `json:"reason" yaml:"reason"`
		Aliases      []struct {
			Name        string  `json:"name" yaml:"name"`
			Email       string  `json:"email" yaml:"email"`
			CommitCount int     `json:"commit_count" yaml:"commit_count"`
			Confidence  float64 `json:"confidence" yaml:"confidence"`
			Reason      string  `json:"reason" yaml:"reason"`
		} `json:"aliases" yaml:"aliases"`
	} `json:"clusters" yaml:"clusters"`
	Statistics *identity.Statistics `json:"statistics" yaml:"statistics"`
}

func fixtureRecords() []identity.Record {
	records, _ := authors.ParseShortlog(strings.NewReader(testCombinedShortlog), nil)
	return records
}
