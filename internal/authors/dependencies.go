package authors

import (
	"context"

	"github.com/temirov/gitaudit/internal/execshell"
	"github.com/temirov/gitaudit/internal/identity"
)

// RepositoryDiscoverer finds git repositories rooted under the provided paths.
type RepositoryDiscoverer interface {
	DiscoverRepositories(roots []string) ([]string, error)
}

// GitExecutor exposes the subset of shell execution used by the authors command.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// HistorySource produces the author records of a single repository.
type HistorySource interface {
	CollectRecords(executionContext context.Context, repositoryPath string) ([]identity.Record, error)
}

// MailmapWriter persists alias map content.
type MailmapWriter interface {
	Write(mailmapPath string, mode MailmapMode, content string) error
}
