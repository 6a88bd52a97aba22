package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

const (
	gitMetadataDirectoryNameConstant      = ".git"
	unreadablePathMessageConstant         = "Skipping unreadable path during repository discovery"
	repositoryDiscoveredMessageConstant   = "Discovered repository"
	logFieldPathConstant                  = "path"
	logFieldRootConstant                  = "root"
	absoluteRootResolutionMessageConstant = "Could not resolve absolute root path"
)

var defaultSkippedDirectoryNames = []string{"node_modules", "vendor"}

// FilesystemRepositoryDiscoverer locates git repositories on disk.
type FilesystemRepositoryDiscoverer struct {
	logger                *zap.Logger
	skippedDirectoryNames map[string]struct{}
}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer backed by filepath.WalkDir.
// Dependency directories such as node_modules and vendor are not descended into.
func NewFilesystemRepositoryDiscoverer(logger *zap.Logger) *FilesystemRepositoryDiscoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	skippedDirectoryNames := make(map[string]struct{}, len(defaultSkippedDirectoryNames))
	for _, directoryName := range defaultSkippedDirectoryNames {
		skippedDirectoryNames[directoryName] = struct{}{}
	}
	return &FilesystemRepositoryDiscoverer{logger: logger, skippedDirectoryNames: skippedDirectoryNames}
}

// DiscoverRepositories walks the provided roots and returns the sorted, de-duplicated
// absolute paths of directories containing a .git entry. Unreadable paths are logged and skipped.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(roots []string) ([]string, error) {
	seen := make(map[string]struct{})
	repositories := make([]string, 0)

	for _, root := range roots {
		absoluteRoot, absoluteError := filepath.Abs(root)
		if absoluteError != nil {
			discoverer.logger.Warn(absoluteRootResolutionMessageConstant, zap.String(logFieldRootConstant, root), zap.Error(absoluteError))
			continue
		}

		walkError := filepath.WalkDir(absoluteRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				discoverer.logger.Debug(unreadablePathMessageConstant, zap.String(logFieldPathConstant, path), zap.Error(walkError))
				if directoryEntry != nil && directoryEntry.IsDir() && path != absoluteRoot {
					return fs.SkipDir
				}
				return nil
			}

			entryName := directoryEntry.Name()
			if directoryEntry.IsDir() && path != absoluteRoot {
				if _, skipped := discoverer.skippedDirectoryNames[entryName]; skipped {
					return fs.SkipDir
				}
			}

			if entryName != gitMetadataDirectoryNameConstant {
				return nil
			}

			repositoryPath := filepath.Dir(path)
			if _, alreadySeen := seen[repositoryPath]; !alreadySeen {
				seen[repositoryPath] = struct{}{}
				repositories = append(repositories, repositoryPath)
				discoverer.logger.Debug(repositoryDiscoveredMessageConstant, zap.String(logFieldPathConstant, repositoryPath))
			}

			if directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		})
		if walkError != nil {
			return nil, walkError
		}
	}

	sort.Strings(repositories)
	return repositories, nil
}
