package pathutils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const windowsOperatingSystemConstant = "windows"

// RootSanitizer normalizes the root directories scanned for repositories.
type RootSanitizer struct {
	homeExpander *HomeExpander
}

// NewRootSanitizer constructs a RootSanitizer. A nil expander uses the operating system home directory.
func NewRootSanitizer(homeExpander *HomeExpander) *RootSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &RootSanitizer{homeExpander: homeExpander}
}

// Sanitize trims and expands candidate roots, then drops blanks, duplicates, and
// roots nested inside an earlier or shorter root. Input order is preserved.
// It returns nil when no candidate survives.
func (sanitizer *RootSanitizer) Sanitize(candidateRoots []string) []string {
	expander := NewHomeExpander()
	if sanitizer != nil && sanitizer.homeExpander != nil {
		expander = sanitizer.homeExpander
	}

	type rootCandidate struct {
		value      string
		comparison string
	}

	candidates := make([]rootCandidate, 0, len(candidateRoots))
	for _, candidateRoot := range candidateRoots {
		trimmedRoot := strings.TrimSpace(candidateRoot)
		if len(trimmedRoot) == 0 {
			continue
		}
		expandedRoot := filepath.Clean(expander.Expand(trimmedRoot))
		candidates = append(candidates, rootCandidate{value: expandedRoot, comparison: comparisonPath(expandedRoot)})
	}

	sanitizedRoots := make([]string, 0, len(candidates))
	for candidateIndex, candidate := range candidates {
		covered := false
		for otherIndex, other := range candidates {
			if otherIndex == candidateIndex {
				continue
			}
			if candidate.comparison == other.comparison {
				covered = otherIndex < candidateIndex
			} else {
				covered = isNestedPath(other.comparison, candidate.comparison)
			}
			if covered {
				break
			}
		}
		if !covered {
			sanitizedRoots = append(sanitizedRoots, candidate.value)
		}
	}

	if len(sanitizedRoots) == 0 {
		return nil
	}
	return sanitizedRoots
}

func comparisonPath(path string) string {
	comparison := path
	if absolutePath, absoluteError := filepath.Abs(path); absoluteError == nil {
		comparison = absolutePath
	}
	comparison = filepath.Clean(comparison)
	if runtime.GOOS == windowsOperatingSystemConstant {
		comparison = strings.ToLower(comparison)
	}
	return comparison
}

func isNestedPath(parent string, candidate string) bool {
	if len(candidate) <= len(parent) || !strings.HasPrefix(candidate, parent) {
		return false
	}
	if parent[len(parent)-1] == os.PathSeparator {
		return true
	}
	return candidate[len(parent)] == os.PathSeparator
}
