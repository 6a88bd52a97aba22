package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant         = "~"
	homeVariableNameConstant    = "HOME"
	userProfileVariableConstant = "USERPROFILE"
	environmentVariableMarker   = "$"
	forwardSlashConstant        = "/"
)

var pathSeparatorCharacters = forwardSlashConstant + string(os.PathSeparator)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander resolves the user home shortcuts that appear in roots, mailmap
// paths and configuration search paths: a leading "~", "~/" and the $HOME
// (or $USERPROFILE) variable. "~user" forms are left unchanged.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand returns candidatePath with home shortcuts resolved. Paths are returned
// unchanged when the home directory cannot be determined.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || len(candidatePath) == 0 {
		return candidatePath
	}

	expandedPath := candidatePath
	if strings.Contains(expandedPath, environmentVariableMarker) {
		expandedPath = expander.expandHomeVariables(expandedPath)
	}

	if !strings.HasPrefix(expandedPath, tildeSymbolConstant) {
		return expandedPath
	}

	remainder := strings.TrimPrefix(expandedPath, tildeSymbolConstant)
	if len(remainder) > 0 && !strings.ContainsRune(pathSeparatorCharacters, rune(remainder[0])) {
		return expandedPath
	}

	homeDirectory := expander.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return expandedPath
	}
	if len(remainder) == 0 {
		return homeDirectory
	}
	return filepath.Join(homeDirectory, remainder[1:])
}

func (expander *HomeExpander) expandHomeVariables(candidatePath string) string {
	return os.Expand(candidatePath, func(variableName string) string {
		if variableName == homeVariableNameConstant || variableName == userProfileVariableConstant {
			if homeDirectory := expander.resolveHomeDirectory(); len(homeDirectory) > 0 {
				return homeDirectory
			}
		}
		return environmentVariableMarker + variableName
	})
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}
