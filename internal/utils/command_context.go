package utils

import (
	"context"
	"strings"
)

type configurationFileContextKey struct{}

// CommandContextAccessor stores the configuration file chosen by the root
// command so that subcommands can report where their settings came from.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath returns a child of parentContext carrying configurationFilePath.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFileContextKey{}, strings.TrimSpace(configurationFilePath))
}

// ConfigurationFilePath reports the configuration file recorded in executionContext.
// It returns false when no file was recorded or only embedded defaults were used.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, _ := executionContext.Value(configurationFileContextKey{}).(string)
	return configurationFilePath, len(configurationFilePath) > 0
}
