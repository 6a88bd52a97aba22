package execshell

import (
	"fmt"
	"slices"
	"strings"
)

const (
	argumentSeparatorConstant            = " "
	workingDirectorySuffixTemplate       = "%s (in %s)"
	standardErrorSuffixTemplateConstant  = ": %s"
	unknownFailureMessageConstant        = "unknown error"
	defaultWorkingDirectoryLabelConstant = "current directory"
)

// lifecycleTemplates holds one format string per lifecycle stage. Every
// template takes the subject first; failure templates then take the exit code
// and a stderr suffix, execution-failure templates the error text.
type lifecycleTemplates struct {
	started          string
	succeeded        string
	failed           string
	executionFailure string
}

// gitMessageRule selects friendly templates for a git subcommand, optionally
// only when requiredArgument is present. Its subject is the working directory.
type gitMessageRule struct {
	subcommand       string
	requiredArgument string
	templates        lifecycleTemplates
}

var gitMessageRules = []gitMessageRule{
	{
		subcommand: "log",
		templates: lifecycleTemplates{
			started:          "Reading commit authors in %s",
			succeeded:        "Read commit authors in %s",
			failed:           "Failed to read commit authors in %s (exit code %d%s)",
			executionFailure: "Unable to read commit authors in %s: %s",
		},
	},
	{
		subcommand: "shortlog",
		templates: lifecycleTemplates{
			started:          "Summarizing commit authors in %s",
			succeeded:        "Summarized commit authors in %s",
			failed:           "Failed to summarize commit authors in %s (exit code %d%s)",
			executionFailure: "Unable to summarize commit authors in %s: %s",
		},
	},
	{
		subcommand:       "rev-parse",
		requiredArgument: "--is-inside-work-tree",
		templates: lifecycleTemplates{
			started:          "Analyzing repository at %s",
			succeeded:        "%s is a Git repository",
			failed:           "Could not confirm %s is a Git repository (exit code %d%s)",
			executionFailure: "Could not analyze %s: %s",
		},
	},
}

// genericTemplates apply to any other command; their subject is the full command line.
var genericTemplates = lifecycleTemplates{
	started:          "Running %s",
	succeeded:        "Completed %s",
	failed:           "%s failed with exit code %d%s",
	executionFailure: "%s failed: %s",
}

// CommandMessageFormatter turns executor events into one-line, human-readable messages.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	templates, subject := formatter.resolve(command)
	return fmt.Sprintf(templates.started, subject)
}

// BuildSuccessMessage describes a command that exited with status zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	templates, subject := formatter.resolve(command)
	return fmt.Sprintf(templates.succeeded, subject)
}

// BuildFailureMessage describes a command that exited with a non-zero status.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	templates, subject := formatter.resolve(command)
	return fmt.Sprintf(templates.failed, subject, result.ExitCode, standardErrorSuffix(result.StandardError))
}

// BuildExecutionFailureMessage describes a command that could not be run.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	templates, subject := formatter.resolve(command)
	failureText := unknownFailureMessageConstant
	if failure != nil {
		failureText = failure.Error()
	}
	return fmt.Sprintf(templates.executionFailure, subject, failureText)
}

func (formatter CommandMessageFormatter) resolve(command ShellCommand) (lifecycleTemplates, string) {
	arguments := command.Details.Arguments
	if command.Name == CommandGit && len(arguments) > 0 {
		subcommand := strings.TrimSpace(arguments[0])
		for _, rule := range gitMessageRules {
			if rule.subcommand != subcommand {
				continue
			}
			if len(rule.requiredArgument) > 0 && !hasArgument(arguments, rule.requiredArgument) {
				continue
			}
			return rule.templates, workingDirectoryLabel(command.Details.WorkingDirectory)
		}
	}
	return genericTemplates, commandLine(command)
}

func commandLine(command ShellCommand) string {
	line := strings.Join(append([]string{string(command.Name)}, command.Details.Arguments...), argumentSeparatorConstant)
	if workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(workingDirectory) > 0 {
		return fmt.Sprintf(workingDirectorySuffixTemplate, line, workingDirectory)
	}
	return line
}

func workingDirectoryLabel(workingDirectory string) string {
	if trimmed := strings.TrimSpace(workingDirectory); len(trimmed) > 0 {
		return trimmed
	}
	return defaultWorkingDirectoryLabelConstant
}

func standardErrorSuffix(standardError string) string {
	if trimmed := strings.TrimSpace(standardError); len(trimmed) > 0 {
		return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmed)
	}
	return ""
}

func hasArgument(arguments []string, expected string) bool {
	return slices.ContainsFunc(arguments, func(argument string) bool {
		return strings.TrimSpace(argument) == expected
	})
}
