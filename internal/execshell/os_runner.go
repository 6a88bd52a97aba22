package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sort"
)

const (
	environmentAssignmentSeparatorConstant = "="
	gitTerminalPromptVariableConstant      = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledConstant      = "0"
	gitPagerVariableConstant               = "GIT_PAGER"
	gitPagerDisabledConstant               = "cat"
)

var nonInteractiveEnvironment = map[string]string{
	gitTerminalPromptVariableConstant: gitTerminalPromptDisabledConstant,
	gitPagerVariableConstant:          gitPagerDisabledConstant,
}

// OSCommandRunner executes commands through os/exec without a terminal.
// Standard input is never inherited, so git cannot consume the input
// the authors command reads from standard input.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the command and reports non-zero exits through ExecutionResult.ExitCode.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), append([]string{}, command.Details.Arguments...)...)
	executable.Dir = command.Details.WorkingDirectory
	executable.Env = buildEnvironment(command.Details.EnvironmentVariables)
	executable.Stdin = bytes.NewReader(command.Details.StandardInput)

	var standardOutput bytes.Buffer
	var standardError bytes.Buffer
	executable.Stdout = &standardOutput
	executable.Stderr = &standardError

	result := ExecutionResult{}
	runError := executable.Run()
	if runError != nil {
		var exitError *exec.ExitError
		if !errors.As(runError, &exitError) {
			return ExecutionResult{}, runError
		}
		result.ExitCode = exitError.ExitCode()
	}

	result.StandardOutput = standardOutput.String()
	result.StandardError = standardError.String()
	return result, nil
}

// buildEnvironment appends the non-interactive git settings and the command overrides,
// in key order, to the process environment. Later entries win.
func buildEnvironment(overrides map[string]string) []string {
	merged := make(map[string]string, len(nonInteractiveEnvironment)+len(overrides))
	for key, value := range nonInteractiveEnvironment {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	environment := append([]string{}, os.Environ()...)
	for _, key := range keys {
		environment = append(environment, key+environmentAssignmentSeparatorConstant+merged[key])
	}
	return environment
}
