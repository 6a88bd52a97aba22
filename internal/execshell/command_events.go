package execshell

// CommandEventObserver receives the lifecycle of every git invocation.
// The console logger in internal/ui implements it for human-readable output.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed is called when the process could not run at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}

func resolveCommandEventObserver(observer CommandEventObserver) CommandEventObserver {
	if observer == nil {
		return noopCommandEventObserver{}
	}
	return observer
}
