// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with structured zap logging, typed
// failure errors, and lifecycle notifications for observers. OSCommandRunner
// is the default os/exec backed runner. gitaudit uses the package to run git
// against the repositories it audits.
package execshell
