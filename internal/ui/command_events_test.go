package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gitaudit/internal/execshell"
	"github.com/temirov/gitaudit/internal/ui"
)

const testRepositoryDirectoryConstant = "/srv/git/platform"

var testShortlogCommand = execshell.ShellCommand{
	Name: execshell.CommandGit,
	Details: execshell.CommandDetails{
		Arguments:        []string{"shortlog", "--summary", "--numbered", "--email", "--all"},
		WorkingDirectory: testRepositoryDirectoryConstant,
	},
}

type observedEntry struct {
	level   zapcore.Level
	message string
}

func replayShortlogLifecycle(eventLogger *ui.ConsoleCommandEventLogger) {
	eventLogger.CommandStarted(testShortlogCommand)
	eventLogger.CommandCompleted(testShortlogCommand, execshell.ExecutionResult{})
	eventLogger.CommandCompleted(testShortlogCommand, execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: your current branch 'main' does not have any commits yet\n"})
	eventLogger.CommandExecutionFailed(testShortlogCommand, errors.New("exec: \"git\": executable file not found in $PATH"))
}

func TestConsoleCommandEventLoggerLevels(testInstance *testing.T) {
	allEntries := []observedEntry{
		{level: zapcore.InfoLevel, message: "Summarizing commit authors in /srv/git/platform"},
		{level: zapcore.InfoLevel, message: "Summarized commit authors in /srv/git/platform"},
		{level: zapcore.WarnLevel, message: "Failed to summarize commit authors in /srv/git/platform (exit code 128: fatal: your current branch 'main' does not have any commits yet)"},
		{level: zapcore.ErrorLevel, message: "Unable to summarize commit authors in /srv/git/platform: exec: \"git\": executable file not found in $PATH"},
	}

	testCases := []struct {
		name            string
		enabledLevel    zapcore.Level
		expectedEntries []observedEntry
	}{
		{name: "info shows every event", enabledLevel: zapcore.InfoLevel, expectedEntries: allEntries},
		{name: "warn keeps failures", enabledLevel: zapcore.WarnLevel, expectedEntries: allEntries[2:]},
		{name: "error keeps execution failures", enabledLevel: zapcore.ErrorLevel, expectedEntries: allEntries[3:]},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			observerCore, observedLogs := observer.New(testCase.enabledLevel)
			replayShortlogLifecycle(ui.NewConsoleCommandEventLogger(zap.New(observerCore)))

			var recordedEntries []observedEntry
			for _, entry := range observedLogs.All() {
				recordedEntries = append(recordedEntries, observedEntry{level: entry.Level, message: entry.Message})
			}
			require.Equal(subtest, testCase.expectedEntries, recordedEntries)
		})
	}
}

func TestConsoleCommandEventLoggerWithoutLogger(testInstance *testing.T) {
	var nilEventLogger *ui.ConsoleCommandEventLogger
	require.NotPanics(testInstance, func() {
		replayShortlogLifecycle(nilEventLogger)
		replayShortlogLifecycle(ui.NewConsoleCommandEventLogger(nil))
		replayShortlogLifecycle(&ui.ConsoleCommandEventLogger{})
	})
}
