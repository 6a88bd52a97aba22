// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger translates command lifecycle events into concise
// messages while detailed telemetry keeps flowing through structured loggers.
// The lipgloss styles and table helpers render author reports for terminals
// and fall back to plain text when the output is not a color terminal.
package ui
