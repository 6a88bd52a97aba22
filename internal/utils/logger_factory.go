package utils

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	unsupportedValueTemplateConstant = "%w: %q"
	loggerBuildErrorTemplateConstant = "failed to build logger: %w"
	standardErrorSinkConstant        = "stderr"
	jsonEncodingConstant             = "json"
	consoleEncodingConstant          = "console"
	consoleTimeLayoutConstant        = "15:04:05"
)

var (
	// ErrUnsupportedLogLevel indicates an unknown log level name.
	ErrUnsupportedLogLevel = errors.New("unsupported log level")
	// ErrUnsupportedLogFormat indicates an unknown log format name.
	ErrUnsupportedLogFormat = errors.New("unsupported log format")
)

// LogLevel names a logging threshold accepted in configuration and flags.
type LogLevel string

// Supported log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat names a log encoding accepted in configuration and flags.
type LogFormat string

// Supported log formats. Structured writes JSON lines; console writes
// human-readable lines and enables the git progress messages.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

// ParseLogLevel matches name case-insensitively against the supported levels.
func ParseLogLevel(name string) (zapcore.Level, error) {
	switch LogLevel(strings.ToLower(strings.TrimSpace(name))) {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo:
		return zapcore.InfoLevel, nil
	case LogLevelWarn:
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InvalidLevel, fmt.Errorf(unsupportedValueTemplateConstant, ErrUnsupportedLogLevel, name)
	}
}

// ParseLogFormat matches name case-insensitively against the supported formats.
func ParseLogFormat(name string) (LogFormat, error) {
	format := LogFormat(strings.ToLower(strings.TrimSpace(name)))
	if format != LogFormatStructured && format != LogFormatConsole {
		return "", fmt.Errorf(unsupportedValueTemplateConstant, ErrUnsupportedLogFormat, name)
	}
	return format, nil
}

// LoggerFactory builds the stderr loggers used by every command.
type LoggerFactory struct{}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger builds a logger writing to stderr, so reports on stdout stay machine readable.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	level, levelError := ParseLogLevel(string(requestedLogLevel))
	if levelError != nil {
		return nil, levelError
	}
	format, formatError := ParseLogFormat(string(requestedLogFormat))
	if formatError != nil {
		return nil, formatError
	}

	configuration := zap.NewProductionConfig()
	configuration.Encoding = jsonEncodingConstant
	if format == LogFormatConsole {
		configuration.Encoding = consoleEncodingConstant
		configuration.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		configuration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		configuration.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(consoleTimeLayoutConstant)
		configuration.DisableCaller = true
		configuration.DisableStacktrace = true
	}
	configuration.Level = zap.NewAtomicLevelAt(level)
	configuration.OutputPaths = []string{standardErrorSinkConstant}
	configuration.ErrorOutputPaths = []string{standardErrorSinkConstant}

	logger, buildError := configuration.Build()
	if buildError != nil {
		return nil, fmt.Errorf(loggerBuildErrorTemplateConstant, buildError)
	}
	return logger, nil
}
