// Package utils exposes reusable helpers consumed by the gitaudit commands.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// GITAUDIT_ environment variables through Viper. LoggerFactory builds zap
// loggers that write diagnostics to standard error so reports written to
// standard output stay machine readable.
package utils
