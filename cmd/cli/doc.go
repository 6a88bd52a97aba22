// Package cli constructs the gitaudit command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. Configuration is layered from embedded defaults, config.yaml in
// the working directory or ~/.gitaudit, an explicit --config file, GITAUDIT_
// environment variables, and finally command flags.
package cli
