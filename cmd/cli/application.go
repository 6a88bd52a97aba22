package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gitaudit/internal/authors"
	"github.com/temirov/gitaudit/internal/utils"
)

const (
	applicationNameConstant             = "gitaudit"
	applicationShortDescriptionConstant = "Audit git history across repositories"
	applicationLongDescriptionConstant  = "gitaudit inspects the history of git repositories. The authors command groups commit identities that belong to the same contributor and can maintain .mailmap files."

	configFileFlagNameConstant  = "config"
	configFileFlagUsageConstant = "Configuration file to load after config.yaml from the working directory or ~/.gitaudit."
	logLevelFlagNameConstant    = "log-level"
	logLevelFlagUsageConstant   = "Log level: debug, info, warn, or error."
	logFormatFlagNameConstant   = "log-format"
	logFormatFlagUsageConstant  = "Log format: structured (JSON) or console."
	versionFlagNameConstant     = "version"
	versionFlagUsageConstant    = "Print the gitaudit version and exit."

	environmentPrefixConstant              = "GITAUDIT"
	configurationNameConstant              = "config"
	configurationTypeConstant              = "yaml"
	workingDirectorySearchPathConstant     = "."
	userConfigurationDirectoryConstant     = "~/.gitaudit"
	logLevelConfigurationKeyConstant       = "common.log_level"
	logFormatConfigurationKeyConstant      = "common.log_format"
	authorsConfigurationPrefixConstant     = "tools.authors"
	versionOutputTemplateConstant          = "%s version: %s\n"
	developmentVersionConstant             = "(devel)"
	configurationLoadErrorTemplateConstant = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant    = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant        = "unable to flush logger: %w"

	configurationLoadedMessageConstant = "configuration loaded"
	rootInvokedMessageConstant         = "gitaudit CLI executed"
	rootDiagnosticsMessageConstant     = "gitaudit CLI diagnostics"
	logFieldLogLevelConstant           = "log_level"
	logFieldLogFormatConstant          = "log_format"
	logFieldConfigFileConstant         = "config_file"
	logFieldCommandNameConstant        = "command_name"
	logFieldArgumentCountConstant      = "argument_count"
	logFieldArgumentsConstant          = "arguments"
)

// Version is set at build time with -ldflags "-X github.com/temirov/gitaudit/cmd/cli.Version=v1.2.3".
var Version string

// ApplicationConfiguration is the decoded form of config.yaml.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration holds the logging settings shared by all commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds per-command settings.
type ApplicationToolsConfiguration struct {
	Authors authors.CommandConfiguration `mapstructure:"authors"`
}

type persistentFlagValues struct {
	configurationFilePath string
	logLevel              string
	logFormat             string
	printVersion          bool
}

// Application owns the root command and the state shared with subcommands:
// the loaded configuration and the logger built from it.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	commandContextAccessor utils.CommandContextAccessor
	flags                  persistentFlagValues
	configuration          ApplicationConfiguration
	logger                 *zap.Logger
	versionResolver        func(context.Context) string
	exitFunction           func(int)
}

// NewApplication builds the gitaudit command tree.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{workingDirectorySearchPathConstant, userConfigurationDirectoryConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		logger:                 zap.NewNop(),
		versionResolver:        resolveBuildVersion,
		exitFunction:           os.Exit,
	}

	application.rootCommand = &cobra.Command{
		Use:               applicationNameConstant,
		Short:             applicationShortDescriptionConstant,
		Long:              applicationLongDescriptionConstant,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: application.beforeCommand,
		RunE:              application.runRootCommand,
	}
	application.rootCommand.SetContext(context.Background())
	application.bindPersistentFlags(application.rootCommand.PersistentFlags())
	application.registerCommands()

	return application
}

// Execute runs the command tree and flushes the logger.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.syncLogger(); syncError != nil {
		return errors.Join(executionError, fmt.Errorf(loggerSyncErrorTemplateConstant, syncError))
	}
	return executionError
}

// Execute builds a fresh application and runs it with os.Args.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) bindPersistentFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&application.flags.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	flagSet.StringVar(&application.flags.logLevel, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	flagSet.StringVar(&application.flags.logFormat, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	flagSet.BoolVar(&application.flags.printVersion, versionFlagNameConstant, false, versionFlagUsageConstant)
}

func (application *Application) registerCommands() {
	authorsBuilder := authors.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() authors.CommandConfiguration {
			return application.configuration.Tools.Authors
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	if authorsCommand, buildError := authorsBuilder.Build(); buildError == nil {
		application.rootCommand.AddCommand(authorsCommand)
	}
}

func (application *Application) beforeCommand(command *cobra.Command, _ []string) error {
	if application.flags.printVersion {
		fmt.Fprintf(command.OutOrStdout(), versionOutputTemplateConstant, applicationNameConstant, application.versionResolver(command.Context()))
		application.exitFunction(0)
		return nil
	}

	configurationFileUsed, loadError := application.loadConfiguration(command)
	if loadError != nil {
		return loadError
	}

	logger, loggerError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerError)
	}
	application.logger = logger
	application.logger.Debug(
		configurationLoadedMessageConstant,
		zap.String(logFieldLogLevelConstant, application.configuration.Common.LogLevel),
		zap.String(logFieldLogFormatConstant, application.configuration.Common.LogFormat),
		zap.String(logFieldConfigFileConstant, configurationFileUsed),
	)

	commandContext := application.commandContextAccessor.WithConfigurationFilePath(command.Context(), configurationFileUsed)
	command.SetContext(commandContext)
	command.Root().SetContext(commandContext)
	return nil
}

// loadConfiguration decodes defaults, files and environment into application.configuration
// and applies the logging flags, which take precedence over every other source.
func (application *Application) loadConfiguration(command *cobra.Command) (string, error) {
	defaultValues := authors.DefaultConfigurationValues(authorsConfigurationPrefixConstant)
	defaultValues[logLevelConfigurationKeyConstant] = string(utils.LogLevelInfo)
	defaultValues[logFormatConfigurationKeyConstant] = string(utils.LogFormatStructured)

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.flags.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return "", fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	if flagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.flags.logLevel
	}
	if flagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.flags.logFormat
	}
	return loadedConfiguration.ConfigFileUsed, nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	return strings.EqualFold(strings.TrimSpace(application.configuration.Common.LogFormat), string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	application.logger.Info(
		rootInvokedMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)
	application.logger.Debug(rootDiagnosticsMessageConstant, zap.Strings(logFieldArgumentsConstant, arguments))
	return command.Help()
}

// syncLogger ignores the errors returned when stderr is a terminal or a pipe.
func (application *Application) syncLogger() error {
	if application.logger == nil {
		return nil
	}
	syncError := application.logger.Sync()
	if errors.Is(syncError, syscall.ENOTSUP) || errors.Is(syncError, syscall.EINVAL) {
		return nil
	}
	return syncError
}

// flagChanged reports whether flagName was set on command or inherited from a parent.
func flagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}
	flag := command.Flag(flagName)
	if flag == nil {
		flag = command.Root().PersistentFlags().Lookup(flagName)
	}
	return flag != nil && flag.Changed
}

func resolveBuildVersion(context.Context) string {
	if buildVersion := strings.TrimSpace(Version); len(buildVersion) > 0 {
		return buildVersion
	}
	buildInformation, available := debug.ReadBuildInfo()
	if !available || len(buildInformation.Main.Version) == 0 {
		return developmentVersionConstant
	}
	return buildInformation.Main.Version
}
