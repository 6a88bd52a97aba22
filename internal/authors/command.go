package authors

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitaudit/internal/discovery"
	"github.com/temirov/gitaudit/internal/execshell"
	"github.com/temirov/gitaudit/internal/ui"
	"github.com/temirov/gitaudit/internal/utils"
	flagutils "github.com/temirov/gitaudit/internal/utils/flags"
	pathutils "github.com/temirov/gitaudit/internal/utils/path"
)

const (
	commandUseConstant                    = "authors"
	commandShortDescriptionConstant       = "Group commit author identities that belong to the same contributor"
	commandLongDescriptionConstant        = "authors reads the commit authors of every repository under the given roots, groups name and email pairs that belong to the same contributor, and prints the groups together with consolidation statistics. The groups can be written into a .mailmap file."
	commandExecutionErrorTemplateConstant = "authors report failed: %w"
	unexpectedArgumentsMessageConstant    = "authors does not accept positional arguments"
	flagRootNameConstant                  = "root"
	flagRootDescriptionConstant           = "Directory to scan for repositories (repeatable)"
	flagInputNameConstant                 = "input"
	flagInputDescriptionConstant          = "Read a shortlog style author summary from a file instead of git (- for standard input)"
	flagMinimumConfidenceNameConstant     = "min-confidence"
	flagMinimumConfidenceDescription      = "Minimum confidence percentage (0-100) required to merge two identities"
	flagFormatNameConstant                = "format"
	flagFormatDescriptionConstant         = "Report format."
	flagStatsNameConstant                 = "stats"
	flagStatsDescriptionConstant          = "Include consolidation statistics in the report"
	flagPreferHumanNameConstant           = "prefer-human-canonical"
	flagPreferHumanDescriptionConstant    = "Prefer a non-automated address as canonical when commit counts tie"
	flagWriteMailmapNameConstant          = "write-mailmap"
	flagWriteMailmapDescriptionConstant   = "Write the alias map into the mailmap file"
	flagMailmapPathNameConstant           = "mailmap-path"
	flagMailmapPathDescriptionConstant    = "Mailmap file path (defaults to .mailmap in the first root)"
	flagMailmapModeNameConstant           = "mailmap-mode"
	flagMailmapModeDescriptionConstant    = "How the alias map is written into the mailmap file."
	configurationFileMessageConstant      = "authors configuration source"
	configurationFileFieldConstant        = "config_file"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted authors configuration.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console event logging is active.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the authors cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	Discoverer                   RepositoryDiscoverer
	GitExecutor                  GitExecutor
	MailmapWriter                MailmapWriter
	Input                        io.Reader
}

// Build constructs the authors command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	formatChoices := make([]string, 0, len(ReportFormats()))
	for _, format := range ReportFormats() {
		formatChoices = append(formatChoices, string(format))
	}

	command.Flags().StringArray(flagRootNameConstant, nil, flagRootDescriptionConstant)
	command.Flags().String(flagInputNameConstant, "", flagInputDescriptionConstant)
	command.Flags().Int(flagMinimumConfidenceNameConstant, defaults.MinimumConfidence, flagMinimumConfidenceDescription)
	command.Flags().String(flagFormatNameConstant, defaults.Format, flagutils.FormatChoiceUsage(defaults.Format, formatChoices, flagFormatDescriptionConstant))
	command.Flags().Bool(flagStatsNameConstant, defaults.Stats, flagStatsDescriptionConstant)
	command.Flags().Bool(flagPreferHumanNameConstant, defaults.PreferHumanCanonical, flagPreferHumanDescriptionConstant)
	command.Flags().Bool(flagWriteMailmapNameConstant, false, flagWriteMailmapDescriptionConstant)
	command.Flags().String(flagMailmapPathNameConstant, "", flagMailmapPathDescriptionConstant)
	command.Flags().String(flagMailmapModeNameConstant, defaults.MailmapMode, flagutils.FormatChoiceUsage(defaults.MailmapMode, []string{string(MailmapModeAppend), string(MailmapModeReplace)}, flagMailmapModeDescriptionConstant))

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	if configurationFilePath, found := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context()); found {
		logger.Debug(configurationFileMessageConstant, zap.String(configurationFileFieldConstant, configurationFilePath))
	}

	executor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return executorError
	}

	historySource, historyError := NewGitHistorySource(executor, logger)
	if historyError != nil {
		return historyError
	}

	homeExpander := pathutils.NewHomeExpander()
	service, serviceError := NewService(Dependencies{
		Logger:        logger,
		Discoverer:    builder.resolveDiscoverer(logger),
		HistorySource: historySource,
		MailmapWriter: builder.resolveMailmapWriter(homeExpander),
		RootSanitizer: pathutils.NewRootSanitizer(homeExpander),
		Input:         builder.resolveInput(command),
		Output:        utils.NewFlushingWriter(command.OutOrStdout()),
	})
	if serviceError != nil {
		return serviceError
	}

	if options.Format == ReportFormatTable {
		ui.ConfigureColorOutput()
	}

	if runError := service.Run(command.Context(), options); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (Options, error) {
	configuration := builder.resolveConfiguration()
	flagSet := command.Flags()

	roots := configuration.Roots
	if flagSet.Changed(flagRootNameConstant) {
		rootValues, _ := flagSet.GetStringArray(flagRootNameConstant)
		roots = sanitizeRoots(rootValues)
	}

	minimumConfidence := configuration.MinimumConfidence
	if flagSet.Changed(flagMinimumConfidenceNameConstant) {
		minimumConfidence, _ = flagSet.GetInt(flagMinimumConfidenceNameConstant)
	}
	if validationError := ValidateMinimumConfidencePercent(minimumConfidence); validationError != nil {
		return Options{}, validationError
	}

	formatValue := configuration.Format
	if flagSet.Changed(flagFormatNameConstant) {
		formatValue, _ = flagSet.GetString(flagFormatNameConstant)
	}
	if len(strings.TrimSpace(formatValue)) == 0 {
		formatValue = string(ReportFormatTable)
	}
	format, formatError := ParseReportFormat(formatValue)
	if formatError != nil {
		return Options{}, formatError
	}

	includeStatistics := configuration.Stats
	if flagSet.Changed(flagStatsNameConstant) {
		includeStatistics, _ = flagSet.GetBool(flagStatsNameConstant)
	}

	preferHumanCanonical := configuration.PreferHumanCanonical
	if flagSet.Changed(flagPreferHumanNameConstant) {
		preferHumanCanonical, _ = flagSet.GetBool(flagPreferHumanNameConstant)
	}

	mailmapPath := configuration.MailmapPath
	if flagSet.Changed(flagMailmapPathNameConstant) {
		mailmapPath, _ = flagSet.GetString(flagMailmapPathNameConstant)
	}

	mailmapModeValue := configuration.MailmapMode
	if flagSet.Changed(flagMailmapModeNameConstant) {
		mailmapModeValue, _ = flagSet.GetString(flagMailmapModeNameConstant)
	}
	if len(strings.TrimSpace(mailmapModeValue)) == 0 {
		mailmapModeValue = string(MailmapModeAppend)
	}
	mailmapMode, modeError := ParseMailmapMode(mailmapModeValue)
	if modeError != nil {
		return Options{}, modeError
	}

	inputPath, _ := flagSet.GetString(flagInputNameConstant)
	writeMailmap, _ := flagSet.GetBool(flagWriteMailmapNameConstant)

	return Options{
		Roots:                    roots,
		InputPath:                inputPath,
		MinimumConfidencePercent: minimumConfidence,
		Format:                   format,
		IncludeStatistics:        includeStatistics,
		PreferHumanCanonical:     preferHumanCanonical,
		WriteMailmap:             writeMailmap,
		MailmapPath:              mailmapPath,
		MailmapMode:              mailmapMode,
	}, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	var observer execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observer = ui.NewConsoleCommandEventLogger(logger)
	}

	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, execshell.NewOSCommandRunner(), observer)
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveDiscoverer(logger *zap.Logger) RepositoryDiscoverer {
	if builder.Discoverer != nil {
		return builder.Discoverer
	}
	return discovery.NewFilesystemRepositoryDiscoverer(logger)
}

func (builder *CommandBuilder) resolveMailmapWriter(homeExpander *pathutils.HomeExpander) MailmapWriter {
	if builder.MailmapWriter != nil {
		return builder.MailmapWriter
	}
	return NewFileMailmapWriter(homeExpander)
}

func (builder *CommandBuilder) resolveInput(command *cobra.Command) io.Reader {
	if builder.Input != nil {
		return builder.Input
	}
	return command.InOrStdin()
}
