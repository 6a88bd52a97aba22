package authors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/gitaudit/internal/identity"
	pathutils "github.com/temirov/gitaudit/internal/utils/path"
)

const (
	standardInputPathConstant              = "-"
	percentageDivisorConstant              = 100.0
	minimumConfidencePercentLowerBound     = 0
	minimumConfidencePercentUpperBound     = 100
	noAuthorRecordsMessageConstant         = "no author records could be gathered"
	minimumConfidenceRangeMessageConstant  = "minimum confidence must be between 0 and 100"
	minimumConfidenceErrorTemplateConstant = "%w: %d"
	inputOpenErrorTemplateConstant         = "failed to open author summary %s: %w"
	discoveryErrorTemplateConstant         = "failed to discover repositories: %w"
	mailmapErrorTemplateConstant           = "failed to update mailmap: %w"
	dependencyMissingMessageConstant       = "authors service dependency not configured"
	repositorySkippedMessageConstant       = "Skipping repository whose authors could not be collected"
	repositoryCollectedMessageConstant     = "Collected repository authors"
	inputCollectedMessageConstant          = "Read author summary"
	clustersBuiltMessageConstant           = "Grouped author identities"
	mailmapWrittenMessageConstant          = "Updated mailmap"
	mailmapUnchangedMessageConstant        = "No aliases found; mailmap left unchanged"
	logFieldRepositoryConstant             = "repository"
	logFieldRecordCountConstant            = "record_count"
	logFieldClusterCountConstant           = "cluster_count"
	logFieldInputConstant                  = "input"
	logFieldMailmapPathConstant            = "mailmap_path"
	logFieldMailmapModeConstant            = "mailmap_mode"
)

// ErrMinimumConfidenceOutOfRange indicates a --min-confidence value outside 0 to 100.
var ErrMinimumConfidenceOutOfRange = errors.New(minimumConfidenceRangeMessageConstant)

// ErrNoAuthorRecords indicates that no source produced author records.
var ErrNoAuthorRecords = errors.New(noAuthorRecordsMessageConstant)

// ErrServiceDependencyMissing indicates that a Service was constructed without a required collaborator.
var ErrServiceDependencyMissing = errors.New(dependencyMissingMessageConstant)

// Options configures one authors run.
type Options struct {
	Roots                    []string
	InputPath                string
	MinimumConfidencePercent int
	Format                   ReportFormat
	IncludeStatistics        bool
	PreferHumanCanonical     bool
	WriteMailmap             bool
	MailmapPath              string
	MailmapMode              MailmapMode
}

// Dependencies bundles the collaborators of a Service.
type Dependencies struct {
	Logger        *zap.Logger
	Discoverer    RepositoryDiscoverer
	HistorySource HistorySource
	MailmapWriter MailmapWriter
	RootSanitizer *pathutils.RootSanitizer
	Input         io.Reader
	Output        io.Writer
}

// Service gathers author identities and reports how they consolidate.
type Service struct {
	logger        *zap.Logger
	discoverer    RepositoryDiscoverer
	historySource HistorySource
	mailmapWriter MailmapWriter
	rootSanitizer *pathutils.RootSanitizer
	input         io.Reader
	output        io.Writer
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Discoverer == nil || dependencies.HistorySource == nil || dependencies.MailmapWriter == nil || dependencies.Output == nil {
		return nil, ErrServiceDependencyMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rootSanitizer := dependencies.RootSanitizer
	if rootSanitizer == nil {
		rootSanitizer = pathutils.NewRootSanitizer(nil)
	}
	input := dependencies.Input
	if input == nil {
		input = os.Stdin
	}

	return &Service{
		logger:        logger,
		discoverer:    dependencies.Discoverer,
		historySource: dependencies.HistorySource,
		mailmapWriter: dependencies.MailmapWriter,
		rootSanitizer: rootSanitizer,
		input:         input,
		output:        dependencies.Output,
	}, nil
}

// ValidateMinimumConfidencePercent rejects percentages outside 0 to 100 inclusive.
func ValidateMinimumConfidencePercent(percent int) error {
	if percent < minimumConfidencePercentLowerBound || percent > minimumConfidencePercentUpperBound {
		return fmt.Errorf(minimumConfidenceErrorTemplateConstant, ErrMinimumConfidenceOutOfRange, percent)
	}
	return nil
}

// Run gathers author records, clusters them, renders the report, and optionally updates the mailmap.
func (service *Service) Run(executionContext context.Context, options Options) error {
	if validationError := ValidateMinimumConfidencePercent(options.MinimumConfidencePercent); validationError != nil {
		return validationError
	}
	renderer, rendererError := NewReportRenderer(options.Format)
	if rendererError != nil {
		return rendererError
	}

	roots := service.rootSanitizer.Sanitize(options.Roots)
	if len(roots) == 0 {
		roots = []string{defaultRootConstant}
	}

	records, gatherError := service.gatherRecords(executionContext, options.InputPath, roots)
	if gatherError != nil {
		return gatherError
	}

	clusters := identity.BuildClustersWithOptions(records, identity.ClusterOptions{
		MinimumConfidence:    float64(options.MinimumConfidencePercent) / percentageDivisorConstant,
		PreferHumanCanonical: options.PreferHumanCanonical,
	})
	statistics := identity.ComputeStats(records, clusters)
	service.logger.Info(clustersBuiltMessageConstant, zap.Int(logFieldRecordCountConstant, len(records)), zap.Int(logFieldClusterCountConstant, len(clusters)))

	renderError := renderer.Render(service.output, Report{
		Clusters:          clusters,
		Statistics:        statistics,
		IncludeStatistics: options.IncludeStatistics,
	})
	if renderError != nil {
		return renderError
	}

	if !options.WriteMailmap {
		return nil
	}
	if len(clusters) == 0 {
		service.logger.Info(mailmapUnchangedMessageConstant)
		return nil
	}

	mailmapPath := options.MailmapPath
	if len(mailmapPath) == 0 {
		mailmapPath = DefaultMailmapPath(roots[0])
	}
	mailmapMode := options.MailmapMode
	if len(mailmapMode) == 0 {
		mailmapMode = MailmapModeAppend
	}
	if writeError := service.mailmapWriter.Write(mailmapPath, mailmapMode, identity.RenderAliasMap(clusters)); writeError != nil {
		return fmt.Errorf(mailmapErrorTemplateConstant, writeError)
	}
	service.logger.Info(mailmapWrittenMessageConstant, zap.String(logFieldMailmapPathConstant, mailmapPath), zap.String(logFieldMailmapModeConstant, string(mailmapMode)))

	return nil
}

func (service *Service) gatherRecords(executionContext context.Context, inputPath string, roots []string) ([]identity.Record, error) {
	if len(inputPath) > 0 {
		return service.readInput(inputPath)
	}

	repositories, discoveryError := service.discoverer.DiscoverRepositories(roots)
	if discoveryError != nil {
		return nil, fmt.Errorf(discoveryErrorTemplateConstant, discoveryError)
	}

	recordSets := make([][]identity.Record, 0, len(repositories))
	for _, repositoryPath := range repositories {
		if contextError := executionContext.Err(); contextError != nil {
			return nil, contextError
		}

		records, collectError := service.historySource.CollectRecords(executionContext, repositoryPath)
		if collectError != nil {
			service.logger.Warn(repositorySkippedMessageConstant, zap.String(logFieldRepositoryConstant, repositoryPath), zap.Error(collectError))
			continue
		}
		service.logger.Debug(repositoryCollectedMessageConstant, zap.String(logFieldRepositoryConstant, repositoryPath), zap.Int(logFieldRecordCountConstant, len(records)))
		recordSets = append(recordSets, records)
	}

	if len(recordSets) == 0 {
		return nil, ErrNoAuthorRecords
	}

	return MergeRecords(recordSets...), nil
}

func (service *Service) readInput(inputPath string) ([]identity.Record, error) {
	reader := service.input
	if inputPath != standardInputPathConstant {
		inputFile, openError := os.Open(inputPath)
		if openError != nil {
			return nil, fmt.Errorf(inputOpenErrorTemplateConstant, inputPath, openError)
		}
		defer inputFile.Close()
		reader = inputFile
	}

	records, parseError := ParseShortlog(reader, service.logger)
	if parseError != nil {
		return nil, parseError
	}
	service.logger.Info(inputCollectedMessageConstant, zap.String(logFieldInputConstant, inputPath), zap.Int(logFieldRecordCountConstant, len(records)))

	return MergeRecords(records), nil
}
