package authors

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/gitaudit/internal/identity"
	"github.com/temirov/gitaudit/internal/ui"
	flagutils "github.com/temirov/gitaudit/internal/utils/flags"
)

// ReportFormat names an output rendering of the author clusters.
type ReportFormat string

// Supported report formats.
const (
	ReportFormatTable   ReportFormat = "table"
	ReportFormatJSON    ReportFormat = "json"
	ReportFormatYAML    ReportFormat = "yaml"
	ReportFormatCSV     ReportFormat = "csv"
	ReportFormatMailmap ReportFormat = "mailmap"
)

const (
	unsupportedReportFormatMessageConstant = "unsupported report format"
	reportWriteErrorTemplateConstant       = "failed to write %s report: %w"
	reportFormatErrorTemplateConstant      = "%w: %w"
	identityLabelTemplateConstant          = "%s <%s>"
	canonicalLabelTemplateConstant         = "%s <%s> (%d)"
	percentageTemplateConstant             = "%d%%"
	consolidationRateTemplateConstant      = "%.1f%%"
	noDuplicatesMessageConstant            = "No duplicate author identities found."
	statisticsTitleConstant                = "Statistics"
	statisticsCommentTemplateConstant      = "# %s: %s\n"
	jsonIndentConstant                     = "  "
	yamlIndentConstant                     = 2
	percentageScaleConstant                = 100
	lineTerminatorConstant                 = "\n"
)

// ErrUnsupportedReportFormat indicates an unknown --format value.
var ErrUnsupportedReportFormat = errors.New(unsupportedReportFormatMessageConstant)

var (
	tableHeaders = []string{"Canonical", "Alias", "Commits", "Confidence", "Reason"}
	csvHeaders   = []string{"canonical_name", "canonical_email", "alias_name", "alias_email", "alias_commits", "confidence", "reason"}
)

// ReportFormats lists the supported report formats in presentation order.
func ReportFormats() []ReportFormat {
	return []ReportFormat{ReportFormatTable, ReportFormatJSON, ReportFormatYAML, ReportFormatCSV, ReportFormatMailmap}
}

// ParseReportFormat resolves a format name case-insensitively.
func ParseReportFormat(value string) (ReportFormat, error) {
	choices := make([]string, 0, len(ReportFormats()))
	for _, format := range ReportFormats() {
		choices = append(choices, string(format))
	}
	parsed, parseError := flagutils.ParseChoice(value, choices)
	if parseError != nil {
		return "", fmt.Errorf(reportFormatErrorTemplateConstant, ErrUnsupportedReportFormat, parseError)
	}
	return ReportFormat(parsed), nil
}

// Report is the rendered outcome of an authors run.
type Report struct {
	Clusters          []identity.Cluster
	Statistics        identity.Statistics
	IncludeStatistics bool
}

type reportDocument struct {
	Clusters   []clusterDocument    `json:"clusters" yaml:"clusters"`
	Statistics *identity.Statistics `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

type clusterDocument struct {
	Canonical    identity.Record `json:"canonical" yaml:"canonical"`
	TotalCommits int             `json:"total_commits" yaml:"total_commits"`
	Reason       string          `json:"reason" yaml:"reason"`
	Aliases      []aliasDocument `json:"aliases" yaml:"aliases"`
}

type aliasDocument struct {
	Name        string  `json:"name" yaml:"name"`
	Email       string  `json:"email" yaml:"email"`
	CommitCount int     `json:"commit_count" yaml:"commit_count"`
	Confidence  float64 `json:"confidence" yaml:"confidence"`
	Reason      string  `json:"reason" yaml:"reason"`
}

// ReportRenderer writes reports in a single format.
type ReportRenderer struct {
	format ReportFormat
}

// NewReportRenderer constructs a renderer for format.
func NewReportRenderer(format ReportFormat) (ReportRenderer, error) {
	parsedFormat, parseError := ParseReportFormat(string(format))
	if parseError != nil {
		return ReportRenderer{}, parseError
	}
	return ReportRenderer{format: parsedFormat}, nil
}

// Render writes report to writer.
func (renderer ReportRenderer) Render(writer io.Writer, report Report) error {
	var renderError error
	switch renderer.format {
	case ReportFormatJSON:
		renderError = renderJSON(writer, report)
	case ReportFormatYAML:
		renderError = renderYAML(writer, report)
	case ReportFormatCSV:
		renderError = renderCSV(writer, report)
	case ReportFormatMailmap:
		renderError = renderMailmap(writer, report)
	default:
		renderError = renderTable(writer, report)
	}
	if renderError != nil {
		return fmt.Errorf(reportWriteErrorTemplateConstant, renderer.format, renderError)
	}
	return nil
}

func renderTable(writer io.Writer, report Report) error {
	var builder strings.Builder
	if len(report.Clusters) == 0 {
		builder.WriteString(noDuplicatesMessageConstant + lineTerminatorConstant)
	} else {
		rows := make([][]string, 0)
		for _, cluster := range report.Clusters {
			canonicalLabel := ui.RenderCanonical(fmt.Sprintf(canonicalLabelTemplateConstant, cluster.Canonical.Name, cluster.Canonical.Email, cluster.TotalCommits))
			for aliasIndex, alias := range cluster.Aliases {
				canonicalCell := ""
				if aliasIndex == 0 {
					canonicalCell = canonicalLabel
				}
				rows = append(rows, []string{
					canonicalCell,
					ui.RenderAlias(fmt.Sprintf(identityLabelTemplateConstant, alias.Record.Name, alias.Record.Email)),
					strconv.Itoa(alias.Record.CommitCount),
					ui.RenderConfidence(formatPercentage(alias.Confidence), alias.Confidence),
					alias.Reason.String(),
				})
			}
		}
		builder.WriteString(ui.RenderTable(tableHeaders, rows) + lineTerminatorConstant)
	}

	if report.IncludeStatistics {
		builder.WriteString(lineTerminatorConstant)
		builder.WriteString(ui.RenderSummary(statisticsTitleConstant, statisticsEntries(report.Statistics)) + lineTerminatorConstant)
	}

	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

func renderJSON(writer io.Writer, report Report) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", jsonIndentConstant)
	return encoder.Encode(buildReportDocument(report))
}

func renderYAML(writer io.Writer, report Report) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(buildReportDocument(report)); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

func renderCSV(writer io.Writer, report Report) error {
	csvWriter := csv.NewWriter(writer)
	if writeError := csvWriter.Write(csvHeaders); writeError != nil {
		return writeError
	}
	for _, cluster := range report.Clusters {
		for _, alias := range cluster.Aliases {
			writeError := csvWriter.Write([]string{
				cluster.Canonical.Name,
				cluster.Canonical.Email,
				alias.Record.Name,
				alias.Record.Email,
				strconv.Itoa(alias.Record.CommitCount),
				strconv.FormatFloat(alias.Confidence, 'f', 2, 64),
				alias.Reason.String(),
			})
			if writeError != nil {
				return writeError
			}
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func renderMailmap(writer io.Writer, report Report) error {
	var builder strings.Builder
	builder.WriteString(identity.RenderAliasMap(report.Clusters))
	if report.IncludeStatistics {
		for _, entry := range statisticsEntries(report.Statistics) {
			builder.WriteString(fmt.Sprintf(statisticsCommentTemplateConstant, entry.Label, entry.Value))
		}
	}
	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

func buildReportDocument(report Report) reportDocument {
	document := reportDocument{Clusters: make([]clusterDocument, 0, len(report.Clusters))}
	for _, cluster := range report.Clusters {
		clusterEntry := clusterDocument{
			Canonical:    cluster.Canonical,
			TotalCommits: cluster.TotalCommits,
			Reason:       cluster.Reason.String(),
			Aliases:      make([]aliasDocument, 0, len(cluster.Aliases)),
		}
		for _, alias := range cluster.Aliases {
			clusterEntry.Aliases = append(clusterEntry.Aliases, aliasDocument{
				Name:        alias.Record.Name,
				Email:       alias.Record.Email,
				CommitCount: alias.Record.CommitCount,
				Confidence:  alias.Confidence,
				Reason:      alias.Reason.String(),
			})
		}
		document.Clusters = append(document.Clusters, clusterEntry)
	}
	if report.IncludeStatistics {
		statistics := report.Statistics
		document.Statistics = &statistics
	}
	return document
}

func statisticsEntries(statistics identity.Statistics) []ui.SummaryEntry {
	return []ui.SummaryEntry{
		{Label: "Total identities", Value: strconv.Itoa(statistics.TotalIdentities)},
		{Label: "Duplicate identities", Value: strconv.Itoa(statistics.DuplicateIdentities)},
		{Label: "Unique contributors", Value: strconv.Itoa(statistics.UniqueContributors)},
		{Label: "Consolidation rate", Value: fmt.Sprintf(consolidationRateTemplateConstant, statistics.ConsolidationRatePercent)},
		{Label: "Clusters", Value: strconv.Itoa(statistics.ClusterCount)},
	}
}

func formatPercentage(confidence float64) string {
	return fmt.Sprintf(percentageTemplateConstant, int(confidence*percentageScaleConstant+0.5))
}
