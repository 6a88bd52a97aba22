package identity

import (
	"fmt"
	"math"
	"strings"
)

const (
	aliasMapHeaderLineConstant          = "# Author alias map generated by gitaudit"
	aliasMapFormatLineConstant          = "# Format: Canonical Name <canonical@email> Alias Name <alias@email>"
	aliasMapClusterLineTemplateConstant = "# Cluster: %s (%d commits)"
	aliasMapEntryLineTemplateConstant   = "%s <%s> %s <%s>"
	aliasMapLineTerminatorConstant      = "\n"
	percentageMultiplierConstant        = 100
	roundingPrecisionMultiplierConstant = 10
)

// RenderAliasMap serializes clusters into alias-map text, one block per cluster
// in the order given. The output depends only on the clusters.
func RenderAliasMap(clusters []Cluster) string {
	var builder strings.Builder
	builder.WriteString(aliasMapHeaderLineConstant + aliasMapLineTerminatorConstant)
	builder.WriteString(aliasMapFormatLineConstant + aliasMapLineTerminatorConstant)
	builder.WriteString(aliasMapLineTerminatorConstant)

	for _, cluster := range clusters {
		builder.WriteString(fmt.Sprintf(aliasMapClusterLineTemplateConstant, cluster.Canonical.Name, cluster.TotalCommits))
		builder.WriteString(aliasMapLineTerminatorConstant)
		for _, alias := range cluster.Aliases {
			builder.WriteString(fmt.Sprintf(
				aliasMapEntryLineTemplateConstant,
				cluster.Canonical.Name,
				cluster.Canonical.Email,
				alias.Record.Name,
				alias.Record.Email,
			))
			builder.WriteString(aliasMapLineTerminatorConstant)
		}
		builder.WriteString(aliasMapLineTerminatorConstant)
	}

	return builder.String()
}

// ComputeStats summarizes consolidation. An empty record list reports a zero rate.
func ComputeStats(records []Record, clusters []Cluster) Statistics {
	duplicateIdentities := 0
	for _, cluster := range clusters {
		duplicateIdentities += len(cluster.Aliases)
	}

	totalIdentities := len(records)
	consolidationRate := 0.0
	if totalIdentities > 0 {
		consolidationRate = roundToTenth(float64(duplicateIdentities) / float64(totalIdentities) * percentageMultiplierConstant)
	}

	return Statistics{
		TotalIdentities:          totalIdentities,
		DuplicateIdentities:      duplicateIdentities,
		UniqueContributors:       totalIdentities - duplicateIdentities,
		ConsolidationRatePercent: consolidationRate,
		ClusterCount:             len(clusters),
	}
}

func roundToTenth(value float64) float64 {
	return math.Round(value*roundingPrecisionMultiplierConstant) / roundingPrecisionMultiplierConstant
}
