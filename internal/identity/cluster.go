package identity

import "sort"

// ClusterOptions tunes cluster construction.
type ClusterOptions struct {
	// MinimumConfidence is the inclusive threshold a pair must reach to merge.
	MinimumConfidence float64
	// PreferHumanCanonical orders non-no-reply addresses ahead of no-reply
	// addresses among records with equal commit counts. Commit volume still
	// decides canonical choice first.
	PreferHumanCanonical bool
}

// BuildClusters groups records into clusters using the provided inclusive threshold.
func BuildClusters(records []Record, minimumConfidence float64) []Cluster {
	return BuildClustersWithOptions(records, ClusterOptions{MinimumConfidence: minimumConfidence})
}

// BuildClustersWithOptions groups records greedily. Records are visited by
// descending commit count; each unassigned record absorbs every later
// unassigned record it matches directly. Matches are not transitive: a record
// absorbed by one canonical is never compared against later candidates.
// Records that match nothing are left out of the result.
func BuildClustersWithOptions(records []Record, options ClusterOptions) []Cluster {
	orderedRecords := orderByCommitVolume(records, options.PreferHumanCanonical)
	scorer := NewScorer(options.MinimumConfidence)

	assigned := make([]bool, len(orderedRecords))
	clusters := make([]Cluster, 0)

	for candidateIndex, candidate := range orderedRecords {
		if assigned[candidateIndex] {
			continue
		}

		var aliases []Alias
		clusterReason := ReasonNone
		totalCommits := candidate.CommitCount

		for otherIndex := candidateIndex + 1; otherIndex < len(orderedRecords); otherIndex++ {
			if assigned[otherIndex] {
				continue
			}

			other := orderedRecords[otherIndex]
			result := scorer.Score(candidate, other)
			if !result.IsMatch {
				continue
			}

			if len(aliases) == 0 {
				clusterReason = result.Reason
			}
			aliases = append(aliases, Alias{Record: other, Confidence: result.Confidence, Reason: result.Reason})
			totalCommits += other.CommitCount
			assigned[otherIndex] = true
		}

		if len(aliases) == 0 {
			continue
		}

		assigned[candidateIndex] = true
		clusters = append(clusters, Cluster{
			Canonical:    candidate,
			Aliases:      aliases,
			TotalCommits: totalCommits,
			Reason:       clusterReason,
		})
	}

	sort.SliceStable(clusters, func(leftIndex int, rightIndex int) bool {
		return clusters[leftIndex].TotalCommits > clusters[rightIndex].TotalCommits
	})

	return clusters
}

// UnclusteredRecords returns the records that belong to no cluster, in input order.
func UnclusteredRecords(records []Record, clusters []Cluster) []Record {
	clusteredCounts := make(map[Record]int)
	for _, cluster := range clusters {
		clusteredCounts[cluster.Canonical]++
		for _, alias := range cluster.Aliases {
			clusteredCounts[alias.Record]++
		}
	}

	singletons := make([]Record, 0)
	for _, record := range records {
		if clusteredCounts[record] > 0 {
			clusteredCounts[record]--
			continue
		}
		singletons = append(singletons, record)
	}
	return singletons
}

func orderByCommitVolume(records []Record, preferHumanCanonical bool) []Record {
	orderedRecords := append([]Record(nil), records...)
	sort.SliceStable(orderedRecords, func(leftIndex int, rightIndex int) bool {
		left := orderedRecords[leftIndex]
		right := orderedRecords[rightIndex]
		if left.CommitCount != right.CommitCount {
			return left.CommitCount > right.CommitCount
		}
		if preferHumanCanonical {
			return !IsNoReplyAddress(left.Email) && IsNoReplyAddress(right.Email)
		}
		return false
	})
	return orderedRecords
}
