package identity

// Record describes one distinct name and email pairing observed as a commit author.
type Record struct {
	Name        string `json:"name" yaml:"name"`
	Email       string `json:"email" yaml:"email"`
	CommitCount int    `json:"commit_count" yaml:"commit_count"`
}

// MatchResult captures the outcome of comparing two records.
type MatchResult struct {
	IsMatch    bool
	Confidence float64
	Reason     ReasonCode
}

// Alias is a record merged into a cluster together with the evidence for the merge.
type Alias struct {
	Record     Record     `json:"record" yaml:"record"`
	Confidence float64    `json:"confidence" yaml:"confidence"`
	Reason     ReasonCode `json:"reason" yaml:"reason"`
}

// Cluster groups the records judged to belong to the same contributor.
type Cluster struct {
	Canonical    Record     `json:"canonical" yaml:"canonical"`
	Aliases      []Alias    `json:"aliases" yaml:"aliases"`
	TotalCommits int        `json:"total_commits" yaml:"total_commits"`
	Reason       ReasonCode `json:"reason" yaml:"reason"`
}

// Statistics summarizes how many identities were consolidated.
type Statistics struct {
	TotalIdentities          int     `json:"total_identities" yaml:"total_identities"`
	DuplicateIdentities      int     `json:"duplicate_identities" yaml:"duplicate_identities"`
	UniqueContributors       int     `json:"unique_contributors" yaml:"unique_contributors"`
	ConsolidationRatePercent float64 `json:"consolidation_rate_percent" yaml:"consolidation_rate_percent"`
	ClusterCount             int     `json:"cluster_count" yaml:"cluster_count"`
}
