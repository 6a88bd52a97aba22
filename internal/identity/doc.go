// Package identity resolves author identities recorded in git history.
//
// It normalizes display names and email addresses, scores how likely two
// identity records belong to the same contributor, groups records into
// canonical clusters with a greedy single pass ordered by commit volume, and
// renders the resulting clusters as alias-map text and summary statistics.
// Every function in the package is pure: results depend only on the inputs
// and no state survives between calls.
package identity
