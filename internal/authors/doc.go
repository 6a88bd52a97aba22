// Package authors implements the gitaudit authors command.
//
// The command gathers commit author identities from git repositories (or a
// shortlog style summary), groups the identities that belong to the same
// contributor with the identity engine, and renders the result as a table,
// JSON, YAML, CSV, or alias map. It can also write the alias map into a
// repository .mailmap file.
package authors
