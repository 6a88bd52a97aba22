package authors

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitaudit/internal/execshell"
	"github.com/temirov/gitaudit/internal/identity"
)

const (
	gitLogSubcommandConstant            = "log"
	gitAllFlagConstant                  = "--all"
	gitNoMailmapFlagConstant            = "--no-mailmap"
	gitAuthorFormatFlagConstant         = "--format=%an%x09%ae"
	shortlogFieldSeparatorConstant      = "\t"
	maximumLineBytesConstant            = 1 << 20
	emailOpeningDelimiterConstant       = "<"
	emailClosingDelimiterConstant       = ">"
	shortlogReadErrorTemplateConstant   = "failed to read author summary: %w"
	historyCollectErrorTemplateConstant = "failed to collect authors of %s: %w"
	gitExecutorMissingMessageConstant   = "git executor not configured"
	malformedLineMessageConstant        = "Skipping malformed author summary line"
	nonPositiveCountMessageConstant     = "Skipping author with non-positive commit count"
	oversizedLineMessageConstant        = "Skipping oversized author summary line"
	malformedAuthorLineMessageConstant  = "Skipping malformed commit author line"
	authorLogReadErrorTemplateConstant  = "failed to read commit authors: %w"
	logFieldLineNumberConstant          = "line_number"
	logFieldLineConstant                = "line"
)

// ErrGitExecutorNotConfigured indicates that a GitHistorySource was created without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

var errMalformedShortlogLine = errors.New("malformed author summary line")

// ParseShortlog reads author records from shortlog style text. Each line is either
// "<count>\t<name> <<email>>" as printed by git shortlog or "<name> <<email>>\t<count>".
// Malformed or oversized lines are logged at debug level and skipped, as are records whose count is not positive.
func ParseShortlog(reader io.Reader, logger *zap.Logger) ([]identity.Record, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	records := make([]identity.Record, 0)
	readError := visitLines(reader, func(lineNumber int, line string, oversized bool) {
		if oversized {
			logger.Debug(oversizedLineMessageConstant, zap.Int(logFieldLineNumberConstant, lineNumber))
			return
		}
		if len(strings.TrimSpace(line)) == 0 {
			return
		}

		record, parseError := parseShortlogLine(line)
		if parseError != nil {
			logger.Debug(malformedLineMessageConstant, zap.Int(logFieldLineNumberConstant, lineNumber), zap.String(logFieldLineConstant, line))
			return
		}
		if record.CommitCount <= 0 {
			logger.Debug(nonPositiveCountMessageConstant, zap.Int(logFieldLineNumberConstant, lineNumber), zap.String(logFieldLineConstant, line))
			return
		}
		records = append(records, record)
	})
	if readError != nil {
		return nil, fmt.Errorf(shortlogReadErrorTemplateConstant, readError)
	}

	return records, nil
}

// ParseAuthorLog tallies "<name>\t<email>" lines, one per commit, into records.
// Records are ordered by descending commit count; equal counts keep first-seen order.
func ParseAuthorLog(reader io.Reader, logger *zap.Logger) ([]identity.Record, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	positions := make(map[identity.Record]int)
	records := make([]identity.Record, 0)
	readError := visitLines(reader, func(lineNumber int, line string, oversized bool) {
		if oversized {
			logger.Debug(oversizedLineMessageConstant, zap.Int(logFieldLineNumberConstant, lineNumber))
			return
		}
		if len(strings.TrimSpace(line)) == 0 {
			return
		}

		name, email, separatorFound := strings.Cut(line, shortlogFieldSeparatorConstant)
		name, email = strings.TrimSpace(name), strings.TrimSpace(email)
		if !separatorFound || (len(name) == 0 && len(email) == 0) {
			logger.Debug(malformedAuthorLineMessageConstant, zap.Int(logFieldLineNumberConstant, lineNumber), zap.String(logFieldLineConstant, line))
			return
		}

		key := identity.Record{Name: name, Email: email}
		if position, seen := positions[key]; seen {
			records[position].CommitCount++
			return
		}
		positions[key] = len(records)
		records = append(records, identity.Record{Name: name, Email: email, CommitCount: 1})
	})
	if readError != nil {
		return nil, fmt.Errorf(authorLogReadErrorTemplateConstant, readError)
	}

	slices.SortStableFunc(records, func(left identity.Record, right identity.Record) int {
		return right.CommitCount - left.CommitCount
	})
	return records, nil
}

// visitLines calls visit for every line of reader without a per-line size limit on the
// reader itself. Lines longer than maximumLineBytesConstant are reported as oversized
// with empty content and drained.
func visitLines(reader io.Reader, visit func(lineNumber int, line string, oversized bool)) error {
	bufferedReader := bufio.NewReader(reader)
	lineNumber := 0
	for {
		var lineBuilder strings.Builder
		oversized := false
		consumed := false

		fragment, isPrefix, readError := bufferedReader.ReadLine()
		for readError == nil {
			consumed = true
			if !oversized && lineBuilder.Len()+len(fragment) > maximumLineBytesConstant {
				oversized = true
				lineBuilder.Reset()
			}
			if !oversized {
				lineBuilder.Write(fragment)
			}
			if !isPrefix {
				break
			}
			fragment, isPrefix, readError = bufferedReader.ReadLine()
		}

		if consumed {
			lineNumber++
			visit(lineNumber, lineBuilder.String(), oversized)
		}
		if readError != nil {
			if errors.Is(readError, io.EOF) {
				return nil
			}
			return readError
		}
	}
}

func parseShortlogLine(line string) (identity.Record, error) {
	firstField, secondField, separatorFound := strings.Cut(strings.TrimSpace(line), shortlogFieldSeparatorConstant)
	if !separatorFound {
		return identity.Record{}, errMalformedShortlogLine
	}

	countField, authorField := strings.TrimSpace(firstField), strings.TrimSpace(secondField)
	commitCount, countError := strconv.Atoi(countField)
	if countError != nil {
		countField, authorField = strings.TrimSpace(secondField), strings.TrimSpace(firstField)
		commitCount, countError = strconv.Atoi(countField)
		if countError != nil {
			return identity.Record{}, errMalformedShortlogLine
		}
	}

	name, email, authorError := parseAuthor(authorField)
	if authorError != nil {
		return identity.Record{}, authorError
	}

	return identity.Record{Name: name, Email: email, CommitCount: commitCount}, nil
}

func parseAuthor(author string) (string, string, error) {
	openingIndex := strings.LastIndex(author, emailOpeningDelimiterConstant)
	if openingIndex < 0 || !strings.HasSuffix(author, emailClosingDelimiterConstant) {
		return "", "", errMalformedShortlogLine
	}

	name := strings.TrimSpace(author[:openingIndex])
	email := strings.TrimSpace(author[openingIndex+len(emailOpeningDelimiterConstant) : len(author)-len(emailClosingDelimiterConstant)])
	if len(name) == 0 && len(email) == 0 {
		return "", "", errMalformedShortlogLine
	}
	return name, email, nil
}

// MergeRecords combines records sharing an exact name and email by summing their
// commit counts. The first occurrence of each pair fixes its position in the result.
func MergeRecords(recordSets ...[]identity.Record) []identity.Record {
	type identityKey struct {
		name  string
		email string
	}

	positions := make(map[identityKey]int)
	merged := make([]identity.Record, 0)
	for _, records := range recordSets {
		for _, record := range records {
			key := identityKey{name: record.Name, email: record.Email}
			if position, exists := positions[key]; exists {
				merged[position].CommitCount += record.CommitCount
				continue
			}
			positions[key] = len(merged)
			merged = append(merged, record)
		}
	}
	return merged
}

// GitHistorySource reads author records from git log. Author names and emails are read
// as recorded in each commit, so a .mailmap in the repository never rewrites them.
type GitHistorySource struct {
	executor GitExecutor
	logger   *zap.Logger
}

// NewGitHistorySource constructs a GitHistorySource backed by executor.
func NewGitHistorySource(executor GitExecutor, logger *zap.Logger) (*GitHistorySource, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitHistorySource{executor: executor, logger: logger}, nil
}

// CollectRecords tallies the authors of every commit reachable from any ref in repositoryPath.
func (source *GitHistorySource) CollectRecords(executionContext context.Context, repositoryPath string) ([]identity.Record, error) {
	result, executionError := source.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitLogSubcommandConstant, gitAllFlagConstant, gitNoMailmapFlagConstant, gitAuthorFormatFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, fmt.Errorf(historyCollectErrorTemplateConstant, repositoryPath, executionError)
	}

	return ParseAuthorLog(strings.NewReader(result.StandardOutput), source.logger)
}
