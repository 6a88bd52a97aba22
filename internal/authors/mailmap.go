package authors

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	flagutils "github.com/temirov/gitaudit/internal/utils/flags"
	pathutils "github.com/temirov/gitaudit/internal/utils/path"
)

// MailmapMode selects how alias map content reaches an existing mailmap file.
type MailmapMode string

// Supported mailmap modes.
const (
	MailmapModeAppend  MailmapMode = "append"
	MailmapModeReplace MailmapMode = "replace"
)

const (
	mailmapFileNameConstant               = ".mailmap"
	mailmapFilePermissionsConstant        = 0o644
	mailmapReadErrorTemplateConstant      = "failed to read mailmap %s: %w"
	mailmapWriteErrorTemplateConstant     = "failed to write mailmap %s: %w"
	mailmapModeErrorTemplateConstant      = "%w: %w"
	unsupportedMailmapModeMessageConstant = "unsupported mailmap mode"
	mailmapSectionSeparatorConstant       = "\n"
	mailmapCommentPrefixConstant          = "#"
)

// ErrUnsupportedMailmapMode indicates an unknown --mailmap-mode value.
var ErrUnsupportedMailmapMode = errors.New(unsupportedMailmapModeMessageConstant)

// ParseMailmapMode resolves a mailmap mode name case-insensitively.
func ParseMailmapMode(value string) (MailmapMode, error) {
	parsed, parseError := flagutils.ParseChoice(value, []string{string(MailmapModeAppend), string(MailmapModeReplace)})
	if parseError != nil {
		return "", fmt.Errorf(mailmapModeErrorTemplateConstant, ErrUnsupportedMailmapMode, parseError)
	}
	return MailmapMode(parsed), nil
}

// DefaultMailmapPath returns the .mailmap location inside root.
func DefaultMailmapPath(root string) string {
	return filepath.Join(root, mailmapFileNameConstant)
}

// FileMailmapWriter writes alias maps to files on disk.
type FileMailmapWriter struct {
	homeExpander *pathutils.HomeExpander
}

// NewFileMailmapWriter constructs a FileMailmapWriter. A nil expander uses the operating system home directory.
func NewFileMailmapWriter(homeExpander *pathutils.HomeExpander) *FileMailmapWriter {
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	return &FileMailmapWriter{homeExpander: homeExpander}
}

// Write stores content at mailmapPath. Replace mode overwrites the file; append mode
// keeps existing entries and adds content after them, separated by a blank line.
// Content without any mapping line leaves the file untouched.
func (writer *FileMailmapWriter) Write(mailmapPath string, mode MailmapMode, content string) error {
	if !hasMailmapEntries(content) {
		return nil
	}
	resolvedPath := writer.homeExpander.Expand(mailmapPath)

	data := []byte(content)
	if mode == MailmapModeAppend {
		existing, readError := os.ReadFile(resolvedPath)
		if readError != nil && !errors.Is(readError, fs.ErrNotExist) {
			return fmt.Errorf(mailmapReadErrorTemplateConstant, resolvedPath, readError)
		}
		data = appendMailmapContent(existing, data)
	}

	if writeError := os.WriteFile(resolvedPath, data, mailmapFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(mailmapWriteErrorTemplateConstant, resolvedPath, writeError)
	}
	return nil
}

func appendMailmapContent(existing []byte, addition []byte) []byte {
	if len(bytes.TrimSpace(existing)) == 0 {
		return addition
	}

	combined := bytes.TrimRight(existing, mailmapSectionSeparatorConstant)
	combined = append(combined, mailmapSectionSeparatorConstant...)
	combined = append(combined, mailmapSectionSeparatorConstant...)
	return append(combined, addition...)
}

func hasMailmapEntries(content string) bool {
	for line := range strings.Lines(content) {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) > 0 && !strings.HasPrefix(trimmedLine, mailmapCommentPrefixConstant) {
			return true
		}
	}
	return false
}
