package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	summaryLineTemplateConstant  = "%s %s"
	summaryLabelSuffixConstant   = ":"
	summaryLineSeparatorConstant = "\n"
)

// SummaryEntry is one labeled value in a summary block.
type SummaryEntry struct {
	Label string
	Value string
}

// RenderTable renders rows beneath headers inside a rounded border.
func RenderTable(headers []string, rows [][]string) string {
	renderedTable := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row int, column int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle.Padding(0, 1)
			}
			return CellStyle
		})
	return renderedTable.String()
}

// RenderSummary renders a titled block of aligned label and value pairs.
func RenderSummary(title string, entries []SummaryEntry) string {
	labelWidth := 0
	for _, entry := range entries {
		labelWidth = max(labelWidth, lipgloss.Width(entry.Label)+len(summaryLabelSuffixConstant))
	}

	labelStyle := lipgloss.NewStyle().Width(labelWidth)
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, RenderHeader(title))
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf(summaryLineTemplateConstant, labelStyle.Render(entry.Label+summaryLabelSuffixConstant), entry.Value))
	}
	return strings.Join(lines, summaryLineSeparatorConstant)
}
