package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive palette for light and dark terminals.
var (
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	}
	ColorPass = lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	}
	ColorWarn = lipgloss.AdaptiveColor{
		Light: "#f2ae49",
		Dark:  "#ffb454",
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	}
)

// Report styles.
var (
	HeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	CanonicalStyle = lipgloss.NewStyle().Bold(true)
	AliasStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	PassStyle      = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle      = lipgloss.NewStyle().Foreground(ColorWarn)
	CellStyle      = lipgloss.NewStyle().Padding(0, 1)
	BorderStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
)

// RenderHeader renders section headers.
func RenderHeader(text string) string {
	return HeaderStyle.Render(text)
}

// RenderCanonical renders a canonical identity.
func RenderCanonical(text string) string {
	return CanonicalStyle.Render(text)
}

// RenderAlias renders an alias identity.
func RenderAlias(text string) string {
	return AliasStyle.Render(text)
}

// RenderConfidence colors a percentage by how close it sits to a certain match.
func RenderConfidence(text string, confidence float64) string {
	if confidence >= highConfidenceThresholdConstant {
		return PassStyle.Render(text)
	}
	return WarnStyle.Render(text)
}

const highConfidenceThresholdConstant = 0.9
