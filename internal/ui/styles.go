package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the two color schemes behind the dark-mode preference.
type Theme struct {
	Accent lipgloss.Style
	Dim    lipgloss.Style
	Alert  lipgloss.Style
	Good   lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	StatusBar   lipgloss.Style
}

// NewTheme builds the styles for the selected scheme.
func NewTheme(dark bool) Theme {
	accent := lipgloss.Color("39")
	dim := lipgloss.Color("245")
	if dark {
		accent = lipgloss.Color("42")
		dim = lipgloss.Color("240")
	}

	return Theme{
		Accent: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Dim:    lipgloss.NewStyle().Foreground(dim),
		Alert:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Good:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),

		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(accent).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(dim).
			Padding(0, 2),
		StatusBar: lipgloss.NewStyle().Foreground(dim),
	}
}
