package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TabNames in display order.
var TabNames = []string{"Compass", "Level", "Lamp"}

// RenderTabBar renders the top tab strip with the active tab highlighted.
func RenderTabBar(width, active int, th Theme) string {
	parts := make([]string, 0, len(TabNames))
	for i, name := range TabNames {
		if i == active {
			parts = append(parts, th.TabActive.Render(name))
		} else {
			parts = append(parts, th.TabInactive.Render(name))
		}
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if w := lipgloss.Width(bar); w < width {
		bar += th.Dim.Render(strings.Repeat(" ", width-w))
	}
	return bar
}

// RenderStatusBar renders the bottom key-hint line.
func RenderStatusBar(width int, text string, th Theme) string {
	if len(text) > width && width > 1 {
		text = text[:width-1]
	}
	return th.StatusBar.Render(text)
}
