package tui

import (
	"strings"

	"taskdeck/internal/nav"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidthExpanded  = 24
	sidebarWidthCollapsed = 4
)

func sidebarWidth(m *nav.Model) int {
	if m.IsExpanded {
		return sidebarWidthExpanded
	}
	return sidebarWidthCollapsed
}

// renderSidebar draws the navigation rail. In collapsed mode only icons are
// shown; expanded mode shows labels, children of expanded parents, and the
// active-route highlight.
func renderSidebar(m *nav.Model, height int, username string) string {
	w := sidebarWidth(m)
	var lines []string

	header := " "
	if m.IsExpanded {
		header = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(" taskdeck")
	} else {
		header = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(" ◆")
	}
	lines = append(lines, header, "")

	for _, it := range m.Items {
		lines = append(lines, sidebarLine(m, it, 0))
		if it.IsParent() && it.Expanded && m.IsExpanded {
			for _, c := range it.Children {
				lines = append(lines, sidebarLine(m, c, 1))
			}
		}
	}

	if m.IsExpanded && username != "" {
		lines = append(lines, "")
		lines = append(lines, styleMuted().Render(" "+username))
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}

	body := strings.Join(padLines(lines, w), "\n")
	return lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Render(body)
}

func sidebarLine(m *nav.Model, it *nav.MenuItem, depth int) string {
	indent := strings.Repeat("  ", depth+1)

	active := m.IsActive(it.Route)
	if it.IsParent() {
		active = m.HasActiveChild(it)
	}

	style := lipgloss.NewStyle()
	if active {
		style = style.Foreground(colorActiveFg).Bold(true)
	} else {
		style = style.Foreground(colorChromeMutedFg)
	}

	if !m.IsExpanded {
		return style.Render(" " + it.Icon)
	}

	label := it.Label
	if it.IsParent() {
		caret := "▸"
		if it.Expanded {
			caret = "▾"
		}
		label = label + " " + caret
	}
	return style.Render(indent + it.Icon + " " + label)
}

func padLines(lines []string, width int) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = lipgloss.NewStyle().Width(width).MaxWidth(width).Render(ln)
	}
	return out
}
