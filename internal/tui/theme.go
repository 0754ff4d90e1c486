package tui

import (
	"os"
	"strings"

	"taskdeck/internal/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark backgrounds. We use
// lipgloss.AdaptiveColor everywhere and drive the Light/Dark choice from the
// persisted theme preference rather than terminal background probing, which
// is unreliable in some terminals.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// Common semantic colors used across the TUI.
var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	// Headings/breadcrumbs and other secondary chrome.
	colorChromeMutedFg lipgloss.TerminalColor = ac("240", "245")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")

	// Slightly elevated surface for controls/inputs so they remain visible
	// on light terminals.
	colorControlBg lipgloss.TerminalColor = ac("252", "235")

	colorAccent   lipgloss.TerminalColor = ac("27", "62") // blue
	colorAccentFg lipgloss.TerminalColor = ac("255", "235")

	colorErrorFg lipgloss.TerminalColor = ac("160", "196")
	colorOkFg    lipgloss.TerminalColor = ac("28", "40")

	// Sidebar active-route highlight.
	colorActiveFg lipgloss.TerminalColor = ac("27", "75")
)

// Status and priority accents (per the web client's chip colors).
var (
	statusColors = map[string]lipgloss.TerminalColor{
		"TODO":        ac("94", "179"),
		"IN_PROGRESS": ac("27", "75"),
		"IN_REVIEW":   ac("127", "177"),
		"BLOCKED":     ac("160", "196"),
		"COMPLETED":   ac("28", "40"),
		"PLANNING":    ac("94", "179"),
		"ACTIVE":      ac("28", "40"),
		"ON_HOLD":     ac("130", "214"),
		"CANCELLED":   ac("240", "243"),
	}
	priorityColors = map[string]lipgloss.TerminalColor{
		"LOW":      ac("28", "40"),
		"MEDIUM":   ac("130", "214"),
		"HIGH":     ac("160", "203"),
		"CRITICAL": ac("124", "196"),
	}
)

func statusStyle(s string) lipgloss.Style {
	if c, ok := statusColors[s]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return styleMuted()
}

func priorityStyle(p string) lipgloss.Style {
	if c, ok := priorityColors[p]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return styleMuted()
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is
// useful for non-interactive CLI output but can accidentally disable colors
// in a TUI. For the TUI, we only honor NO_COLOR and otherwise follow the
// terminal's capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyTheme maps the persisted preference onto Lip Gloss's adaptive color
// selection. Dark is the default and matches the application's original look.
func applyTheme(t theme.Theme) {
	lipgloss.SetHasDarkBackground(t != theme.Light)
}
