package tui

import (
	"taskdeck/internal/api"
	"taskdeck/internal/session"
	"taskdeck/internal/store"
	"taskdeck/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Deps is everything the TUI needs, constructed once by the CLI layer and
// passed in; the TUI holds no globals.
type Deps struct {
	Client  *api.Client
	Session *session.Manager
	Themes  *theme.Manager
	Store   *store.Store
	Log     zerolog.Logger
}

func Run(d Deps) error {
	applyColorProfilePreference()
	applyTheme(d.Themes.Current())

	m := newAppModel(d)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
