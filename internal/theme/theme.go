// Package theme holds the light/dark preference.
package theme

import (
	"context"

	"taskdeck/internal/pubsub"
	"taskdeck/internal/store"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default matches the application's original look.
const Default = Dark

// Manager is the process-wide reactive cell for the theme preference. Like
// the session manager it is constructed once and injected, not ambient.
type Manager struct {
	st   *store.Store
	cell *pubsub.Value[Theme]
}

// NewManager initializes from the store, falling back to Default when the
// key is absent or holds an unknown value.
func NewManager(ctx context.Context, st *store.Store) (*Manager, error) {
	v, ok, err := st.Get(ctx, store.KeyTheme)
	if err != nil {
		return nil, err
	}
	t := Default
	if ok {
		switch Theme(v) {
		case Light, Dark:
			t = Theme(v)
		}
	}
	return &Manager{st: st, cell: pubsub.NewValue(t)}, nil
}

func (m *Manager) Current() Theme { return m.cell.Get() }

// Set persists the preference and publishes it to the view layer.
func (m *Manager) Set(ctx context.Context, t Theme) error {
	if t != Light && t != Dark {
		t = Default
	}
	if err := m.st.Set(ctx, store.KeyTheme, string(t)); err != nil {
		return err
	}
	m.cell.Set(t)
	return nil
}

// Toggle flips between the two values.
func (m *Manager) Toggle(ctx context.Context) error {
	if m.Current() == Dark {
		return m.Set(ctx, Light)
	}
	return m.Set(ctx, Dark)
}

// Subscribe returns a replay-of-one subscription to theme changes.
func (m *Manager) Subscribe() (<-chan Theme, func()) {
	return m.cell.Subscribe()
}
