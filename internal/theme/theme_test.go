package theme

import (
	"context"
	"testing"
	"time"

	"taskdeck/internal/store"
)

func openManager(t *testing.T, dir string) (*Manager, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	m, err := NewManager(context.Background(), st)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, st
}

func TestDefaultIsDark(t *testing.T) {
	m, _ := openManager(t, t.TempDir())
	if got := m.Current(); got != Dark {
		t.Fatalf("Current() = %q, want %q", got, Dark)
	}
}

func TestSetPersistsAcrossManagers(t *testing.T) {
	dir := t.TempDir()
	m, st := openManager(t, dir)

	if err := m.Set(context.Background(), Light); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if m.Current() != Light {
		t.Fatalf("Current() = %q after Set(Light)", m.Current())
	}

	m2, err := NewManager(context.Background(), st)
	if err != nil {
		t.Fatalf("NewManager (reload): %v", err)
	}
	if m2.Current() != Light {
		t.Fatalf("reloaded Current() = %q, want light", m2.Current())
	}
}

func TestUnknownStoredValueFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.Set(context.Background(), store.KeyTheme, "solarized"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	m, err := NewManager(context.Background(), st)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.Current() != Default {
		t.Fatalf("Current() = %q, want default", m.Current())
	}
}

func TestToggleFlipsAndNotifiesSubscribers(t *testing.T) {
	m, _ := openManager(t, t.TempDir())

	ch, cancel := m.Subscribe()
	defer cancel()

	// Replay of the current value.
	select {
	case got := <-ch:
		if got != Dark {
			t.Fatalf("replayed %q, want dark", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("no replayed value")
	}

	if err := m.Toggle(context.Background()); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	select {
	case got := <-ch:
		if got != Light {
			t.Fatalf("after toggle got %q, want light", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("toggle did not notify")
	}

	if err := m.Toggle(context.Background()); err != nil {
		t.Fatalf("Toggle (back): %v", err)
	}
	if m.Current() != Dark {
		t.Fatalf("double toggle ended on %q", m.Current())
	}
}
