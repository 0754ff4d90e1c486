package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUIStateMissingFile(t *testing.T) {
	st := openTestStore(t)
	got, err := st.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if got == nil || got.Version != 1 {
		t.Fatalf("LoadUIState = %+v, want fresh version-1 state", got)
	}
}

func TestSaveLoadUIStateRoundTrip(t *testing.T) {
	st := openTestStore(t)

	in := &UIState{
		View:              "project",
		SelectedProjectID: 42,
		SidebarExpanded:   true,
	}
	if err := st.SaveUIState(in); err != nil {
		t.Fatalf("SaveUIState: %v", err)
	}

	got, err := st.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if got.Version != 1 {
		t.Fatalf("Version = %d, want 1 (filled on save)", got.Version)
	}
	if got.View != "project" || got.SelectedProjectID != 42 || !got.SidebarExpanded {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// No stray temp file left behind.
	if _, err := os.Stat(st.uiStatePath() + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left after save: %v", err)
	}
}

func TestLoadUIStateCorruptFile(t *testing.T) {
	st := openTestStore(t)
	if err := os.WriteFile(filepath.Join(st.Dir(), uiStateFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	got, err := st.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState on corrupt file: %v", err)
	}
	if got.View != "" || got.Version != 1 {
		t.Fatalf("corrupt file should load as fresh state, got %+v", got)
	}
}

func TestSaveUIStateNilIsNoOp(t *testing.T) {
	st := openTestStore(t)
	if err := st.SaveUIState(nil); err != nil {
		t.Fatalf("SaveUIState(nil): %v", err)
	}
	if _, err := os.Stat(st.uiStatePath()); !os.IsNotExist(err) {
		t.Fatalf("nil save created a file")
	}
}
