package listflow

import (
	"reflect"
	"testing"
)

type thing struct {
	Name     string
	Status   string
	Priority string
}

func newThingWorkflow() *Workflow[thing] {
	return New(Config[thing]{
		SearchFields: func(t thing) []string { return []string{t.Name} },
		Status:       func(t thing) string { return t.Status },
		Priority:     func(t thing) string { return t.Priority },
	})
}

func load(t *testing.T, w *Workflow[thing], items []thing) {
	t.Helper()
	seq := w.BeginLoad()
	if !w.FinishLoad(seq, items, "") {
		t.Fatalf("FinishLoad(seq=%d) dropped a fresh load", seq)
	}
}

func names(items []thing) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestDefaultCriteriaMatchesEverything(t *testing.T) {
	w := newThingWorkflow()
	load(t, w, []thing{
		{"Fix login", "TODO", "HIGH"},
		{"Write docs", "COMPLETED", "LOW"},
		{"Deploy", "IN_PROGRESS", "MEDIUM"},
	})

	if got, want := len(w.Filtered()), 3; got != want {
		t.Fatalf("Filtered() = %d items, want %d", got, want)
	}
	if !reflect.DeepEqual(names(w.Filtered()), names(w.Items())) {
		t.Fatalf("default criteria changed order or membership: %v", names(w.Filtered()))
	}
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	w := newThingWorkflow()
	load(t, w, []thing{
		{"Fix login bug", "TODO", "HIGH"},
		{"Prefix cleanup", "TODO", "LOW"},
		{"Write docs", "TODO", "LOW"},
	})

	c := DefaultCriteria()
	c.SearchText = "FIX"
	w.SetCriteria(c)

	want := []string{"Fix login bug", "Prefix cleanup"}
	if got := names(w.Filtered()); !reflect.DeepEqual(got, want) {
		t.Fatalf("Filtered() = %v, want %v", got, want)
	}
}

func TestEnumFiltersMatchExactlyAndCombine(t *testing.T) {
	w := newThingWorkflow()
	load(t, w, []thing{
		{"a", "TODO", "HIGH"},
		{"b", "TODO", "LOW"},
		{"c", "IN_PROGRESS", "HIGH"},
	})

	c := DefaultCriteria()
	c.Status = "TODO"
	c.Priority = "HIGH"
	w.SetCriteria(c)

	if got := names(w.Filtered()); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("Filtered() = %v, want [a]", got)
	}

	// TODO is not a substring match: "TOD" matches nothing.
	c.Status = "TOD"
	w.SetCriteria(c)
	if got := len(w.Filtered()); got != 0 {
		t.Fatalf("partial enum value matched %d items", got)
	}
}

func TestApplyFiltersIsIdempotent(t *testing.T) {
	w := newThingWorkflow()
	load(t, w, []thing{
		{"a", "TODO", "HIGH"},
		{"b", "IN_PROGRESS", "LOW"},
	})
	c := DefaultCriteria()
	c.Status = "TODO"
	w.SetCriteria(c)

	first := names(w.Filtered())
	w.ApplyFilters()
	w.ApplyFilters()
	if got := names(w.Filtered()); !reflect.DeepEqual(got, first) {
		t.Fatalf("repeated ApplyFilters changed the result: %v != %v", got, first)
	}
}

func TestClearFiltersRestoresFullView(t *testing.T) {
	w := newThingWorkflow()
	load(t, w, []thing{
		{"a", "TODO", "HIGH"},
		{"b", "IN_PROGRESS", "LOW"},
	})
	c := DefaultCriteria()
	c.SearchText = "a"
	c.Status = "TODO"
	w.SetCriteria(c)
	if len(w.Filtered()) != 1 {
		t.Fatalf("setup: expected 1 filtered item")
	}

	w.ClearFilters()
	if got, want := len(w.Filtered()), 2; got != want {
		t.Fatalf("after ClearFilters: %d items, want %d", got, want)
	}
	if w.Criteria() != DefaultCriteria() {
		t.Fatalf("ClearFilters left criteria %+v", w.Criteria())
	}
}

func TestStaleLoadIsDropped(t *testing.T) {
	w := newThingWorkflow()

	seq1 := w.BeginLoad()
	seq2 := w.BeginLoad()

	// The newer load finishes first.
	if !w.FinishLoad(seq2, []thing{{"new", "TODO", "LOW"}}, "") {
		t.Fatalf("latest load was dropped")
	}
	// The older response arrives late and must be ignored.
	if w.FinishLoad(seq1, []thing{{"old", "TODO", "LOW"}}, "") {
		t.Fatalf("stale load was applied")
	}
	if got := names(w.Items()); !reflect.DeepEqual(got, []string{"new"}) {
		t.Fatalf("Items() = %v, want [new]", got)
	}
	if w.State() != Loaded {
		t.Fatalf("State() = %v, want Loaded", w.State())
	}
}

func TestFailedReloadKeepsPreviousItems(t *testing.T) {
	w := newThingWorkflow()
	load(t, w, []thing{
		{"a", "TODO", "HIGH"},
		{"b", "TODO", "LOW"},
		{"c", "TODO", "LOW"},
	})

	seq := w.BeginLoad()
	if !w.FinishLoad(seq, nil, "connection refused") {
		t.Fatalf("failure result was dropped")
	}

	if got, want := len(w.Items()), 3; got != want {
		t.Fatalf("failed reload dropped items: %d, want %d", got, want)
	}
	if w.State() != LoadFailed {
		t.Fatalf("State() = %v, want LoadFailed", w.State())
	}
	if w.LastError() != "connection refused" {
		t.Fatalf("LastError() = %q", w.LastError())
	}

	// A later successful reload clears the error.
	load(t, w, []thing{{"a", "TODO", "HIGH"}})
	if w.LastError() != "" || w.State() != Loaded {
		t.Fatalf("recovery: state=%v err=%q", w.State(), w.LastError())
	}
}

func TestDeleteRequiresArmedConfirmation(t *testing.T) {
	w := newThingWorkflow()

	if w.ConfirmDelete() {
		t.Fatalf("ConfirmDelete succeeded without RequestDelete")
	}

	w.RequestDelete()
	if !w.DeletePending() {
		t.Fatalf("RequestDelete did not arm")
	}
	w.CancelDelete()
	if w.ConfirmDelete() {
		t.Fatalf("ConfirmDelete succeeded after CancelDelete")
	}

	w.RequestDelete()
	if !w.ConfirmDelete() {
		t.Fatalf("armed ConfirmDelete failed")
	}
	if w.ConfirmDelete() {
		t.Fatalf("confirmation was not consumed")
	}
}

func TestDialogClosedTriggersReloadOnlyOnCommit(t *testing.T) {
	w := newThingWorkflow()
	if w.DialogClosed(false) {
		t.Fatalf("cancelled dialog requested a reload")
	}
	if !w.DialogClosed(true) {
		t.Fatalf("committed dialog did not request a reload")
	}
}
