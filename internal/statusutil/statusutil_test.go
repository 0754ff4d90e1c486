package statusutil

import (
	"testing"

	"taskdeck/internal/model"
)

func TestCanonical(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"todo", "TODO"},
		{"  In Progress ", "IN_PROGRESS"},
		{"in-progress", "IN_PROGRESS"},
		{"ON_HOLD", "ON_HOLD"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Canonical(tc.in); got != tc.want {
			t.Fatalf("Canonical(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFilterAcceptsWildcardAndEmpty(t *testing.T) {
	for _, in := range []string{"", "ALL", "all"} {
		got, err := Filter(in, model.TaskStatuses)
		if err != nil {
			t.Fatalf("Filter(%q): %v", in, err)
		}
		if got != "ALL" {
			t.Fatalf("Filter(%q) = %q, want ALL", in, got)
		}
	}
}

func TestFilterValidatesAgainstPickList(t *testing.T) {
	got, err := Filter("in review", model.TaskStatuses)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if got != "IN_REVIEW" {
		t.Fatalf("Filter = %q, want IN_REVIEW", got)
	}

	if _, err := Filter("DOING", model.TaskStatuses); err == nil {
		t.Fatalf("invalid value passed validation")
	}
}

func TestTypedParsers(t *testing.T) {
	if s, err := TaskStatus("blocked"); err != nil || s != model.TaskBlocked {
		t.Fatalf("TaskStatus(blocked) = (%q, %v)", s, err)
	}
	if p, err := ProjectPriority("critical"); err != nil || p != model.ProjectPriorityCritical {
		t.Fatalf("ProjectPriority(critical) = (%q, %v)", p, err)
	}
	if r, err := Role("lead"); err != nil || r != model.RoleLead {
		t.Fatalf("Role(lead) = (%q, %v)", r, err)
	}
	// CRITICAL exists for projects only.
	if _, err := TaskPriority("critical"); err == nil {
		t.Fatalf("TaskPriority(critical) passed validation")
	}
	if _, err := TaskStatus(""); err == nil {
		t.Fatalf("empty value passed the non-wildcard parser")
	}
}
