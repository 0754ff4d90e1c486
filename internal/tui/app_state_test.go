package tui

import (
	"testing"

	"taskdeck/internal/listflow"
	"taskdeck/internal/model"
)

func TestViewRoutes(t *testing.T) {
	cases := []struct {
		v         view
		projectID int64
		want      string
	}{
		{viewLogin, 0, "/login"},
		{viewRegister, 0, "/register"},
		{viewDashboard, 0, "/dashboard"},
		{viewProjects, 0, "/projects"},
		{viewProjectDetail, 42, "/projects/42"},
		{viewTasks, 0, "/tasks"},
		{viewUsers, 0, "/team/users"},
		{viewMembership, 0, "/team/membership"},
	}
	for _, tc := range cases {
		if got := viewRoute(tc.v, tc.projectID); got != tc.want {
			t.Fatalf("viewRoute(%d, %d) = %q, want %q", tc.v, tc.projectID, got, tc.want)
		}
	}
}

func TestViewStateNameRoundTrip(t *testing.T) {
	for _, v := range []view{viewDashboard, viewProjects, viewProjectDetail, viewTasks, viewUsers, viewMembership} {
		if got := viewFromStateName(viewStateName(v)); got != v {
			t.Fatalf("round trip for view %d came back as %d", v, got)
		}
	}
	if got := viewFromStateName("garbage"); got != viewDashboard {
		t.Fatalf("unknown state name resolved to %d, want dashboard", got)
	}
}

func TestCycleEnumWrapsThroughAll(t *testing.T) {
	order := []string{}
	cur := listflow.FilterAll
	for i := 0; i < len(model.TaskPriorities)+1; i++ {
		cur = cycleEnum(cur, model.TaskPriorities)
		order = append(order, cur)
	}
	want := []string{"LOW", "MEDIUM", "HIGH", "ALL"}
	if len(order) != len(want) {
		t.Fatalf("cycle length %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("cycle[%d] = %q, want %q", i, order[i], want[i])
		}
	}
	// An unknown current value resets to ALL.
	if got := cycleEnum("BOGUS", model.TaskPriorities); got != listflow.FilterAll {
		t.Fatalf("cycleEnum(BOGUS) = %q, want ALL", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate(short) = %q", got)
	}
	got := truncate("a very long project name", 10)
	if len([]rune(got)) != 10 {
		t.Fatalf("truncate width = %d runes (%q)", len([]rune(got)), got)
	}
	if got[len(got)-len("…"):] != "…" {
		t.Fatalf("truncate missing ellipsis: %q", got)
	}
}

func TestTruncateDegenerateWidths(t *testing.T) {
	// Tiny terminals must not crash the status line.
	for _, w := range []int{-3, 0} {
		if got := truncate("signed in as alice", w); got != "" {
			t.Fatalf("truncate(w=%d) = %q, want empty", w, got)
		}
	}
	if got := truncate("signed in as alice", 1); got != "s" {
		t.Fatalf("truncate(w=1) = %q, want s", got)
	}
	if got := truncate("", 0); got != "" {
		t.Fatalf("truncate(empty, 0) = %q", got)
	}
}

func TestRowBuildersCarryIDs(t *testing.T) {
	p := projectRow(model.Project{ID: 7, Name: "p", Status: model.ProjectActive, Priority: model.ProjectPriorityLow})
	if p.id != 7 || p.title != "p" {
		t.Fatalf("projectRow = %+v", p)
	}
	task := taskRow(model.Task{ID: 8, Title: "t", Status: model.TaskTodo, Priority: model.TaskPriorityLow})
	if task.id != 8 || task.title != "t" {
		t.Fatalf("taskRow = %+v", task)
	}
	u := userRow(model.User{ID: 9, Username: "u"})
	if u.id != 9 || u.title != "u" {
		t.Fatalf("userRow = %+v", u)
	}
	tm := memberRow(model.TeamMember{User: model.UserSummary{ID: 10, Username: "m"}, Role: model.RoleViewer})
	if tm.id != 10 || tm.title != "m" {
		t.Fatalf("memberRow = %+v", tm)
	}
}
