package nav

import "testing"

func findItem(m *Model, label string) *MenuItem {
	for _, it := range m.Items {
		if it.Label == label {
			return it
		}
		for _, c := range it.Children {
			if c.Label == label {
				return c
			}
		}
	}
	return nil
}

func TestPrefixActiveMatching(t *testing.T) {
	m := NewModel(DefaultMenu())
	m.SetRoute("/projects/42")

	if !m.IsActive("/projects") {
		t.Fatalf("/projects should stay active while viewing /projects/42")
	}
	if m.IsActive("/tasks") {
		t.Fatalf("/tasks should not be active")
	}
}

func TestEmptyRouteNeverActive(t *testing.T) {
	m := NewModel(DefaultMenu())
	m.SetRoute("/dashboard")
	if m.IsActive("") {
		t.Fatalf("parent items without a route must never be active themselves")
	}
}

func TestSetRouteStripsQueryAndFragment(t *testing.T) {
	m := NewModel(DefaultMenu())
	m.SetRoute("/tasks?page=2#top")
	if got := m.CurrentRoute(); got != "/tasks" {
		t.Fatalf("CurrentRoute() = %q, want /tasks", got)
	}
	if !m.IsActive("/tasks") {
		t.Fatalf("/tasks should be active")
	}
}

func TestAutoExpandParentWithActiveChild(t *testing.T) {
	m := NewModel(DefaultMenu())
	team := findItem(m, "Team")
	if team == nil || !team.IsParent() {
		t.Fatalf("menu is missing the Team parent")
	}
	if team.Expanded {
		t.Fatalf("Team should start collapsed")
	}

	m.SetRoute("/team/users")
	if !team.Expanded {
		t.Fatalf("navigating to a child route did not expand the parent")
	}
	if !m.HasActiveChild(team) {
		t.Fatalf("HasActiveChild(Team) = false on /team/users")
	}
}

func TestAutoExpandNeverCollapses(t *testing.T) {
	m := NewModel(DefaultMenu())
	team := findItem(m, "Team")
	team.Expanded = true

	// Navigating away keeps the manual expansion.
	m.SetRoute("/dashboard")
	if !team.Expanded {
		t.Fatalf("navigation collapsed a manually expanded submenu")
	}
}

func TestToggleSubmenuLeafIsNoOp(t *testing.T) {
	m := NewModel(DefaultMenu())
	leaf := findItem(m, "Projects")
	if leaf == nil {
		t.Fatalf("menu is missing Projects")
	}
	m.ToggleSubmenu(leaf)
	if leaf.Expanded {
		t.Fatalf("toggling a leaf set Expanded")
	}
}

func TestToggleSubmenuForcesSidebarOpen(t *testing.T) {
	m := NewModel(DefaultMenu())
	m.IsExpanded = false
	team := findItem(m, "Team")

	m.ToggleSubmenu(team)
	if !team.Expanded {
		t.Fatalf("submenu did not open")
	}
	if !m.IsExpanded {
		t.Fatalf("opening a submenu in a collapsed rail must expand the sidebar")
	}

	// Collapsing the submenu leaves the sidebar alone.
	m.ToggleSubmenu(team)
	if team.Expanded {
		t.Fatalf("second toggle did not close the submenu")
	}
	if !m.IsExpanded {
		t.Fatalf("closing a submenu must not collapse the sidebar")
	}
}

func TestSiblingParentsUntouched(t *testing.T) {
	items := []*MenuItem{
		{Label: "A", Children: []*MenuItem{{Label: "A1", Route: "/a/1"}}},
		{Label: "B", Children: []*MenuItem{{Label: "B1", Route: "/b/1"}}},
	}
	m := NewModel(items)
	m.SetRoute("/a/1")
	if !items[0].Expanded {
		t.Fatalf("active branch not expanded")
	}
	if items[1].Expanded {
		t.Fatalf("inactive sibling branch was expanded")
	}
}
