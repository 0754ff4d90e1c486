// Package nav models the sidebar navigation menu and the access guard.
package nav

import "strings"

// MenuItem is one entry in the sidebar tree. A leaf has a Route and no
// children; a parent has Children and its Expanded flag controls whether
// they are shown. Expanded is never consulted on leaves.
type MenuItem struct {
	Icon     string
	Label    string
	Route    string
	Children []*MenuItem
	Expanded bool
}

func (it *MenuItem) IsParent() bool { return len(it.Children) > 0 }

// DefaultMenu is the application's menu tree.
func DefaultMenu() []*MenuItem {
	return []*MenuItem{
		{Icon: "⌂", Label: "Dashboard", Route: "/dashboard"},
		{Icon: "▤", Label: "Projects", Route: "/projects"},
		{Icon: "✓", Label: "My Tasks", Route: "/tasks"},
		{Icon: "◎", Label: "Team", Children: []*MenuItem{
			{Icon: "◉", Label: "Manage Users", Route: "/team/users"},
			{Icon: "◈", Label: "Membership", Route: "/team/membership"},
		}},
	}
}

// Model tracks the menu tree, the current route, and the sidebar's own
// expanded state (rail vs. full width).
type Model struct {
	Items      []*MenuItem
	IsExpanded bool

	currentRoute string
}

func NewModel(items []*MenuItem) *Model {
	return &Model{Items: items}
}

// SetRoute records a completed navigation. The query string and fragment are
// stripped so prefix matching only ever sees the path.
func (m *Model) SetRoute(url string) {
	route := url
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	m.currentRoute = route
	m.AutoExpandActiveMenu()
}

func (m *Model) CurrentRoute() string { return m.currentRoute }

// IsActive reports whether route is a prefix of the current route. Prefix
// match is intentional: /projects stays highlighted while viewing
// /projects/42. Items without a route are never active.
func (m *Model) IsActive(route string) bool {
	if route == "" {
		return false
	}
	return strings.HasPrefix(m.currentRoute, route)
}

// HasActiveChild reports whether any direct child of item is active.
func (m *Model) HasActiveChild(item *MenuItem) bool {
	for _, c := range item.Children {
		if m.IsActive(c.Route) {
			return true
		}
	}
	return false
}

// AutoExpandActiveMenu expands every parent whose branch contains the active
// route. It never collapses an item the user expanded manually, and never
// expands a branch with no active child.
func (m *Model) AutoExpandActiveMenu() {
	for _, it := range m.Items {
		if it.IsParent() && m.HasActiveChild(it) {
			it.Expanded = true
		}
	}
}

// ToggleSubmenu flips the expand state of a parent item. Leaves are a no-op.
// Opening a submenu while the sidebar is collapsed forces the sidebar open:
// a submenu cannot be usefully shown in a collapsed rail.
func (m *Model) ToggleSubmenu(item *MenuItem) {
	if !item.IsParent() {
		return
	}
	item.Expanded = !item.Expanded
	if item.Expanded && !m.IsExpanded {
		m.IsExpanded = true
	}
}

// ToggleSidebar flips the overall sidebar width state.
func (m *Model) ToggleSidebar() {
	m.IsExpanded = !m.IsExpanded
}
