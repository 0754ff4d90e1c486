package tui

import (
	"context"
	"fmt"
	"strings"

	"taskdeck/internal/listflow"
	"taskdeck/internal/model"
	"taskdeck/internal/nav"
	"taskdeck/internal/perm"
	"taskdeck/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

type appModel struct {
	deps  Deps
	nav   *nav.Model
	guard nav.Guard

	width  int
	height int
	// The first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	view              view
	selectedProjectID int64

	projects *listflow.Workflow[model.Project]
	tasks    *listflow.Workflow[model.Task]
	users    *listflow.Workflow[model.User]
	members  *listflow.Workflow[model.TeamMember]

	projectsList list.Model
	tasksList    list.Model
	usersList    list.Model
	membersList  list.Model

	searchInput textinput.Model
	searchFocus bool

	// Dashboard stats per project id, filled in as results arrive.
	stats map[int64]model.ProjectStats

	// Project detail screen data, tagged so stale loads are dropped.
	detail      model.Project
	detailStats model.ProjectStats
	detailTeam  []model.TeamMember
	detailTasks []model.Task
	detailSeq   int
	detailErr   string

	modal         modalKind
	form          *formState
	memberPick    *memberModal
	confirmTarget deleteTarget
	confirmFocus  confirmModalFocus

	// Auth screens reuse the modal form machinery full-screen.
	authForm *formState
	authBusy bool

	// membershipPicking shows the project chooser before the member list.
	membershipPicking bool

	minibuffer    string
	minibufferSeq int

	loadCancels map[view]context.CancelFunc
}

func newAppModel(d Deps) appModel {
	m := appModel{
		deps:        d,
		nav:         nav.NewModel(nav.DefaultMenu()),
		guard:       nav.Guard{Session: d.Session},
		view:        viewLogin,
		stats:       map[int64]model.ProjectStats{},
		loadCancels: map[view]context.CancelFunc{},
	}

	m.projects = listflow.New(listflow.Config[model.Project]{
		SearchFields: func(p model.Project) []string { return []string{p.Name, p.Description} },
		Status:       func(p model.Project) string { return string(p.Status) },
		Priority:     func(p model.Project) string { return string(p.Priority) },
	})
	m.tasks = listflow.New(listflow.Config[model.Task]{
		SearchFields: func(t model.Task) []string { return []string{t.Title, t.Description, t.ProjectName()} },
		Status:       func(t model.Task) string { return string(t.Status) },
		Priority:     func(t model.Task) string { return string(t.Priority) },
	})
	m.users = listflow.New(listflow.Config[model.User]{
		SearchFields: func(u model.User) []string {
			return []string{u.Username, u.Email, u.FirstName, u.LastName}
		},
	})
	m.members = listflow.New(listflow.Config[model.TeamMember]{
		SearchFields: func(tm model.TeamMember) []string {
			return []string{tm.User.Username, tm.User.Email, tm.User.DisplayName()}
		},
		Status: func(tm model.TeamMember) string { return string(tm.Role) },
	})

	m.projectsList = newScreenList("Projects")
	m.tasksList = newScreenList("Tasks")
	m.usersList = newScreenList("Users")
	m.membersList = newScreenList("Team")

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "search"
	m.searchInput.CharLimit = 200
	m.searchInput.Prompt = "/ "

	// Restore the last screen; the login guard still applies on top.
	if st, err := d.Store.LoadUIState(); err == nil && st != nil {
		m.nav.IsExpanded = st.SidebarExpanded || st.View == ""
		m.selectedProjectID = st.SelectedProjectID
		m.view = viewFromStateName(st.View)
		if m.view == viewProjectDetail && m.selectedProjectID == 0 {
			m.view = viewProjects
		}
	}
	if !d.Session.IsAuthenticated() {
		m.view = viewLogin
		m.authForm = newLoginForm()
	}
	m.nav.SetRoute(viewRoute(m.view, m.selectedProjectID))
	return m
}

func viewFromStateName(name string) view {
	switch name {
	case "projects":
		return viewProjects
	case "project":
		return viewProjectDetail
	case "tasks":
		return viewTasks
	case "users":
		return viewUsers
	case "membership":
		return viewMembership
	default:
		return viewDashboard
	}
}

func viewStateName(v view) string {
	switch v {
	case viewProjects:
		return "projects"
	case viewProjectDetail:
		return "project"
	case viewTasks:
		return "tasks"
	case viewUsers:
		return "users"
	case viewMembership:
		return "membership"
	default:
		return "dashboard"
	}
}

// saveUIState persists screen/sidebar state on exit. Best effort; losing it
// only costs the restore.
func (m *appModel) saveUIState() {
	v := m.view
	if v == viewLogin || v == viewRegister {
		v = viewDashboard
	}
	_ = m.deps.Store.SaveUIState(&store.UIState{
		Version:           1,
		View:              viewStateName(v),
		SelectedProjectID: m.selectedProjectID,
		SidebarExpanded:   m.nav.IsExpanded,
	})
}

func newLoginForm() *formState {
	f := &formState{title: "Sign in"}
	f.fields = []formField{
		newTextField("Username", "username or email", "", 120),
		newTextField("Password", "password", "", 120),
	}
	f.fields[1].input.EchoMode = textinput.EchoPassword
	f.fields[1].input.EchoCharacter = '•'
	f.focusField(0)
	return f
}

func newRegisterForm() *formState {
	f := &formState{title: "Create account"}
	f.fields = []formField{
		newTextField("Username", "username", "", 50),
		newTextField("Email", "you@example.com", "", 120),
		newTextField("Password", "at least 6 characters", "", 120),
		newTextField("First name", "", "", 50),
		newTextField("Last name", "", "", 50),
		newTextField("Phone", "(optional)", "", 20),
	}
	f.fields[2].input.EchoMode = textinput.EchoPassword
	f.fields[2].input.EchoCharacter = '•'
	f.focusField(0)
	return f
}

// newUserForm is the add-user modal on the users screen: registration fields
// in a dialog, committing through the same request.
func newUserForm() *formState {
	f := newRegisterForm()
	f.kind = modalUserForm
	f.title = "Add user"
	return f
}

func (f *formState) registerFromForm() (model.RegisterRequest, string) {
	req := model.RegisterRequest{
		Username:  f.value("Username"),
		Email:     f.value("Email"),
		Password:  f.value("Password"),
		FirstName: f.value("First name"),
		LastName:  f.value("Last name"),
		Phone:     f.value("Phone"),
	}
	if req.Username == "" {
		return req, "Username is required"
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return req, "A valid email is required"
	}
	if len(req.Password) < 6 {
		return req, "Password must be at least 6 characters"
	}
	return req, ""
}

// Row builders. Each produces the single pre-styled line the compact
// delegate renders.

func projectRow(p model.Project) rowItem {
	line := fmt.Sprintf("%-28s  %s  %s  %3d%%",
		truncate(p.Name, 28),
		statusStyle(string(p.Status)).Render(fmt.Sprintf("%-11s", p.Status)),
		priorityStyle(string(p.Priority)).Render(fmt.Sprintf("%-8s", p.Priority)),
		p.Progress,
	)
	return rowItem{id: p.ID, title: p.Name, line: line}
}

func taskRow(t model.Task) rowItem {
	assignee := ""
	if t.AssignedTo != nil {
		assignee = t.AssignedTo.Username
	}
	line := fmt.Sprintf("%-32s  %s  %s  %-16s %s",
		truncate(t.Title, 32),
		statusStyle(string(t.Status)).Render(fmt.Sprintf("%-11s", t.Status)),
		priorityStyle(string(t.Priority)).Render(fmt.Sprintf("%-6s", t.Priority)),
		truncate(t.ProjectName(), 16),
		styleMuted().Render(assignee),
	)
	return rowItem{id: t.ID, title: t.Title, line: line}
}

func userRow(u model.User) rowItem {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	line := fmt.Sprintf("%-20s  %-28s  %s",
		truncate(u.Username, 20),
		truncate(u.Email, 28),
		styleMuted().Render(name),
	)
	return rowItem{id: u.ID, title: u.Username, line: line}
}

func memberRow(tm model.TeamMember) rowItem {
	line := fmt.Sprintf("%-20s  %-12s  %s",
		truncate(tm.User.Username, 20),
		tm.Role,
		styleMuted().Render(tm.User.DisplayName()),
	)
	return rowItem{id: tm.User.ID, title: tm.User.Username, line: line}
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return string(r[:1])
	}
	return string(r[:w-1]) + "…"
}

// Sync helpers rebuild each bubbles list from its workflow's filtered view,
// keeping the selection index stable where possible.

func syncList[T any](l *list.Model, w *listflow.Workflow[T], row func(T) rowItem) {
	idx := l.Index()
	items := make([]list.Item, 0, len(w.Filtered()))
	for _, it := range w.Filtered() {
		items = append(items, row(it))
	}
	l.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		l.Select(idx)
	}
}

func (m *appModel) syncCurrentList() {
	switch m.view {
	case viewDashboard, viewProjects:
		syncList(&m.projectsList, m.projects, projectRow)
	case viewTasks:
		syncList(&m.tasksList, m.tasks, taskRow)
	case viewUsers:
		syncList(&m.usersList, m.users, userRow)
	case viewMembership:
		if m.membershipPicking {
			syncList(&m.projectsList, m.projects, projectRow)
		} else {
			syncList(&m.membersList, m.members, memberRow)
		}
	}
}

func (m *appModel) currentList() *list.Model {
	switch m.view {
	case viewDashboard, viewProjects:
		return &m.projectsList
	case viewTasks:
		return &m.tasksList
	case viewUsers:
		return &m.usersList
	case viewMembership:
		if m.membershipPicking {
			return &m.projectsList
		}
		return &m.membersList
	}
	return nil
}

func (m *appModel) resizeLists() {
	w := m.width - sidebarWidth(m.nav) - 2
	h := m.height - 6
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	m.projectsList.SetSize(w, h)
	m.tasksList.SetSize(w, h)
	m.usersList.SetSize(w, h)
	m.membersList.SetSize(w, h)
	m.searchInput.Width = w - 4
}

func (m *appModel) showMinibuffer(text string) int {
	m.minibuffer = text
	m.minibufferSeq++
	return m.minibufferSeq
}

// membershipRole is the signed-in user's effective role on the selected
// project, for enabling the team management keys.
func (m *appModel) membershipRole() model.TeamRole {
	var owner *model.UserSummary
	for _, p := range m.projects.Items() {
		if p.ID == m.selectedProjectID {
			owner = p.Owner
			break
		}
	}
	return perm.RoleOf(m.deps.Session.Username(), owner, m.members.Items())
}

func selectedID(l *list.Model) (int64, string, bool) {
	it, ok := l.SelectedItem().(rowItem)
	if !ok {
		return 0, "", false
	}
	return it.id, it.title, true
}
