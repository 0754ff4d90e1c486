package tui

import (
	"context"

	"taskdeck/internal/listflow"
	"taskdeck/internal/model"
	"taskdeck/internal/nav"
	"taskdeck/internal/perm"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	if m.view == viewLogin || m.view == viewRegister {
		return nil
	}
	return m.enterView(m.view)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginDoneMsg:
		m.authBusy = false
		if msg.err != "" {
			if m.authForm != nil {
				m.authForm.errMsg = msg.err
			}
			return m, nil
		}
		m.authForm = nil
		seq := m.showMinibuffer("Signed in as " + msg.username)
		return m, tea.Batch(m.navigate(viewDashboard), m.minibufferClearCmd(seq))

	case registerDoneMsg:
		m.authBusy = false
		if msg.err != "" {
			if m.authForm != nil {
				m.authForm.errMsg = msg.err
			}
			return m, nil
		}
		// Registration does not sign in; drop back to the login form.
		m.view = viewLogin
		m.authForm = newLoginForm()
		seq := m.showMinibuffer("Account created for " + msg.user.Username + ", sign in")
		return m, m.minibufferClearCmd(seq)

	case projectsLoadedMsg:
		if m.projects.FinishLoad(msg.seq, msg.items, msg.err) {
			m.syncCurrentList()
			if msg.err == "" && m.view == viewDashboard {
				return m, m.statsBatchCmd(msg.items)
			}
		}
		return m, nil

	case tasksLoadedMsg:
		if m.tasks.FinishLoad(msg.seq, msg.items, msg.err) {
			m.syncCurrentList()
		}
		return m, nil

	case usersLoadedMsg:
		if m.users.FinishLoad(msg.seq, msg.items, msg.err) {
			m.syncCurrentList()
		}
		return m, nil

	case membersLoadedMsg:
		if msg.projectID == m.selectedProjectID &&
			m.members.FinishLoad(msg.seq, msg.items, msg.err) {
			m.syncCurrentList()
		}
		return m, nil

	case statsLoadedMsg:
		if msg.err == "" {
			m.stats[msg.projectID] = msg.stats
		}
		return m, nil

	case detailLoadedMsg:
		if msg.seq != m.detailSeq || msg.projectID != m.selectedProjectID {
			return m, nil
		}
		m.detailErr = msg.err
		if msg.err == "" {
			m.detail = msg.project
			m.detailStats = msg.stats
			m.detailTeam = msg.team
			m.detailTasks = msg.tasks
		}
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibuffer = ""
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != "" {
		switch {
		case m.form != nil && m.modal != modalNone:
			m.form.errMsg = msg.err
		case m.memberPick != nil && m.modal == modalAddMember:
			m.memberPick.errMsg = msg.err
		default:
			seq := m.showMinibuffer("Error: " + msg.err)
			return m, m.minibufferClearCmd(seq)
		}
		return m, nil
	}

	m.modal = modalNone
	m.form = nil
	m.memberPick = nil

	var cmds []tea.Cmd
	note := msg.note
	if note == "" {
		note = "Saved"
	}
	switch msg.kind {
	case "project":
		if m.projects.DialogClosed(true) {
			cmds = append(cmds, m.loadProjectsCmd(m.projects.BeginLoad()))
		}
	case "task":
		if m.tasks.DialogClosed(true) {
			cmds = append(cmds, m.loadTasksCmd(m.tasks.BeginLoad()))
		}
	case "user":
		if m.users.DialogClosed(true) {
			cmds = append(cmds, m.loadUsersCmd(m.users.BeginLoad()))
		}
	case "member":
		if m.members.DialogClosed(true) {
			cmds = append(cmds, m.loadMembersCmd(m.members.BeginLoad(), m.selectedProjectID))
		}
	}
	if m.view == viewProjectDetail && (msg.kind == "project" || msg.kind == "task" || msg.kind == "member") {
		m.detailSeq++
		cmds = append(cmds, m.loadProjectDetailCmd(m.detailSeq, m.selectedProjectID))
	}
	seq := m.showMinibuffer(note)
	cmds = append(cmds, m.minibufferClearCmd(seq))
	return m, tea.Batch(cmds...)
}

// navigate routes to a view through the auth guard, cancelling any loads the
// departing view still has in flight.
func (m *appModel) navigate(v view) tea.Cmd {
	if v != viewLogin && v != viewRegister {
		if d := m.guard.Check(); !d.Allowed {
			m.view = viewLogin
			m.authForm = newLoginForm()
			m.nav.SetRoute(d.Redirect)
			return nil
		}
	}
	m.cancelScreenLoads(m.view)
	m.searchFocus = false
	m.searchInput.Blur()
	return m.enterView(v)
}

// enterView switches screens and issues the screen's initial load.
func (m *appModel) enterView(v view) tea.Cmd {
	m.view = v
	m.nav.SetRoute(viewRoute(v, m.selectedProjectID))
	m.resizeLists()

	switch v {
	case viewDashboard:
		return m.loadDashboardCmd(m.projects.BeginLoad())
	case viewProjects:
		m.searchInput.SetValue(m.projects.Criteria().SearchText)
		return m.loadProjectsCmd(m.projects.BeginLoad())
	case viewProjectDetail:
		m.detailSeq++
		m.detailErr = ""
		return m.loadProjectDetailCmd(m.detailSeq, m.selectedProjectID)
	case viewTasks:
		m.searchInput.SetValue(m.tasks.Criteria().SearchText)
		return m.loadTasksCmd(m.tasks.BeginLoad())
	case viewUsers:
		m.searchInput.SetValue(m.users.Criteria().SearchText)
		return m.loadUsersCmd(m.users.BeginLoad())
	case viewMembership:
		m.membershipPicking = m.selectedProjectID == 0
		if m.membershipPicking {
			return m.loadProjectsCmd(m.projects.BeginLoad())
		}
		// Users load alongside so the add-member picker has candidates.
		return tea.Batch(
			m.loadMembersCmd(m.members.BeginLoad(), m.selectedProjectID),
			m.loadUsersCmd(m.users.BeginLoad()),
		)
	}
	return nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.saveUIState()
		return m, tea.Quit
	}
	if m.authBusy {
		return m, nil
	}

	if m.view == viewLogin || m.view == viewRegister {
		return m.handleAuthKey(msg)
	}
	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}
	if m.searchFocus {
		return m.handleSearchKey(msg)
	}

	switch key {
	case "q":
		m.saveUIState()
		return m, tea.Quit
	case "1":
		return m, m.navigate(viewDashboard)
	case "2":
		return m, m.navigate(viewProjects)
	case "3":
		return m, m.navigate(viewTasks)
	case "4":
		// Team is a submenu, not a screen.
		for _, it := range m.nav.Items {
			if it.Label == "Team" {
				m.nav.ToggleSubmenu(it)
			}
		}
		return m, nil
	case "5":
		return m, m.navigate(viewUsers)
	case "6":
		return m, m.navigate(viewMembership)
	case "ctrl+b":
		m.nav.ToggleSidebar()
		m.resizeLists()
		return m, nil
	case "ctrl+t":
		_ = m.deps.Themes.Toggle(context.Background())
		applyTheme(m.deps.Themes.Current())
		seq := m.showMinibuffer("Theme: " + string(m.deps.Themes.Current()))
		return m, m.minibufferClearCmd(seq)
	case "ctrl+l":
		if err := m.deps.Session.Logout(context.Background()); err != nil {
			m.deps.Log.Warn().Err(err).Msg("logout")
		}
		m.view = viewLogin
		m.authForm = newLoginForm()
		m.nav.SetRoute(nav.LoginRoute)
		return m, nil
	case "r":
		return m, m.enterView(m.view)
	case "esc":
		switch {
		case m.view == viewProjectDetail:
			return m, m.navigate(viewProjects)
		case m.view == viewMembership && !m.membershipPicking:
			m.membershipPicking = true
			m.syncCurrentList()
			return m, nil
		}
		return m, nil
	}

	return m.handleScreenKey(msg)
}

func (m appModel) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		if m.view == viewLogin {
			m.view = viewRegister
			m.authForm = newRegisterForm()
		}
		return m, nil
	case "esc":
		if m.view == viewRegister {
			m.view = viewLogin
			m.authForm = newLoginForm()
		}
		return m, nil
	}
	if m.authForm == nil {
		return m, nil
	}
	submit, cmd := m.authForm.update(msg)
	if !submit {
		return m, cmd
	}
	if m.view == viewRegister {
		req, errMsg := m.authForm.registerFromForm()
		if errMsg != "" {
			m.authForm.errMsg = errMsg
			return m, nil
		}
		m.authBusy = true
		return m, m.registerCmd(req)
	}
	user := m.authForm.value("Username")
	pass := m.authForm.value("Password")
	if user == "" || pass == "" {
		m.authForm.errMsg = "Username and password are required"
		return m, nil
	}
	m.authBusy = true
	return m, m.loginCmd(user, pass)
}

func (m appModel) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmDelete:
		switch msg.String() {
		case "esc":
			m.cancelPendingDelete()
			m.modal = modalNone
			return m, nil
		case "tab", "left", "right":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
			return m, nil
		case "enter":
			if m.confirmFocus != confirmFocusConfirm {
				m.cancelPendingDelete()
				m.modal = modalNone
				return m, nil
			}
			if !m.confirmPendingDelete() {
				m.modal = modalNone
				return m, nil
			}
			m.modal = modalNone
			return m, m.deleteCmd(m.confirmTarget, m.selectedProjectID)
		}
		return m, nil

	case modalProjectForm, modalTaskForm, modalUserForm:
		if msg.String() == "esc" {
			m.modal = modalNone
			m.form = nil
			return m, nil
		}
		if m.form == nil {
			m.modal = modalNone
			return m, nil
		}
		submit, cmd := m.form.update(msg)
		if !submit {
			return m, cmd
		}
		switch m.modal {
		case modalProjectForm:
			p, errMsg := m.form.projectFromForm()
			if errMsg != "" {
				m.form.errMsg = errMsg
				return m, nil
			}
			return m, m.saveProjectCmd(p)
		case modalUserForm:
			req, errMsg := m.form.registerFromForm()
			if errMsg != "" {
				m.form.errMsg = errMsg
				return m, nil
			}
			return m, m.createUserCmd(req)
		}
		t, errMsg := m.form.taskFromForm()
		if errMsg != "" {
			m.form.errMsg = errMsg
			return m, nil
		}
		return m, m.saveTaskCmd(t)

	case modalAddMember:
		if msg.String() == "esc" {
			m.modal = modalNone
			m.memberPick = nil
			return m, nil
		}
		if m.memberPick == nil {
			m.modal = modalNone
			return m, nil
		}
		submit, cmd := m.memberPick.update(msg)
		if !submit {
			return m, cmd
		}
		userID, role := m.memberPick.selection()
		if userID == 0 {
			m.memberPick.errMsg = "No user selected"
			return m, nil
		}
		return m, m.addMemberCmd(m.selectedProjectID, userID, role)
	}
	return m, nil
}

// cancelPendingDelete disarms whichever workflow armed the confirmation.
func (m *appModel) cancelPendingDelete() {
	m.projects.CancelDelete()
	m.tasks.CancelDelete()
	m.users.CancelDelete()
	m.members.CancelDelete()
}

func (m *appModel) confirmPendingDelete() bool {
	switch m.confirmTarget.kind {
	case "project":
		return m.projects.ConfirmDelete()
	case "task":
		return m.tasks.ConfirmDelete()
	case "user":
		return m.users.ConfirmDelete()
	case "member":
		return m.members.ConfirmDelete()
	}
	return false
}

func (m appModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searchFocus = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applySearch(m.searchInput.Value())
	return m, cmd
}

func (m *appModel) applySearch(text string) {
	w := m.currentCriteriaTarget()
	if w == nil {
		return
	}
	c := w.criteria()
	c.SearchText = text
	w.setCriteria(c)
	m.syncCurrentList()
}

// criteriaTarget erases the workflow's element type for the filter-bar
// plumbing, which only touches criteria.
type criteriaTarget interface {
	criteria() listflow.FilterCriteria
	setCriteria(listflow.FilterCriteria)
	clear()
}

type wfTarget[T any] struct{ w *listflow.Workflow[T] }

func (t wfTarget[T]) criteria() listflow.FilterCriteria     { return t.w.Criteria() }
func (t wfTarget[T]) setCriteria(c listflow.FilterCriteria) { t.w.SetCriteria(c) }
func (t wfTarget[T]) clear()                                { t.w.ClearFilters() }

func (m *appModel) currentCriteriaTarget() criteriaTarget {
	switch m.view {
	case viewProjects:
		return wfTarget[model.Project]{m.projects}
	case viewTasks:
		return wfTarget[model.Task]{m.tasks}
	case viewUsers:
		return wfTarget[model.User]{m.users}
	case viewMembership:
		if !m.membershipPicking {
			return wfTarget[model.TeamMember]{m.members}
		}
	}
	return nil
}

// cycleEnum advances through ALL plus the given options, wrapping around.
func cycleEnum[T ~string](current string, opts []T) string {
	if current == "" || current == listflow.FilterAll {
		if len(opts) == 0 {
			return listflow.FilterAll
		}
		return string(opts[0])
	}
	for i, o := range opts {
		if string(o) == current {
			if i+1 < len(opts) {
				return string(opts[i+1])
			}
			return listflow.FilterAll
		}
	}
	return listflow.FilterAll
}

func (m *appModel) cycleStatusFilter() {
	w := m.currentCriteriaTarget()
	if w == nil {
		return
	}
	c := w.criteria()
	switch m.view {
	case viewProjects:
		c.Status = cycleEnum(c.Status, model.ProjectStatuses)
	case viewTasks:
		c.Status = cycleEnum(c.Status, model.TaskStatuses)
	case viewMembership:
		c.Status = cycleEnum(c.Status, model.TeamRoles)
	default:
		return
	}
	w.setCriteria(c)
	m.syncCurrentList()
}

func (m *appModel) cyclePriorityFilter() {
	w := m.currentCriteriaTarget()
	if w == nil {
		return
	}
	c := w.criteria()
	switch m.view {
	case viewProjects:
		c.Priority = cycleEnum(c.Priority, model.ProjectPriorities)
	case viewTasks:
		c.Priority = cycleEnum(c.Priority, model.TaskPriorities)
	default:
		return
	}
	w.setCriteria(c)
	m.syncCurrentList()
}

func (m appModel) handleScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Filter-bar keys apply on any list screen.
	switch key {
	case "/":
		if m.currentCriteriaTarget() != nil {
			m.searchFocus = true
			m.searchInput.Focus()
			return m, nil
		}
	case "s":
		m.cycleStatusFilter()
		return m, nil
	case "p":
		m.cyclePriorityFilter()
		return m, nil
	case "c":
		if w := m.currentCriteriaTarget(); w != nil {
			w.clear()
			m.searchInput.SetValue("")
			m.syncCurrentList()
			return m, nil
		}
	}

	switch m.view {
	case viewDashboard, viewProjects:
		switch key {
		case "enter":
			if id, _, ok := selectedID(&m.projectsList); ok {
				m.selectedProjectID = id
				return m, m.navigate(viewProjectDetail)
			}
			return m, nil
		case "n":
			m.form = newProjectForm(nil)
			m.modal = modalProjectForm
			return m, nil
		case "e":
			if p, ok := m.selectedProject(); ok {
				m.form = newProjectForm(&p)
				m.modal = modalProjectForm
			}
			return m, nil
		case "d":
			if id, name, ok := selectedID(&m.projectsList); ok {
				m.projects.RequestDelete()
				m.confirmTarget = deleteTarget{kind: "project", id: id, name: name}
				m.confirmFocus = confirmFocusCancel
				m.modal = modalConfirmDelete
			}
			return m, nil
		}

	case viewTasks:
		switch key {
		case "n":
			m.form = newTaskForm(nil, 0)
			m.modal = modalTaskForm
			return m, nil
		case "enter", "e":
			if t, ok := m.selectedTask(); ok {
				m.form = newTaskForm(&t, 0)
				m.modal = modalTaskForm
			}
			return m, nil
		case "d":
			if id, name, ok := selectedID(&m.tasksList); ok {
				m.tasks.RequestDelete()
				m.confirmTarget = deleteTarget{kind: "task", id: id, name: name}
				m.confirmFocus = confirmFocusCancel
				m.modal = modalConfirmDelete
			}
			return m, nil
		}

	case viewUsers:
		switch key {
		case "n", "a":
			m.form = newUserForm()
			m.modal = modalUserForm
			return m, nil
		case "d":
			if id, name, ok := selectedID(&m.usersList); ok {
				m.users.RequestDelete()
				m.confirmTarget = deleteTarget{kind: "user", id: id, name: name}
				m.confirmFocus = confirmFocusCancel
				m.modal = modalConfirmDelete
			}
			return m, nil
		}

	case viewMembership:
		if m.membershipPicking {
			if key == "enter" {
				if id, _, ok := selectedID(&m.projectsList); ok {
					m.selectedProjectID = id
					m.membershipPicking = false
					m.nav.SetRoute(viewRoute(viewMembership, id))
					return m, tea.Batch(
						m.loadMembersCmd(m.members.BeginLoad(), id),
						m.loadUsersCmd(m.users.BeginLoad()),
					)
				}
				return m, nil
			}
			break
		}
		switch key {
		case "a":
			if !perm.CanManageTeam(m.membershipRole()) {
				seq := m.showMinibuffer("Managing the team requires the LEAD role")
				return m, m.minibufferClearCmd(seq)
			}
			m.memberPick = newMemberModal(availableUsers(m.users.Items(), m.members.Items()))
			m.modal = modalAddMember
			return m, nil
		case "d":
			if !perm.CanManageTeam(m.membershipRole()) {
				seq := m.showMinibuffer("Managing the team requires the LEAD role")
				return m, m.minibufferClearCmd(seq)
			}
			if id, name, ok := selectedID(&m.membersList); ok {
				m.members.RequestDelete()
				m.confirmTarget = deleteTarget{kind: "member", id: id, name: name}
				m.confirmFocus = confirmFocusCancel
				m.modal = modalConfirmDelete
			}
			return m, nil
		}

	case viewProjectDetail:
		switch key {
		case "e":
			if m.detailErr == "" && m.detail.ID != 0 {
				p := m.detail
				m.form = newProjectForm(&p)
				m.modal = modalProjectForm
			}
			return m, nil
		case "n":
			m.form = newTaskForm(nil, m.selectedProjectID)
			m.modal = modalTaskForm
			return m, nil
		}
		return m, nil
	}

	// Everything else is list navigation.
	if l := m.currentList(); l != nil {
		var cmd tea.Cmd
		*l, cmd = l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) selectedProject() (model.Project, bool) {
	id, _, ok := selectedID(&m.projectsList)
	if !ok {
		return model.Project{}, false
	}
	for _, p := range m.projects.Items() {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

func (m *appModel) selectedTask() (model.Task, bool) {
	id, _, ok := selectedID(&m.tasksList)
	if !ok {
		return model.Task{}, false
	}
	for _, t := range m.tasks.Items() {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
