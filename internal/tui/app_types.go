package tui

import (
	"taskdeck/internal/model"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewDashboard
	viewProjects
	viewProjectDetail
	viewTasks
	viewUsers
	viewMembership
)

func viewRoute(v view, projectID int64) string {
	switch v {
	case viewLogin:
		return "/login"
	case viewRegister:
		return "/register"
	case viewDashboard:
		return "/dashboard"
	case viewProjects:
		return "/projects"
	case viewProjectDetail:
		return routeProjectDetail(projectID)
	case viewTasks:
		return "/tasks"
	case viewUsers:
		return "/team/users"
	case viewMembership:
		return "/team/membership"
	}
	return "/"
}

func routeProjectDetail(id int64) string {
	return "/projects/" + itoa64(id)
}

type modalKind int

const (
	modalNone modalKind = iota
	modalProjectForm
	modalTaskForm
	modalUserForm
	modalAddMember
	modalConfirmDelete
)

// deleteTarget names what a pending confirm-delete applies to.
type deleteTarget struct {
	kind string // project|task|user|member
	id   int64
	name string
}

// Messages. Load results carry the listflow sequence number so stale
// responses are dropped by the workflow.

type loginDoneMsg struct {
	username string
	err      string
}

type registerDoneMsg struct {
	user model.User
	err  string
}

type projectsLoadedMsg struct {
	seq   int
	items []model.Project
	err   string
}

type tasksLoadedMsg struct {
	seq   int
	items []model.Task
	err   string
}

type usersLoadedMsg struct {
	seq   int
	items []model.User
	err   string
}

type membersLoadedMsg struct {
	seq       int
	projectID int64
	items     []model.TeamMember
	err       string
}

type statsLoadedMsg struct {
	projectID int64
	stats     model.ProjectStats
	err       string
}

type detailLoadedMsg struct {
	seq       int
	projectID int64
	project   model.Project
	stats     model.ProjectStats
	team      []model.TeamMember
	tasks     []model.Task
	err       string
}

// mutationDoneMsg is the dialog-close signal: ok means the mutation
// committed and the owning list must reload. note is the minibuffer text
// shown on success.
type mutationDoneMsg struct {
	kind string // project|task|user|member
	ok   bool
	note string
	err  string
}

type minibufferClearMsg struct{ seq int }
