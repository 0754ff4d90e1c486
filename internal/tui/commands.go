package tui

import (
	"context"
	"time"

	"taskdeck/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Network work runs as commands; the Update loop stays synchronous. Every
// list load carries its workflow sequence number so superseded responses are
// ignored, and every load uses a per-screen context that navigation cancels
// on teardown.

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (m *appModel) screenContext(v view) context.Context {
	if cancel, ok := m.loadCancels[v]; ok && cancel != nil {
		cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.loadCancels[v] = cancel
	return ctx
}

func (m *appModel) cancelScreenLoads(v view) {
	if cancel, ok := m.loadCancels[v]; ok && cancel != nil {
		cancel()
		delete(m.loadCancels, v)
	}
}

func (m *appModel) loginCmd(user, password string) tea.Cmd {
	sess := m.deps.Session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		resp, err := sess.Login(ctx, model.Credentials{UsernameOrEmail: user, Password: password})
		if err != nil {
			return loginDoneMsg{err: err.Error()}
		}
		return loginDoneMsg{username: resp.User.Username}
	}
}

func (m *appModel) registerCmd(req model.RegisterRequest) tea.Cmd {
	sess := m.deps.Session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		u, err := sess.Register(ctx, req)
		if err != nil {
			return registerDoneMsg{err: err.Error()}
		}
		return registerDoneMsg{user: u}
	}
}

func (m *appModel) loadProjectsCmd(seq int) tea.Cmd {
	client := m.deps.Client
	ctx := m.screenContext(viewProjects)
	return func() tea.Msg {
		items, err := client.MyProjects(ctx)
		if err != nil {
			return projectsLoadedMsg{seq: seq, err: errText(err)}
		}
		return projectsLoadedMsg{seq: seq, items: items}
	}
}

func (m *appModel) loadTasksCmd(seq int) tea.Cmd {
	client := m.deps.Client
	ctx := m.screenContext(viewTasks)
	return func() tea.Msg {
		items, err := client.Tasks(ctx)
		if err != nil {
			return tasksLoadedMsg{seq: seq, err: errText(err)}
		}
		return tasksLoadedMsg{seq: seq, items: items}
	}
}

func (m *appModel) loadUsersCmd(seq int) tea.Cmd {
	client := m.deps.Client
	ctx := m.screenContext(viewUsers)
	return func() tea.Msg {
		items, err := client.Users(ctx)
		if err != nil {
			return usersLoadedMsg{seq: seq, err: errText(err)}
		}
		return usersLoadedMsg{seq: seq, items: items}
	}
}

func (m *appModel) loadMembersCmd(seq int, projectID int64) tea.Cmd {
	client := m.deps.Client
	ctx := m.screenContext(viewMembership)
	return func() tea.Msg {
		items, err := client.ProjectTeam(ctx, projectID)
		if err != nil {
			return membersLoadedMsg{seq: seq, projectID: projectID, err: errText(err)}
		}
		return membersLoadedMsg{seq: seq, projectID: projectID, items: items}
	}
}

// loadDashboardCmd fetches the project list for the dashboard; per-project
// stats follow as separate statsLoadedMsg results.
func (m *appModel) loadDashboardCmd(seq int) tea.Cmd {
	client := m.deps.Client
	ctx := m.screenContext(viewDashboard)
	return func() tea.Msg {
		items, err := client.MyProjects(ctx)
		if err != nil {
			return projectsLoadedMsg{seq: seq, err: errText(err)}
		}
		return projectsLoadedMsg{seq: seq, items: items}
	}
}

func (m *appModel) loadStatsCmd(ctx context.Context, projectID int64) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		stats, err := client.ProjectStats(ctx, projectID)
		if err != nil {
			return statsLoadedMsg{projectID: projectID, err: errText(err)}
		}
		return statsLoadedMsg{projectID: projectID, stats: stats}
	}
}

// statsBatchCmd fans out one stats fetch per project on the dashboard.
func (m *appModel) statsBatchCmd(projects []model.Project) tea.Cmd {
	ctx := m.screenContext(viewDashboard)
	cmds := make([]tea.Cmd, 0, len(projects))
	for _, p := range projects {
		cmds = append(cmds, m.loadStatsCmd(ctx, p.ID))
	}
	return tea.Batch(cmds...)
}

// loadProjectDetailCmd fetches everything the detail screen shows in one
// command: the project, its stats, team and tasks.
func (m *appModel) loadProjectDetailCmd(seq int, projectID int64) tea.Cmd {
	client := m.deps.Client
	ctx := m.screenContext(viewProjectDetail)
	return func() tea.Msg {
		out := detailLoadedMsg{seq: seq, projectID: projectID}

		p, err := client.Project(ctx, projectID)
		if err != nil {
			out.err = errText(err)
			return out
		}
		out.project = p

		if stats, err := client.ProjectStats(ctx, projectID); err == nil {
			out.stats = stats
		}
		if team, err := client.ProjectTeam(ctx, projectID); err == nil {
			out.team = team
		}
		if tasks, err := client.ProjectTasks(ctx, projectID); err == nil {
			out.tasks = tasks
		}
		return out
	}
}

func (m *appModel) saveProjectCmd(p model.Project) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		var err error
		if p.ID == 0 {
			_, err = client.CreateProject(ctx, p)
		} else {
			_, err = client.UpdateProject(ctx, p.ID, p)
		}
		if err != nil {
			return mutationDoneMsg{kind: "project", err: errText(err)}
		}
		return mutationDoneMsg{kind: "project", ok: true, note: "Saved"}
	}
}

func (m *appModel) saveTaskCmd(t model.Task) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		var err error
		if t.ID == 0 {
			_, err = client.CreateTask(ctx, t)
		} else {
			_, err = client.UpdateTask(ctx, t.ID, t)
		}
		if err != nil {
			return mutationDoneMsg{kind: "task", err: errText(err)}
		}
		return mutationDoneMsg{kind: "task", ok: true, note: "Saved"}
	}
}

// createUserCmd backs the add-user modal on the users screen: the backend
// exposes user creation only through registration.
func (m *appModel) createUserCmd(req model.RegisterRequest) tea.Cmd {
	sess := m.deps.Session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		u, err := sess.Register(ctx, req)
		if err != nil {
			return mutationDoneMsg{kind: "user", err: errText(err)}
		}
		return mutationDoneMsg{kind: "user", ok: true, note: "User " + u.Username + " created"}
	}
}

func (m *appModel) deleteCmd(target deleteTarget, projectID int64) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		var err error
		switch target.kind {
		case "project":
			err = client.DeleteProject(ctx, target.id)
		case "task":
			err = client.DeleteTask(ctx, target.id)
		case "user":
			err = client.DeleteUser(ctx, target.id)
		case "member":
			err = client.RemoveTeamMember(ctx, projectID, target.id)
		}
		if err != nil {
			return mutationDoneMsg{kind: target.kind, err: errText(err)}
		}
		note := "Deleted"
		switch target.kind {
		case "user":
			note = "User deleted"
		case "member":
			note = "Team updated"
		}
		return mutationDoneMsg{kind: target.kind, ok: true, note: note}
	}
}

func (m *appModel) addMemberCmd(projectID, userID int64, role model.TeamRole) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := client.AddTeamMember(ctx, projectID, userID, role); err != nil {
			return mutationDoneMsg{kind: "member", err: errText(err)}
		}
		return mutationDoneMsg{kind: "member", ok: true, note: "Team updated"}
	}
}

func (m *appModel) minibufferClearCmd(seq int) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return minibufferClearMsg{seq: seq}
	})
}
