package tui

import (
	"fmt"
	"strings"

	"taskdeck/internal/listflow"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if !m.seenWindowSize {
		return ""
	}
	if m.view == viewLogin || m.view == viewRegister {
		return m.viewAuth()
	}

	sidebar := renderSidebar(m.nav, m.height-1, m.deps.Session.Username())
	content := lipgloss.NewStyle().
		Padding(0, 1).
		Width(m.width - sidebarWidth(m.nav)).
		Height(m.height - 1).
		Render(m.viewContent())

	screen := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	screen = lipgloss.JoinVertical(lipgloss.Left, screen, m.viewStatusLine())

	if m.modal != modalNone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.viewModal())
	}
	return screen
}

func (m appModel) viewAuth() string {
	if m.authForm == nil {
		return ""
	}
	w := modalBodyWidth(m.width)
	body := m.authForm.render(m.width)

	help := "enter: sign in   ctrl+r: register   ctrl+c: quit"
	if m.view == viewRegister {
		help = "enter: create account   esc: back to sign in"
	}
	if m.authBusy {
		help = "working…"
	}
	footer := styleMuted().Width(w).Render(help)

	box := lipgloss.JoinVertical(lipgloss.Left, body, "", footer)
	if m.minibuffer != "" {
		box = lipgloss.JoinVertical(lipgloss.Left, box, "", styleMuted().Render(m.minibuffer))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m appModel) viewModal() string {
	switch m.modal {
	case modalProjectForm, modalTaskForm, modalUserForm:
		if m.form != nil {
			return m.form.render(m.width)
		}
	case modalAddMember:
		if m.memberPick != nil {
			return m.memberPick.render(m.width)
		}
	case modalConfirmDelete:
		body := fmt.Sprintf("Delete %s %q?\nThis cannot be undone.", m.confirmTarget.kind, m.confirmTarget.name)
		if m.confirmTarget.kind == "member" {
			body = fmt.Sprintf("Remove %q from the project team?", m.confirmTarget.name)
		}
		return renderConfirmModal(m.width, "Confirm delete", body, "Delete", "Cancel", m.confirmFocus)
	}
	return ""
}

func (m appModel) viewContent() string {
	switch m.view {
	case viewDashboard:
		return m.viewDashboard()
	case viewProjects:
		return m.viewList("Projects", m.projects.State(), m.projects.LastError(),
			m.filterBar(true), m.projectsList.View())
	case viewProjectDetail:
		return m.viewProjectDetail()
	case viewTasks:
		return m.viewList("My Tasks", m.tasks.State(), m.tasks.LastError(),
			m.filterBar(true), m.tasksList.View())
	case viewUsers:
		return m.viewList("Users", m.users.State(), m.users.LastError(),
			m.filterBar(false), m.usersList.View())
	case viewMembership:
		if m.membershipPicking {
			return m.viewList("Membership · pick a project", m.projects.State(), m.projects.LastError(),
				"", m.projectsList.View())
		}
		title := "Membership"
		if m.detail.ID == m.selectedProjectID && m.detail.Name != "" {
			title = "Membership · " + m.detail.Name
		}
		return m.viewList(title, m.members.State(), m.members.LastError(),
			m.filterBar(false), m.membersList.View())
	}
	return ""
}

func screenHeader(title string, st listflow.State, loadErr string) string {
	h := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title)
	if st == listflow.Loading {
		h += styleMuted().Render("  loading…")
	}
	if loadErr != "" {
		h += "  " + styleError().Render(loadErr)
	}
	return h
}

func (m appModel) viewList(title string, st listflow.State, loadErr, filters, body string) string {
	parts := []string{screenHeader(title, st, loadErr)}
	if filters != "" {
		parts = append(parts, filters)
	}
	parts = append(parts, "", body)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// filterBar shows the active criteria. Enum chips only appear on screens
// that filter on them.
func (m appModel) filterBar(enums bool) string {
	w := m.currentCriteriaTarget()
	if w == nil {
		return ""
	}
	c := w.criteria()

	var parts []string
	if m.searchFocus {
		parts = append(parts, m.searchInput.View())
	} else if c.SearchText != "" {
		parts = append(parts, "/ "+c.SearchText)
	} else {
		parts = append(parts, styleMuted().Render("/ search"))
	}
	if enums {
		statusLabel := "s:status " + c.Status
		prioLabel := "p:priority " + c.Priority
		if c.Status != listflow.FilterAll {
			statusLabel = "s:status " + statusStyle(c.Status).Render(c.Status)
		}
		if c.Priority != listflow.FilterAll {
			prioLabel = "p:priority " + priorityStyle(c.Priority).Render(c.Priority)
		}
		parts = append(parts, statusLabel, prioLabel)
	} else if m.view == viewMembership {
		parts = append(parts, "s:role "+c.Status)
	}
	parts = append(parts, styleMuted().Render("c:clear"))
	return strings.Join(parts, "   ")
}

func (m appModel) viewDashboard() string {
	var b strings.Builder
	b.WriteString(screenHeader("Dashboard", m.projects.State(), m.projects.LastError()))
	b.WriteString("\n")

	var total, done, overdue int
	for _, p := range m.projects.Items() {
		if s, ok := m.stats[p.ID]; ok {
			total += s.TotalTasks
			done += s.CompletedTasks
			overdue += s.OverdueTasks
		}
	}
	summary := fmt.Sprintf("%d projects · %d tasks · %d completed", len(m.projects.Items()), total, done)
	if overdue > 0 {
		summary += " · " + styleError().Render(fmt.Sprintf("%d overdue", overdue))
	}
	b.WriteString(styleMuted().Render(summary))
	b.WriteString("\n\n")
	b.WriteString(m.projectsList.View())

	if id, _, ok := selectedID(&m.projectsList); ok {
		if s, found := m.stats[id]; found {
			b.WriteString("\n")
			b.WriteString(styleMuted().Render(fmt.Sprintf(
				"selected: %d tasks, %d in progress, %d completed, %d overdue, %d on team",
				s.TotalTasks, s.InProgressTasks, s.CompletedTasks, s.OverdueTasks, s.TeamMembers)))
		}
	}
	return b.String()
}

func (m appModel) viewProjectDetail() string {
	var b strings.Builder
	title := m.detail.Name
	if title == "" {
		title = "Project"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title))
	if m.detailErr != "" {
		b.WriteString("  " + styleError().Render(m.detailErr))
		return b.String()
	}
	if m.detail.ID == 0 {
		b.WriteString(styleMuted().Render("  loading…"))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(statusStyle(string(m.detail.Status)).Render(string(m.detail.Status)))
	b.WriteString("  ")
	b.WriteString(priorityStyle(string(m.detail.Priority)).Render(string(m.detail.Priority)))
	b.WriteString(fmt.Sprintf("  %d%%", m.detail.Progress))
	if m.detail.Owner != nil {
		b.WriteString("  " + styleMuted().Render("owner: "+m.detail.Owner.DisplayName()))
	}
	b.WriteString("\n")

	meta := m.detail.StartDate
	if m.detail.EndDate != "" {
		meta += " → " + m.detail.EndDate
	}
	if m.detail.Budget > 0 {
		meta += fmt.Sprintf("   budget %.2f", m.detail.Budget)
	}
	b.WriteString(styleMuted().Render(meta))
	b.WriteString("\n\n")

	if m.detail.Description != "" {
		width := m.width - sidebarWidth(m.nav) - 4
		b.WriteString(renderMarkdown(m.detail.Description, width))
		b.WriteString("\n")
	}

	s := m.detailStats
	b.WriteString(fmt.Sprintf("Tasks: %d total, %d in progress, %d completed", s.TotalTasks, s.InProgressTasks, s.CompletedTasks))
	if s.OverdueTasks > 0 {
		b.WriteString(", " + styleError().Render(fmt.Sprintf("%d overdue", s.OverdueTasks)))
	}
	b.WriteString("\n\n")

	if len(m.detailTeam) > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Team"))
		b.WriteString("\n")
		for _, tm := range m.detailTeam {
			b.WriteString(fmt.Sprintf("  %-20s %s\n", tm.User.Username, styleMuted().Render(string(tm.Role))))
		}
		b.WriteString("\n")
	}

	if len(m.detailTasks) > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Recent tasks"))
		b.WriteString("\n")
		shown := m.detailTasks
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, t := range shown {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				statusStyle(string(t.Status)).Render(fmt.Sprintf("%-11s", t.Status)),
				truncate(t.Title, 48)))
		}
		if rest := len(m.detailTasks) - len(shown); rest > 0 {
			b.WriteString(styleMuted().Render(fmt.Sprintf("  … and %d more\n", rest)))
		}
	}
	return b.String()
}

func (m appModel) viewStatusLine() string {
	left := m.minibuffer
	if left == "" {
		left = m.keyHelp()
	}
	style := styleMuted().Width(m.width).Padding(0, 1)
	return style.Render(truncate(left, m.width-2))
}

func (m appModel) keyHelp() string {
	base := "1-6: screens   ctrl+b: sidebar   ctrl+t: theme   ctrl+l: sign out   q: quit"
	switch m.view {
	case viewDashboard:
		return "enter: open project   r: reload   " + base
	case viewProjects:
		return "enter: open   n: new   e: edit   d: delete   /: search   " + base
	case viewTasks:
		return "enter: edit   n: new   d: delete   /: search   " + base
	case viewUsers:
		return "n: add   d: delete   /: search   " + base
	case viewMembership:
		if m.membershipPicking {
			return "enter: pick project   " + base
		}
		return "a: add member   d: remove   esc: pick another project   " + base
	case viewProjectDetail:
		return "e: edit project   n: new task   esc: back   " + base
	}
	return base
}
