package tui

import (
	"strings"

	"taskdeck/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type memberModalFocus int

const (
	memberFocusUsers memberModalFocus = iota
	memberFocusRole
)

// memberModal is the add-team-member dialog: a picker over the users not yet
// on the team plus a role selector. Role defaults to MEMBER.
type memberModal struct {
	users  list.Model
	role   enumField
	focus  memberModalFocus
	errMsg string
}

// availableUsers filters out users already on the team.
func availableUsers(all []model.User, team []model.TeamMember) []model.User {
	out := make([]model.User, 0, len(all))
	for _, u := range all {
		onTeam := false
		for _, m := range team {
			if m.User.ID == u.ID {
				onTeam = true
				break
			}
		}
		if !onTeam {
			out = append(out, u)
		}
	}
	return out
}

func newMemberModal(available []model.User) *memberModal {
	l := newScreenList("Users")
	l.SetShowPagination(false)
	items := make([]list.Item, 0, len(available))
	for _, u := range available {
		title := u.Username
		items = append(items, rowItem{
			id:    u.ID,
			title: title,
			line:  title + "  " + styleMuted().Render(u.Email),
		})
	}
	l.SetItems(items)
	l.SetSize(48, 10)

	m := &memberModal{
		users: l,
		role:  enumField{label: "Role", options: enumOptions(model.TeamRoles)},
	}
	m.role.set(string(model.RoleMember))
	return m
}

// update returns true when the modal wants to submit.
func (m *memberModal) update(msg tea.Msg) (submit bool, cmd tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab":
			if m.focus == memberFocusUsers {
				m.focus = memberFocusRole
			} else {
				m.focus = memberFocusUsers
			}
			return false, nil
		case "left", "right":
			if m.focus == memberFocusRole {
				if key.String() == "left" {
					m.role.prev()
				} else {
					m.role.next()
				}
				return false, nil
			}
		case "enter":
			return true, nil
		}
	}

	if m.focus == memberFocusUsers {
		var c tea.Cmd
		m.users, c = m.users.Update(msg)
		return false, c
	}
	return false, nil
}

// selection returns the picked user id, or 0 when nothing is selected.
func (m *memberModal) selection() (int64, model.TeamRole) {
	it, ok := m.users.SelectedItem().(rowItem)
	if !ok {
		return 0, model.TeamRole(m.role.value())
	}
	return it.id, model.TeamRole(m.role.value())
}

func (m *memberModal) render(width int) string {
	var b strings.Builder

	usersLabel := "  Users"
	roleLabel := "  Role"
	active := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	if m.focus == memberFocusUsers {
		usersLabel = active.Render("› Users")
	} else {
		roleLabel = active.Render("› Role")
	}

	b.WriteString(usersLabel + "\n")
	b.WriteString(m.users.View() + "\n")
	b.WriteString(roleLabel + "  ◀ " + m.role.value() + " ▶\n")
	if m.errMsg != "" {
		b.WriteString("\n" + styleError().Render(m.errMsg))
	}
	b.WriteString("\n" + styleMuted().Render("tab: users/role   enter: add   esc: cancel"))
	return renderModalBox(width, "Add team member", b.String())
}
