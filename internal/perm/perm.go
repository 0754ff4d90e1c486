package perm

import "taskdeck/internal/model"

// Team roles form a strict ladder; every capability check reduces to
// "at least role X". The server enforces the same rules; these checks only
// exist to disable UI affordances the request would be rejected for anyway.

var roleRank = map[model.TeamRole]int{
	model.RoleViewer:  0,
	model.RoleMember:  1,
	model.RoleLead:    2,
	model.RoleManager: 3,
	model.RoleAdmin:   4,
}

// AtLeast reports whether r ranks at or above min. Unknown roles rank below
// VIEWER.
func AtLeast(r, min model.TeamRole) bool {
	rr, ok := roleRank[r]
	if !ok {
		return false
	}
	return rr >= roleRank[min]
}

// CanEditTasks: members and up create and edit tasks; viewers are read-only.
func CanEditTasks(r model.TeamRole) bool {
	return AtLeast(r, model.RoleMember)
}

// CanManageTeam: leads and up add or remove team members.
func CanManageTeam(r model.TeamRole) bool {
	return AtLeast(r, model.RoleLead)
}

// CanDeleteProject: managers and up.
func CanDeleteProject(r model.TeamRole) bool {
	return AtLeast(r, model.RoleManager)
}

// RoleOf resolves a user's effective role on a project. The owner is always
// ADMIN regardless of (or without) a team entry; otherwise the team entry
// decides, and absence means VIEWER.
func RoleOf(username string, owner *model.UserSummary, team []model.TeamMember) model.TeamRole {
	if username == "" {
		return model.RoleViewer
	}
	if owner != nil && owner.Username == username {
		return model.RoleAdmin
	}
	for _, tm := range team {
		if tm.User.Username == username {
			return tm.Role
		}
	}
	return model.RoleViewer
}
