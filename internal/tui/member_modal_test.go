package tui

import (
	"testing"

	"taskdeck/internal/model"
)

func TestAvailableUsersExcludesCurrentTeam(t *testing.T) {
	all := []model.User{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
		{ID: 3, Username: "carol"},
	}
	team := []model.TeamMember{
		{User: model.UserSummary{ID: 2, Username: "bob"}, Role: model.RoleMember},
	}

	got := availableUsers(all, team)
	if len(got) != 2 {
		t.Fatalf("availableUsers returned %d users, want 2", len(got))
	}
	for _, u := range got {
		if u.ID == 2 {
			t.Fatalf("team member still offered as candidate")
		}
	}
}

func TestAvailableUsersEmptyTeam(t *testing.T) {
	all := []model.User{{ID: 1, Username: "alice"}}
	if got := availableUsers(all, nil); len(got) != 1 {
		t.Fatalf("empty team should keep all users, got %d", len(got))
	}
}

func TestMemberModalDefaultRole(t *testing.T) {
	m := newMemberModal([]model.User{{ID: 1, Username: "alice"}})
	_, role := m.selection()
	if role != model.RoleMember {
		t.Fatalf("default role = %q, want MEMBER", role)
	}
}
