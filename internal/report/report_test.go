package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskdeck/internal/model"
)

func sampleProject() model.Project {
	return model.Project{
		ID:          42,
		Name:        "Website relaunch",
		Description: "Rebuild the marketing site.",
		Status:      model.ProjectActive,
		Priority:    model.ProjectPriorityHigh,
		StartDate:   "2026-01-15",
		Budget:      12000,
		Progress:    40,
		Owner:       &model.UserSummary{ID: 1, Username: "alice"},
	}
}

func TestProjectMarkdownSections(t *testing.T) {
	stats := model.ProjectStats{TotalTasks: 10, CompletedTasks: 4, InProgressTasks: 3, OverdueTasks: 1}
	team := []model.TeamMember{
		{User: model.UserSummary{Username: "bob", FirstName: "Bob", LastName: "B"}, Role: model.RoleLead},
	}
	tasks := []model.Task{
		{Title: "Design header", Status: model.TaskInProgress, DueDate: "2026-02-01",
			AssignedTo: &model.UserSummary{Username: "bob"}},
	}

	md := ProjectMarkdown(sampleProject(), stats, team, tasks, RenderOptions{IncludeTeam: true, IncludeTasks: true})

	for _, want := range []string{
		"# Website relaunch",
		"- ID: 42",
		"- Status: ACTIVE",
		"- Priority: HIGH",
		"- Progress: 40%",
		"- Owner: alice",
		"- Budget: 12000.00",
		"- Overdue: 1",
		"Rebuild the marketing site.",
		"- bob (Bob B): LEAD",
		"- [IN_PROGRESS] Design header (bob) due 2026-02-01",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestOptionalSectionsOmitted(t *testing.T) {
	p := sampleProject()
	p.Description = ""
	p.Budget = 0

	md := ProjectMarkdown(p, model.ProjectStats{}, nil, nil, RenderOptions{})

	for _, absent := range []string{"## Description", "## Team", "## Tasks", "- Budget:", "- Overdue:"} {
		if strings.Contains(md, absent) {
			t.Fatalf("markdown should not contain %q:\n%s", absent, md)
		}
	}
}

func TestWriteProjectRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	p := sampleProject()

	res, err := WriteProject(dir, p, model.ProjectStats{}, nil, nil, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteProject: %v", err)
	}
	want := filepath.Join(dir, "reports", "project-42.md")
	if len(res.Written) != 1 || res.Written[0] != want {
		t.Fatalf("Written = %v, want [%s]", res.Written, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("report file missing: %v", err)
	}

	if _, err := WriteProject(dir, p, model.ProjectStats{}, nil, nil, WriteOptions{}); err == nil {
		t.Fatalf("second write without --overwrite succeeded")
	}
	if _, err := WriteProject(dir, p, model.ProjectStats{}, nil, nil, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestWriteProjectRequiresDir(t *testing.T) {
	if _, err := WriteProject("  ", sampleProject(), model.ProjectStats{}, nil, nil, WriteOptions{}); err == nil {
		t.Fatalf("empty dir accepted")
	}
}
