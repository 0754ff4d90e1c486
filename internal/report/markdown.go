package report

import (
	"bytes"
	"fmt"
	"strings"

	"taskdeck/internal/model"
)

type RenderOptions struct {
	IncludeTeam  bool
	IncludeTasks bool
}

// ProjectMarkdown renders a project status report as markdown. The caller
// supplies everything already fetched; rendering never hits the network.
func ProjectMarkdown(p model.Project, stats model.ProjectStats, team []model.TeamMember, tasks []model.Task, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(p.Name))
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn(fmt.Sprintf("- ID: %d", p.ID))
	writeLn("- Status: " + string(p.Status))
	writeLn("- Priority: " + string(p.Priority))
	writeLn(fmt.Sprintf("- Progress: %d%%", p.Progress))
	if p.Owner != nil {
		writeLn("- Owner: " + p.Owner.Username)
	}
	if strings.TrimSpace(p.StartDate) != "" {
		writeLn("- Start: " + strings.TrimSpace(p.StartDate))
	}
	if strings.TrimSpace(p.EndDate) != "" {
		writeLn("- End: " + strings.TrimSpace(p.EndDate))
	}
	if p.Budget > 0 {
		writeLn(fmt.Sprintf("- Budget: %.2f", p.Budget))
	}

	writeLn("")
	writeLn("## Progress")
	writeLn("")
	writeLn(fmt.Sprintf("- Total tasks: %d", stats.TotalTasks))
	writeLn(fmt.Sprintf("- In progress: %d", stats.InProgressTasks))
	writeLn(fmt.Sprintf("- Completed: %d", stats.CompletedTasks))
	if stats.OverdueTasks > 0 {
		writeLn(fmt.Sprintf("- Overdue: %d", stats.OverdueTasks))
	}

	desc := strings.TrimSpace(p.Description)
	if desc != "" {
		writeLn("")
		writeLn("## Description")
		writeLn("")
		writeLn(desc)
	}

	if opt.IncludeTeam && len(team) > 0 {
		writeLn("")
		writeLn("## Team")
		writeLn("")
		for _, tm := range team {
			name := tm.User.DisplayName()
			if name != tm.User.Username {
				writeLn(fmt.Sprintf("- %s (%s): %s", tm.User.Username, name, tm.Role))
			} else {
				writeLn(fmt.Sprintf("- %s: %s", tm.User.Username, tm.Role))
			}
		}
	}

	if opt.IncludeTasks && len(tasks) > 0 {
		writeLn("")
		writeLn("## Tasks")
		writeLn("")
		for _, t := range tasks {
			line := fmt.Sprintf("- [%s] %s", t.Status, strings.TrimSpace(t.Title))
			if t.AssignedTo != nil {
				line += " (" + t.AssignedTo.Username + ")"
			}
			if strings.TrimSpace(t.DueDate) != "" {
				line += " due " + strings.TrimSpace(t.DueDate)
			}
			writeLn(line)
		}
	}

	return buf.String()
}
