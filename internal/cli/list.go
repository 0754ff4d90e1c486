package cli

import (
	"fmt"

	"taskdeck/internal/listflow"
	"taskdeck/internal/model"
	"taskdeck/internal/statusutil"

	"github.com/spf13/cobra"
)

// The scriptable list commands run the same filter workflow as the TUI list
// screens, so `taskdeck tasks list --status TODO --search fix` matches what
// the tasks screen would show.

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}

	var search, status, priority string
	list := &cobra.Command{
		Use:   "list",
		Short: "List my projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openCLIDeps(ctx, app)
			if err != nil {
				return err
			}
			defer d.Close()

			projects, err := d.client.MyProjects(ctx)
			if err != nil {
				return err
			}

			wf := listflow.New(listflow.Config[model.Project]{
				SearchFields: func(p model.Project) []string { return []string{p.Name, p.Description} },
				Status:       func(p model.Project) string { return string(p.Status) },
				Priority:     func(p model.Project) string { return string(p.Priority) },
			})
			c, err := criteria(search, status, priority, model.ProjectStatuses, model.ProjectPriorities)
			if err != nil {
				return err
			}
			seq := wf.BeginLoad()
			wf.FinishLoad(seq, projects, "")
			wf.SetCriteria(c)
			return writeOut(cmd, app, wf.Filtered())
		},
	}
	addFilterFlags(list, &search, &status, &priority)
	cmd.AddCommand(list)
	cmd.AddCommand(newProjectReportCmd(app))
	return cmd
}

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}

	var search, status, priority string
	var projectID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List my tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openCLIDeps(ctx, app)
			if err != nil {
				return err
			}
			defer d.Close()

			var tasks []model.Task
			var err2 error
			if projectID > 0 {
				tasks, err2 = d.client.ProjectTasks(ctx, projectID)
			} else {
				tasks, err2 = d.client.Tasks(ctx)
			}
			if err2 != nil {
				return err2
			}

			wf := listflow.New(listflow.Config[model.Task]{
				SearchFields: func(t model.Task) []string { return []string{t.Title, t.Description} },
				Status:       func(t model.Task) string { return string(t.Status) },
				Priority:     func(t model.Task) string { return string(t.Priority) },
			})
			c, err := criteria(search, status, priority, model.TaskStatuses, model.TaskPriorities)
			if err != nil {
				return err
			}
			seq := wf.BeginLoad()
			wf.FinishLoad(seq, tasks, "")
			wf.SetCriteria(c)
			return writeOut(cmd, app, wf.Filtered())
		},
	}
	addFilterFlags(list, &search, &status, &priority)
	list.Flags().Int64Var(&projectID, "project", 0, "Limit to one project id")
	cmd.AddCommand(list)
	return cmd
}

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User commands",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openCLIDeps(ctx, app)
			if err != nil {
				return err
			}
			defer d.Close()

			users, err := d.client.Users(ctx)
			if err != nil {
				return err
			}

			wf := listflow.New(listflow.Config[model.User]{
				SearchFields: func(u model.User) []string {
					return []string{u.Username, u.Email, u.FirstName, u.LastName}
				},
			})
			seq := wf.BeginLoad()
			wf.FinishLoad(seq, users, "")
			c := listflow.DefaultCriteria()
			c.SearchText = search
			wf.SetCriteria(c)
			return writeOut(cmd, app, wf.Filtered())
		},
	}
	list.Flags().StringVar(&search, "search", "", "Substring search")
	cmd.AddCommand(list)
	return cmd
}

func addFilterFlags(cmd *cobra.Command, search, status, priority *string) {
	cmd.Flags().StringVar(search, "search", "", "Substring search")
	cmd.Flags().StringVar(status, "status", listflow.FilterAll, "Status filter (or ALL)")
	cmd.Flags().StringVar(priority, "priority", listflow.FilterAll, "Priority filter (or ALL)")
}

// criteria canonicalizes the flag values against the entity's pick lists,
// so "in progress" and IN_PROGRESS are the same filter and typos fail fast.
func criteria[S, P ~string](search, status, priority string, statuses []S, priorities []P) (listflow.FilterCriteria, error) {
	c := listflow.DefaultCriteria()
	c.SearchText = search

	st, err := statusutil.Filter(status, statuses)
	if err != nil {
		return c, fmt.Errorf("--status: %w", err)
	}
	c.Status = st

	pr, err := statusutil.Filter(priority, priorities)
	if err != nil {
		return c, fmt.Errorf("--priority: %w", err)
	}
	c.Priority = pr
	return c, nil
}
