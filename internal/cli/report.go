package cli

import (
	"fmt"
	"strconv"

	"taskdeck/internal/model"
	"taskdeck/internal/report"

	"github.com/spf13/cobra"
)

func newProjectReportCmd(app *App) *cobra.Command {
	var (
		toDir        string
		raw          bool
		overwrite    bool
		includeTeam  bool
		includeTasks bool
	)

	cmd := &cobra.Command{
		Use:   "report <project-id>",
		Short: "Render a markdown status report for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid project id: %q", args[0])
			}

			ctx := cmd.Context()
			d, err := openCLIDeps(ctx, app)
			if err != nil {
				return err
			}
			defer d.Close()

			p, err := d.client.Project(ctx, id)
			if err != nil {
				return err
			}
			stats, err := d.client.ProjectStats(ctx, id)
			if err != nil {
				return err
			}
			var team []model.TeamMember
			if includeTeam {
				if team, err = d.client.ProjectTeam(ctx, id); err != nil {
					return err
				}
			}
			var tasks []model.Task
			if includeTasks {
				if tasks, err = d.client.ProjectTasks(ctx, id); err != nil {
					return err
				}
			}

			opt := report.RenderOptions{IncludeTeam: includeTeam, IncludeTasks: includeTasks}
			if toDir != "" {
				res, err := report.WriteProject(toDir, p, stats, team, tasks, report.WriteOptions{
					RenderOptions: opt,
					Overwrite:     overwrite,
				})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, res)
			}

			md := report.ProjectMarkdown(p, stats, team, tasks, opt)
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			return writeOut(cmd, app, map[string]any{"projectId": id, "markdown": md})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Write the report under this directory instead of printing")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing report file")
	cmd.Flags().BoolVar(&includeTeam, "team", false, "Include the team section")
	cmd.Flags().BoolVar(&includeTasks, "tasks", false, "Include the task list")
	return cmd
}
