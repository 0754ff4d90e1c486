package cli

import (
	"context"
	"os"

	"taskdeck/internal/api"
	"taskdeck/internal/format"
	"taskdeck/internal/logging"
	"taskdeck/internal/session"
	"taskdeck/internal/store"
	"taskdeck/internal/theme"
	"taskdeck/internal/tui"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type App struct {
	Server     string
	ConfigDir  string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Terminal client for the task manager",
		SilenceUsage: true,
		Example: `
  # Start the interactive TUI
  taskdeck

  # Scriptable commands
  taskdeck login --user alice
  taskdeck projects list
  taskdeck tasks list --status TODO`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("TASKDECK_SERVER", "http://localhost:8080/api"), "Backend API base URL")
	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("TASKDECK_CONFIG_DIR", ""), "Config directory (default: ~/.taskdeck)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKDECK_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// deps are the process-lifetime state objects. They are constructed here
// once and handed to whichever component needs them.
type deps struct {
	store   *store.Store
	client  *api.Client
	session *session.Manager
	themes  *theme.Manager
	log     zerolog.Logger
	closeFn func()
}

func (d *deps) Close() {
	if d.closeFn != nil {
		d.closeFn()
	}
	_ = d.store.Close()
}

func openDeps(ctx context.Context, app *App, logger zerolog.Logger, logClose func()) (*deps, error) {
	st, err := store.Open(ctx, app.ConfigDir)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(app.Server, api.WithLogger(logger))
	sess, err := session.NewManager(ctx, st, client)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	// Authenticated calls read the live session token.
	client = api.NewClient(app.Server, api.WithLogger(logger), api.WithTokenSource(sess))

	themes, err := theme.NewManager(ctx, st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &deps{store: st, client: client, session: sess, themes: themes, log: logger, closeFn: logClose}, nil
}

// openCLIDeps wires dependencies for scriptable commands (console logging).
func openCLIDeps(ctx context.Context, app *App) (*deps, error) {
	logger := logging.NewConsole(os.Stderr)
	return openDeps(ctx, app, logger, nil)
}

func runTUI(app *App) error {
	ctx := context.Background()

	st, err := store.Open(ctx, app.ConfigDir)
	if err != nil {
		return err
	}
	logger, logClose := logging.New(st.Dir())
	_ = st.Close()

	d, err := openDeps(ctx, app, logger, logClose)
	if err != nil {
		return err
	}
	defer d.Close()

	return tui.Run(tui.Deps{
		Client:  d.client,
		Session: d.session,
		Themes:  d.themes,
		Store:   d.store,
		Log:     d.log,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}
