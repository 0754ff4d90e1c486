package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"taskdeck/internal/model"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(app *App) *cobra.Command {
	var user string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openCLIDeps(ctx, app)
			if err != nil {
				return err
			}
			defer d.Close()

			if strings.TrimSpace(user) == "" {
				u, err := promptLine(cmd, "Username or email: ")
				if err != nil {
					return err
				}
				user = u
			}
			if password == "" {
				p, err := promptPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				password = p
			}

			resp, err := d.session.Login(ctx, model.Credentials{UsernameOrEmail: user, Password: password})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			return writeOut(cmd, app, map[string]any{
				"username": resp.User.Username,
				"message":  "signed in",
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username or email")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openCLIDeps(ctx, app)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.session.Logout(ctx); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"message": "signed out"})
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	req := model.RegisterRequest{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openCLIDeps(ctx, app)
			if err != nil {
				return err
			}
			defer d.Close()

			if req.Username == "" || req.Email == "" {
				return errors.New("--username and --email are required")
			}
			if req.Password == "" {
				p, err := promptPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				req.Password = p
			}

			u, err := d.session.Register(ctx, req)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			return writeOut(cmd, app, u)
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "Username")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number")
	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := openCLIDeps(ctx, app)
			if err != nil {
				return err
			}
			defer d.Close()

			return writeOut(cmd, app, map[string]any{
				"authenticated": d.session.IsAuthenticated(),
				"username":      d.session.Username(),
			})
		},
	}
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	r := bufio.NewReader(cmd.InOrStdin())
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	// No-echo read when stdin is a terminal; fall back to a plain line read
	// for pipes/tests.
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return promptLine(cmd, "")
}
