package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Punitjadhav07/Hack-build/internal/auth"
	"github.com/Punitjadhav07/Hack-build/internal/model"
	"github.com/Punitjadhav07/Hack-build/internal/views"
)

// NewSignupCommand creates the signup command.
func NewSignupCommand(rootOpts *RootOptions) *cobra.Command {
	var form auth.SignupForm

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("confirm") {
				form.ConfirmPassword = form.Password
			}
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				acc, err := a.auth.Signup(ctx, form)
				if err != nil {
					return err
				}
				acc.Password = ""
				return a.out.Render(acc, func(w io.Writer) {
					fmt.Fprintf(w, "Account %s created for %s\n", acc.ID, acc.Email)
				})
			})
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "display name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Password, "password", "", "password, at least 6 characters")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm", "", "password again (default: same as --password)")
	return cmd
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		form  auth.LoginForm
		admin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Long: `Sign in as a user, or with --admin as the administrator configured by
EVENTRA_ADMIN_EMAIL and EVENTRA_ADMIN_PASSWORD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Role = model.RoleUser
			if admin {
				form.Role = model.RoleAdmin
			}
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				s, err := a.auth.Login(ctx, form)
				if err != nil {
					return err
				}
				return a.out.Render(s, func(w io.Writer) {
					fmt.Fprintf(w, "Signed in as %s (%s)\n", s.Name, s.Role)
				})
			})
		},
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Password, "password", "", "password")
	cmd.Flags().BoolVar(&admin, "admin", false, "sign in as administrator")
	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				if err := a.auth.Logout(ctx); err != nil {
					return err
				}
				return a.out.Render(map[string]bool{"signedIn": false}, func(w io.Writer) {
					fmt.Fprintln(w, "Signed out.")
				})
			})
		},
	}
}

// whoami is the signed-in session with the user's dashboard.
type whoami struct {
	Session  model.Session       `json:"session"`
	Overview *views.UserOverview `json:"overview,omitempty"`
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				s, err := requireSession(ctx, a)
				if err != nil {
					return err
				}
				out := whoami{Session: s}
				if !s.IsAdmin() {
					ov := views.ForUser(a.engine.Read(ctx), s.ID, a.now())
					out.Overview = &ov
				}
				return a.out.Render(out, func(w io.Writer) {
					fmt.Fprintf(w, "%s <%s> (%s, id %s)\n", s.Name, s.Email, s.Role, s.ID)
					if ov := out.Overview; ov != nil {
						fmt.Fprintf(w, "Registered events:    %d\n", ov.RegisteredEvents)
						fmt.Fprintf(w, "Unread notifications: %d\n", ov.Unread)
						for _, it := range ov.Upcoming {
							fmt.Fprintf(w, "  %s  %s\n", it.Date, it.Title)
						}
					}
				})
			})
		},
	}
}
