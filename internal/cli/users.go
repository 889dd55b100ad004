package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// NewUserCommand creates the user command group.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(newUserAddCommand(rootOpts))
	cmd.AddCommand(newUserStatusCommand(rootOpts, "ban", model.UserBanned))
	cmd.AddCommand(newUserStatusCommand(rootOpts, "unban", model.UserActive))
	cmd.AddCommand(newUserReportCommand(rootOpts))
	cmd.AddCommand(newUserImportCommand(rootOpts))
	cmd.AddCommand(newUserListCommand(rootOpts))
	return cmd
}

func newUserAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		id    string
		name  string
		email string
		role  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return errdef.NewBadRequest("user add: --name is required")
			}
			u := model.User{ID: model.ID(id), Name: name, Email: email, Role: model.Role(role)}
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				added, err := a.engine.AddUser(ctx, u)
				if err != nil {
					return err
				}
				return a.out.Render(added, func(w io.Writer) {
					fmt.Fprintf(w, "Added user %s: %s (%s)\n", added.ID, added.Name, added.Role)
				})
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "user id (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&role, "role", "", "user|admin (default user)")
	return cmd
}

func newUserStatusCommand(rootOpts *RootOptions, verb string, status model.UserStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: fmt.Sprintf("Set a user's status to %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.ID(args[0])
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				var err error
				if status == model.UserBanned {
					_, err = a.engine.BanUser(ctx, id)
				} else {
					_, err = a.engine.UnbanUser(ctx, id)
				}
				if err != nil {
					return err
				}
				result := map[string]string{"id": args[0], "status": string(status)}
				return a.out.Render(result, func(w io.Writer) {
					fmt.Fprintf(w, "User %s is now %s\n", id, status)
				})
			})
		},
	}
}

func newUserReportCommand(rootOpts *RootOptions) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "report <id>",
		Short: "Report a user to the admins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				report, err := a.engine.ReportUser(ctx, model.ID(args[0]), reason)
				if err != nil {
					return err
				}
				return a.out.Render(report, func(w io.Writer) {
					fmt.Fprintf(w, "Reported user %s: %s\n", report.UserID, report.Reason)
				})
			})
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "why the user is reported")
	return cmd
}

func newUserImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Add users for signed-up accounts",
		Long: `Add a user for every signed-up account whose email is not already
used by a user.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				n, err := a.engine.ImportUsersFromAuth(ctx)
				if err != nil {
					return err
				}
				return a.out.Render(map[string]int{"imported": n}, func(w io.Writer) {
					fmt.Fprintf(w, "Imported %d users\n", n)
				})
			})
		},
	}
}

// userRow is a user with the reports filed against them.
type userRow struct {
	model.User
	Reports int `json:"reports"`
}

func newUserListCommand(rootOpts *RootOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				rec := a.engine.Read(ctx)
				reports := make(map[model.ID]int)
				for _, r := range rec.Reports {
					reports[r.UserID]++
				}
				rows := []userRow{}
				for _, u := range rec.Users {
					if status != "" && string(u.Status) != status {
						continue
					}
					rows = append(rows, userRow{User: u, Reports: reports[u.ID]})
				}
				return a.out.Render(rows, func(w io.Writer) {
					if len(rows) == 0 {
						fmt.Fprintln(w, "No users.")
						return
					}
					tw := newTable(w)
					fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tREPORTS")
					for _, r := range rows {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", r.ID, r.Name, orDash(r.Email), r.Role, r.Status, r.Reports)
					}
					tw.Flush()
				})
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only users with this status (active|banned)")
	return cmd
}
