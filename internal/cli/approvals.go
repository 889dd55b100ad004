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

// NewApprovalCommand creates the approval command group.
func NewApprovalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approval",
		Short: "Review event submissions",
	}

	cmd.AddCommand(newApprovalQueueCommand(rootOpts))
	cmd.AddCommand(newApprovalResolveCommand(rootOpts))
	cmd.AddCommand(newApprovalListCommand(rootOpts))
	return cmd
}

func newApprovalQueueCommand(rootOpts *RootOptions) *cobra.Command {
	var ap model.Approval
	var id string

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Submit an event for approval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(ap.Title) == "" {
				return errdef.NewBadRequest("approval queue: --title is required")
			}
			ap.ID = model.ID(id)
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				queued, err := a.engine.QueueApproval(ctx, ap)
				if err != nil {
					return err
				}
				return a.out.Render(queued, func(w io.Writer) {
					fmt.Fprintf(w, "Queued %s: %s by %s\n", queued.ID, queued.Title, orDash(queued.Organizer))
				})
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&id, "id", "", "submission id (generated when empty)")
	fl.StringVar(&ap.Title, "title", "", "event title")
	fl.StringVar(&ap.Organizer, "organizer", "", "submitting department or club")
	fl.StringVar(&ap.Description, "description", "", "event description")
	fl.StringVar(&ap.Date, "date", "", "event date")
	fl.StringVar(&ap.Time, "time", "", "event time")
	fl.StringVar(&ap.Location, "location", "", "event location")
	fl.StringVar(&ap.Type, "type", "", "event type")
	fl.IntVar(&ap.Capacity, "capacity", 0, "number of seats")
	return cmd
}

func newApprovalResolveCommand(rootOpts *RootOptions) *cobra.Command {
	var approve, reject bool

	cmd := &cobra.Command{
		Use:   "resolve <id> (--approve | --reject)",
		Short: "Approve or reject a submission",
		Long: `Remove a submission from the queue. An approved submission becomes a
published event with the same id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if approve == reject {
				return NewExitError(ExitCommandError, "exactly one of --approve or --reject is required")
			}
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				rec, err := a.engine.ResolveApproval(ctx, model.ID(args[0]), approve)
				if err != nil {
					return err
				}
				decision := "rejected"
				if approve {
					decision = "approved"
				}
				result := map[string]any{
					"id":               args[0],
					"decision":         decision,
					"pendingApprovals": rec.Stats.PendingApprovals,
				}
				return a.out.Render(result, func(w io.Writer) {
					fmt.Fprintf(w, "Submission %s %s (%d pending)\n", args[0], decision, rec.Stats.PendingApprovals)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&approve, "approve", false, "publish the submission as an event")
	cmd.Flags().BoolVar(&reject, "reject", false, "drop the submission")
	return cmd
}

func newApprovalListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				approvals := a.engine.Read(ctx).Approvals
				return a.out.Render(approvals, func(w io.Writer) {
					if len(approvals) == 0 {
						fmt.Fprintln(w, "No pending submissions.")
						return
					}
					tw := newTable(w)
					fmt.Fprintln(tw, "ID\tTITLE\tORGANIZER\tDATE\tCAPACITY")
					for _, ap := range approvals {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", ap.ID, ap.Title, orDash(ap.Organizer), orDash(ap.Date), ap.Capacity)
					}
					tw.Flush()
				})
			})
		},
	}
}
