package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
	"github.com/Punitjadhav07/Hack-build/internal/views"
)

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register <userId> <eventId>",
		Short: "Register a user for an event",
		Long: `Register a user for an event. Registering the same pair again changes
nothing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, eventID := model.ID(args[0]), model.ID(args[1])
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				created, err := a.engine.RegisterForEvent(ctx, userID, eventID)
				if err != nil {
					return err
				}
				result := map[string]any{"userId": userID, "eventId": eventID, "created": created}
				return a.out.Render(result, func(w io.Writer) {
					if created {
						fmt.Fprintf(w, "Registered %s for %s\n", userID, eventID)
					} else {
						fmt.Fprintf(w, "%s is already registered for %s\n", userID, eventID)
					}
				})
			})
		},
	}
}

// NewFeedbackCommand creates the feedback command group.
func NewFeedbackCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Collect event ratings",
	}

	cmd.AddCommand(newFeedbackAddCommand(rootOpts))
	cmd.AddCommand(newFeedbackListCommand(rootOpts))
	return cmd
}

func newFeedbackAddCommand(rootOpts *RootOptions) *cobra.Command {
	var fb model.Feedback
	var userID string

	cmd := &cobra.Command{
		Use:   "add <eventId>",
		Short: "Rate an event",
		Long: `Rate an event from 1 to 5. Feedback is never replaced: a second rating
for the same event adds a second entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fb.EventID = model.ID(args[0])
			fb.UserID = model.ID(userID)
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				if fb.UserID == "" {
					if s, ok := a.auth.Whoami(ctx); ok {
						fb.UserID = s.ID
						if fb.UserName == "" {
							fb.UserName = s.Name
						}
					}
				}
				if fb.UserName == "" && fb.UserID != "" {
					if u, ok := a.engine.GetUserByID(ctx, fb.UserID); ok {
						fb.UserName = u.Name
					}
				}
				added, err := a.engine.AddFeedback(ctx, fb)
				if err != nil {
					return err
				}
				return a.out.Render(added, func(w io.Writer) {
					fmt.Fprintf(w, "Recorded %d/5 for event %s\n", added.Rating, added.EventID)
				})
			})
		},
	}

	cmd.Flags().IntVar(&fb.Rating, "rating", 0, "rating 1-5")
	cmd.Flags().StringVar(&fb.Comment, "comment", "", "free-text comment")
	cmd.Flags().StringVar(&userID, "user", "", "rating user id (default: signed-in user)")
	cmd.Flags().StringVar(&fb.UserName, "name", "", "rating user name")
	return cmd
}

func newFeedbackListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		eventID string
		userID  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Summarize feedback per event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				var entries []model.Feedback
				switch {
				case eventID != "":
					entries = a.engine.GetFeedbackForEvent(ctx, model.ID(eventID))
				case userID != "":
					entries = a.engine.GetUserFeedback(ctx, model.ID(userID))
				default:
					entries = a.engine.Read(ctx).Feedback
				}
				summaries := views.SummarizeFeedback(entries)
				return a.out.Render(summaries, func(w io.Writer) {
					if len(summaries) == 0 {
						fmt.Fprintln(w, "No feedback.")
						return
					}
					for _, s := range summaries {
						fmt.Fprintf(w, "Event %s: %.1f average from %d ratings\n", s.EventID, s.Average, s.Count)
						for _, f := range s.Entries {
							fmt.Fprintf(w, "  %d/5 %s: %s\n", f.Rating, orDash(f.UserName), f.Comment)
						}
					}
				})
			})
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "only feedback for this event")
	cmd.Flags().StringVar(&userID, "user", "", "only feedback from this user")
	return cmd
}

// NewNotifyCommand creates the notify command group.
func NewNotifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send and read notifications",
	}

	cmd.AddCommand(newNotifySendCommand(rootOpts))
	cmd.AddCommand(newNotifyIDCommand(rootOpts, "read", "Mark a notification read"))
	cmd.AddCommand(newNotifyReadAllCommand(rootOpts))
	cmd.AddCommand(newNotifyIDCommand(rootOpts, "delete", "Delete a notification"))
	cmd.AddCommand(newNotifyListCommand(rootOpts))
	return cmd
}

func newNotifySendCommand(rootOpts *RootOptions) *cobra.Command {
	var n model.Notification

	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n.Message = args[0]
			n.Unread = true
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				sent, err := a.engine.AddNotification(ctx, n)
				if err != nil {
					return err
				}
				return a.out.Render(sent, func(w io.Writer) {
					fmt.Fprintf(w, "Sent notification %s\n", sent.ID)
				})
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&n.Title, "title", "", "notification title")
	fl.StringVar(&n.Type, "type", "Announcement", "notification type")
	fl.StringVar(&n.Category, "category", "", "notification category")
	fl.StringVar(&n.Recipients, "recipients", "all", "who receives it")
	return cmd
}

func newNotifyIDCommand(rootOpts *RootOptions, verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.ID(args[0])
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				var (
					rec model.Record
					err error
				)
				if verb == "delete" {
					rec, err = a.engine.DeleteNotification(ctx, id)
				} else {
					rec, err = a.engine.MarkNotificationRead(ctx, id)
				}
				if err != nil {
					return err
				}
				unread := views.UnreadCount(rec.Notifications)
				result := map[string]any{"id": id, "unread": unread}
				return a.out.Render(result, func(w io.Writer) {
					fmt.Fprintf(w, "Notification %s: %s done (%d unread)\n", id, verb, unread)
				})
			})
		},
	}
}

func newNotifyReadAllCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				rec, err := a.engine.MarkAllNotificationsRead(ctx)
				if err != nil {
					return err
				}
				result := map[string]int{"notifications": len(rec.Notifications), "unread": 0}
				return a.out.Render(result, func(w io.Writer) {
					fmt.Fprintf(w, "Marked %d notifications read\n", len(rec.Notifications))
				})
			})
		},
	}
}

func newNotifyListCommand(rootOpts *RootOptions) *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				notes := []model.Notification{}
				for _, n := range a.engine.Read(ctx).Notifications {
					if unreadOnly && !n.Unread {
						continue
					}
					notes = append(notes, n)
				}
				now := a.now()
				return a.out.Render(notes, func(w io.Writer) {
					if len(notes) == 0 {
						fmt.Fprintln(w, "No notifications.")
						return
					}
					for _, n := range notes {
						fmt.Fprintf(w, "%s (%s)\n", notificationLine(n), views.NotificationAge(n, now))
					}
					fmt.Fprintf(w, "%d unread\n", views.UnreadCount(notes))
				})
			})
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only unread notifications")
	return cmd
}

// NewFilesCommand creates the files command group.
func NewFilesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Record badge and document placeholders",
		Long: `Record badge and document entries by name and URL. Nothing is uploaded;
the store only keeps the entries.`,
	}

	cmd.AddCommand(newFileAddCommand(rootOpts, "add-badge", "badge"))
	cmd.AddCommand(newFileAddCommand(rootOpts, "add-document", "document"))
	cmd.AddCommand(newFilesListCommand(rootOpts))
	return cmd
}

func newFileAddCommand(rootOpts *RootOptions, use, kind string) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   use + " <name>",
		Short: "Record a " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := model.FileEntry{Name: args[0], URL: url}
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				var err error
				if kind == "badge" {
					_, err = a.engine.AddBadge(ctx, entry)
				} else {
					_, err = a.engine.AddDocument(ctx, entry)
				}
				if err != nil {
					return err
				}
				return a.out.Render(entry, func(w io.Writer) {
					fmt.Fprintf(w, "Recorded %s %s\n", kind, entry.Name)
				})
			})
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "where the file lives")
	return cmd
}

func newFilesListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded badges and documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				files := a.engine.Read(ctx).Files
				return a.out.Render(files, func(w io.Writer) {
					writeFiles(w, "Badges", files.Badges)
					writeFiles(w, "Documents", files.Documents)
				})
			})
		},
	}
}

func writeFiles(w io.Writer, title string, entries []model.FileEntry) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(entries))
	for _, f := range entries {
		fmt.Fprintf(w, "  %s  %s\n", f.Name, orDash(f.URL))
	}
}

// requireSession returns the signed-in session or an unauthorized error.
func requireSession(ctx context.Context, a *app) (model.Session, error) {
	s, ok := a.auth.Whoami(ctx)
	if !ok {
		return model.Session{}, errdef.NewUnauthorized("not signed in; run eventra login first")
	}
	return s, nil
}
