package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
	"github.com/Punitjadhav07/Hack-build/internal/ticket"
)

// NewTicketCommand creates the ticket command group.
func NewTicketCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Issue and check QR tickets",
	}

	cmd.AddCommand(newTicketIssueCommand(rootOpts))
	cmd.AddCommand(newTicketScanCommand(rootOpts))
	return cmd
}

// issuedTicket is the JSON form of an issued ticket.
type issuedTicket struct {
	Payload ticket.Payload `json:"payload"`
	Text    string         `json:"text"`
	PNG     string         `json:"png,omitempty"`
}

func newTicketIssueCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		userID   string
		userName string
		pngPath  string
		size     int
	)

	cmd := &cobra.Command{
		Use:   "issue <eventId>",
		Short: "Print the QR ticket for an event",
		Long: `Print the QR ticket of a holder for an event. The holder is the
signed-in user unless --user is given. With --png the QR code is also
written as an image.

Example:
  eventra ticket issue 3 --png ticket.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				ev, ok := a.engine.GetEventByID(ctx, model.ID(args[0]))
				if !ok {
					return errdef.NewNotFound("event %s not found", args[0])
				}

				var holder model.Session
				if userID != "" {
					holder = model.Session{ID: model.ID(userID), Name: userName}
					if holder.Name == "" {
						if u, ok := a.engine.GetUserByID(ctx, holder.ID); ok {
							holder.Name = u.Name
						}
					}
				} else {
					s, err := requireSession(ctx, a)
					if err != nil {
						return err
					}
					holder = s
				}

				payload := ticket.Issue(ev, holder, a.now())
				text, err := payload.Encode()
				if err != nil {
					return err
				}
				out := issuedTicket{Payload: payload, Text: string(text)}

				if pngPath != "" {
					png, err := payload.PNG(size)
					if err != nil {
						return err
					}
					if err := os.WriteFile(pngPath, png, 0o644); err != nil {
						return WrapExitError(ExitCommandError, "failed to write ticket image", err)
					}
					out.PNG = pngPath
					a.out.VerboseLog("wrote %s (%d bytes)", pngPath, len(png))
				}

				if a.out.Format == "json" {
					return a.out.Success(out)
				}
				art, err := payload.ASCII()
				if err != nil {
					return err
				}
				w := a.out.Writer
				fmt.Fprint(w, art)
				fmt.Fprintf(w, "%s for %s (%s)\n", ev.Title, holder.Name, payload.UserID)
				fmt.Fprintln(w, out.Text)
				if out.PNG != "" {
					fmt.Fprintf(w, "Saved %s\n", out.PNG)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "holder user id (default: signed-in user)")
	cmd.Flags().StringVar(&userName, "name", "", "holder name")
	cmd.Flags().StringVar(&pngPath, "png", "", "also write the QR code to this PNG file")
	cmd.Flags().IntVar(&size, "size", ticket.DefaultSize, "PNG size in pixels")
	return cmd
}

func newTicketScanCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <text | ->",
		Short: "Check decoded QR text at the door",
		Long: `Check the text decoded from a ticket QR code. Use - to read it from
stdin. The exit code is 1 when the ticket is not valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			if text == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to read stdin", err)
				}
				text = strings.TrimSpace(string(data))
			}
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				res := ticket.Scan(a.engine.Read(ctx), text)
				if err := a.out.Render(res, func(w io.Writer) {
					mark := "✓"
					if !res.Valid {
						mark = "✗"
					}
					fmt.Fprintf(w, "%s %s\n", mark, res.Message)
					fmt.Fprintf(w, "  Event: %s\n", res.EventTitle)
				}); err != nil {
					return err
				}
				if !res.Valid {
					return &ExitError{Code: ExitFailure, Message: res.Message, Reported: true}
				}
				return nil
			})
		},
	}
}
