package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Punitjadhav07/Hack-build/internal/engine"
	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/fixture"
	"github.com/Punitjadhav07/Hack-build/internal/model"
	"github.com/Punitjadhav07/Hack-build/internal/views"
)

// eventFields are the event flags shared by add and update.
type eventFields struct {
	title       string
	description string
	department  string
	date        string
	time        string
	location    string
	kind        string
	status      string
	capacity    int
}

func (f *eventFields) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "event title")
	fl.StringVar(&f.description, "description", "", "event description")
	fl.StringVar(&f.department, "department", "", "organizing department")
	fl.StringVar(&f.date, "date", "", "event date, e.g. 2025-03-15")
	fl.StringVar(&f.time, "time", "", "event time, e.g. 09:00 AM")
	fl.StringVar(&f.location, "location", "", "event location")
	fl.StringVar(&f.kind, "type", "", "event type, e.g. Workshop")
	fl.StringVar(&f.status, "status", "", "draft|published|attended")
	fl.IntVar(&f.capacity, "capacity", 0, "number of seats")
}

// NewEventCommand creates the event command group.
func NewEventCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Create and edit events",
	}

	cmd.AddCommand(newEventAddCommand(rootOpts))
	cmd.AddCommand(newEventUpdateCommand(rootOpts))
	cmd.AddCommand(newEventDeleteCommand(rootOpts))
	cmd.AddCommand(newEventStatusCommand(rootOpts))
	cmd.AddCommand(newEventListCommand(rootOpts))
	cmd.AddCommand(newEventImportCommand(rootOpts))
	return cmd
}

func newEventAddCommand(rootOpts *RootOptions) *cobra.Command {
	var f eventFields
	var id string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		Long: `Add an event. A missing id is generated and a missing status is draft.

Example:
  eventra event add --title "Go Workshop" --date 2025-03-15 --time "09:00 AM" --capacity 40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(f.title) == "" {
				return errdef.NewBadRequest("event add: --title is required")
			}
			ev := model.Event{
				ID:          model.ID(id),
				Title:       f.title,
				Description: f.description,
				Department:  f.department,
				Date:        f.date,
				Time:        f.time,
				Location:    f.location,
				Type:        f.kind,
				Status:      model.EventStatus(f.status),
				Capacity:    f.capacity,
			}
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				added, err := a.engine.AddEvent(ctx, ev)
				if err != nil {
					return err
				}
				return a.out.Render(added, func(w io.Writer) {
					fmt.Fprintf(w, "Added event %s: %s (%s)\n", added.ID, added.Title, added.Status)
				})
			})
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "event id (generated when empty)")
	return cmd
}

func newEventUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var f eventFields

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an event",
		Long: `Change the fields given as flags. Other fields are kept.

Example:
  eventra event update 3 --location "Hall B" --capacity 60`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := eventPatch(cmd, &f)
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				rec, err := a.engine.UpdateEvent(ctx, model.ID(args[0]), patch)
				if err != nil {
					return err
				}
				i := rec.FindEvent(model.ID(args[0]))
				if i < 0 {
					return errdef.NewNotFound("event %s not found", args[0])
				}
				ev := rec.Events[i]
				return a.out.Render(ev, func(w io.Writer) {
					fmt.Fprintf(w, "Updated event %s: %s (%s)\n", ev.ID, ev.Title, ev.Status)
				})
			})
		},
	}

	f.register(cmd)
	return cmd
}

// eventPatch builds a patch from the flags set on the command line.
func eventPatch(cmd *cobra.Command, f *eventFields) engine.EventPatch {
	var p engine.EventPatch
	changed := cmd.Flags().Changed
	if changed("title") {
		p.Title = &f.title
	}
	if changed("description") {
		p.Description = &f.description
	}
	if changed("department") {
		p.Department = &f.department
	}
	if changed("date") {
		p.Date = &f.date
	}
	if changed("time") {
		p.Time = &f.time
	}
	if changed("location") {
		p.Location = &f.location
	}
	if changed("type") {
		p.Type = &f.kind
	}
	if changed("status") {
		s := model.EventStatus(f.status)
		p.Status = &s
	}
	if changed("capacity") {
		p.Capacity = &f.capacity
	}
	return p
}

func newEventDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				rec, err := a.engine.DeleteEvent(ctx, model.ID(args[0]))
				if err != nil {
					return err
				}
				result := map[string]any{"deleted": args[0], "totalEvents": rec.Stats.TotalEvents}
				return a.out.Render(result, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted event %s (%d events left)\n", args[0], rec.Stats.TotalEvents)
				})
			})
		},
	}
}

func newEventStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <draft|published|attended>",
		Short: "Move an event to another status",
		Long: `Move an event to another status. Allowed moves are draft to published,
published to attended, and attended back to published.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := model.ParseEventStatus(args[1])
			if err != nil {
				return errdef.NewBadRequest("event status: %v", err)
			}
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				if _, err := a.engine.SetEventStatus(ctx, model.ID(args[0]), status); err != nil {
					return err
				}
				result := map[string]string{"id": args[0], "status": string(status)}
				return a.out.Render(result, func(w io.Writer) {
					fmt.Fprintf(w, "Event %s is now %s\n", args[0], status)
				})
			})
		},
	}
}

func newEventListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		status string
		from   string
		to     string
		user   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Long: `List events in record order.

Filters combine: --status keeps one status, --from/--to keep events dated
within the range (inclusive, YYYY-MM-DD), and --user keeps the events a user
registered for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				rec := a.engine.Read(ctx)
				events := rec.Events
				display := ""

				if user != "" {
					events = a.engine.GetUserEvents(ctx, model.ID(user))
					display = string(model.StatusRegistered)
				}
				if status != "" {
					s, err := model.ParseEventStatus(status)
					if err != nil {
						return errdef.NewBadRequest("event list: %v", err)
					}
					events = views.ByStatus(events, s)
				}
				if from != "" || to != "" {
					loc := a.now().Location()
					start, end, err := dateRange(from, to, loc)
					if err != nil {
						return err
					}
					events = views.ByDateRange(events, start, end)
				}

				cards := views.Cards(events, display)
				for i := range cards {
					if cards[i].Status == "" {
						cards[i].Status = string(events[i].Status)
					}
				}
				return a.out.Render(cards, func(w io.Writer) {
					writeCards(w, cards)
				})
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only events with this status")
	cmd.Flags().StringVar(&from, "from", "", "only events on or after this date")
	cmd.Flags().StringVar(&to, "to", "", "only events on or before this date")
	cmd.Flags().StringVar(&user, "user", "", "only events this user registered for")
	return cmd
}

// dateRange reads the --from/--to bounds. An open end is far in the past or
// future; the upper bound covers the whole day.
func dateRange(from, to string, loc *time.Location) (time.Time, time.Time, error) {
	start := time.Date(1, 1, 1, 0, 0, 0, 0, loc)
	end := time.Date(9999, 12, 31, 23, 59, 59, 0, loc)
	if from != "" {
		t, ok := views.ParseDate(from, loc)
		if !ok {
			return start, end, errdef.NewBadRequest("invalid --from date %q", from)
		}
		start = t
	}
	if to != "" {
		t, ok := views.ParseDate(to, loc)
		if !ok {
			return start, end, errdef.NewBadRequest("invalid --to date %q", to)
		}
		end = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return start, end, nil
}

func writeCards(w io.Writer, cards []views.Card) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "No events.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTATUS\tDATE\tTIME\tTITLE\tLOCATION\tSPOTS")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			c.ID, c.Status, orDash(c.Date), orDash(c.Time), c.Title, orDash(c.Location), c.AvailableSpots)
	}
	tw.Flush()
}

func newEventImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add events from a CUE or JSON file",
		Long: `Add every event listed in a CUE or JSON file of the form
{events: [{title: "...", date: "...", ...}]}. Each event is added as with
"event add"; the import stops at the first rejected event.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			src, err := os.ReadFile(path)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read events file", err)
			}
			events, err := fixture.ImportEvents(src, filepath.Base(path))
			if err != nil {
				return errdef.NewBadRequest("%v", err)
			}
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				added := make([]model.Event, 0, len(events))
				for _, ev := range events {
					got, err := a.engine.AddEvent(ctx, ev)
					if err != nil {
						return fmt.Errorf("import %q: %w", ev.Title, err)
					}
					a.out.VerboseLog("added event %s: %s", got.ID, got.Title)
					added = append(added, got)
				}
				return a.out.Render(added, func(w io.Writer) {
					fmt.Fprintf(w, "Imported %d events from %s\n", len(added), path)
				})
			})
		},
	}
}

// NewCalendarCommand creates the calendar command.
func NewCalendarCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		month int
		year  int
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month of events",
		Long: `Show a month view: whole weeks from Sunday to Saturday with the number
of events on each day, followed by the events of the month.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				now := a.now()
				y, m := now.Year(), now.Month()
				if cmd.Flags().Changed("year") {
					y = year
				}
				if cmd.Flags().Changed("month") {
					if month < 1 || month > 12 {
						return errdef.NewBadRequest("calendar: month %d out of range 1-12", month)
					}
					m = time.Month(month)
				}
				events := a.engine.Read(ctx).Events
				view := monthView(events, y, m, now.Location())
				return a.out.Render(view, func(w io.Writer) {
					writeMonth(w, view)
				})
			})
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (default current)")
	cmd.Flags().IntVar(&year, "year", 0, "year (default current)")
	return cmd
}

// calendarDay is one cell of the month grid.
type calendarDay struct {
	Date    string     `json:"date"`
	InMonth bool       `json:"inMonth"`
	Events  []model.ID `json:"events"`
}

type calendarView struct {
	Year   int           `json:"year"`
	Month  int           `json:"month"`
	Days   []calendarDay `json:"days"`
	Events []model.Event `json:"events"`
}

func monthView(events []model.Event, year int, month time.Month, loc *time.Location) calendarView {
	view := calendarView{
		Year:   year,
		Month:  int(month),
		Events: views.MonthEvents(events, year, month, loc),
	}
	for _, day := range views.MonthGrid(year, month, loc) {
		cell := calendarDay{
			Date:    day.Format("2006-01-02"),
			InMonth: day.Month() == month,
			Events:  []model.ID{},
		}
		for _, ev := range views.EventsOn(events, day) {
			cell.Events = append(cell.Events, ev.ID)
		}
		view.Days = append(view.Days, cell)
	}
	return view
}

func writeMonth(w io.Writer, view calendarView) {
	fmt.Fprintf(w, "%s %d\n", time.Month(view.Month), view.Year)
	fmt.Fprintln(w, " Sun  Mon  Tue  Wed  Thu  Fri  Sat")
	for i, d := range view.Days {
		cell := "    "
		if d.InMonth {
			mark := " "
			if len(d.Events) > 0 {
				mark = "*"
			}
			cell = fmt.Sprintf(" %2s%s", d.Date[8:], mark)
		}
		fmt.Fprint(w, cell)
		if i%7 == 6 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, " ")
		}
	}
	if len(view.Events) == 0 {
		fmt.Fprintln(w, "\nNo events this month.")
		return
	}
	fmt.Fprintln(w)
	for _, ev := range view.Events {
		fmt.Fprintf(w, "  %s %s  %s\n", ev.Date, orDash(ev.Time), ev.Title)
	}
}

// NewUpcomingCommand creates the upcoming command.
func NewUpcomingCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		limit int
		days  int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List the next events",
		Long: `List events dated today or later, soonest first. Only published events
are listed unless --all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				events := a.engine.Read(ctx).Events
				if !all {
					events = views.Published(events)
				}
				items := views.Upcoming(events, a.now(), views.UpcomingOptions{Limit: limit, WithinDays: days})
				return a.out.Render(items, func(w io.Writer) {
					if len(items) == 0 {
						fmt.Fprintln(w, "No upcoming events.")
						return
					}
					tw := newTable(w)
					for _, it := range items {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Date, it.Title, orDash(it.Location))
					}
					tw.Flush()
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "maximum number of events (0 for all)")
	cmd.Flags().IntVar(&days, "days", 0, "only events within this many days (0 for no bound)")
	cmd.Flags().BoolVar(&all, "all", false, "include draft and attended events")
	return cmd
}
