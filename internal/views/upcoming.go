package views

import (
	"sort"
	"time"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// UpcomingItem is one row of an upcoming-events list.
type UpcomingItem struct {
	ID       model.ID  `json:"id"`
	Title    string    `json:"title"`
	Date     string    `json:"date"`
	Location string    `json:"location,omitempty"`
	At       time.Time `json:"-"`
}

// UpcomingOptions bounds an upcoming list. Zero values mean no bound.
type UpcomingOptions struct {
	Limit      int
	WithinDays int
}

// Upcoming returns events starting today or later, soonest first. now's
// location is used to read event dates. With WithinDays set, events after
// now plus that many days are dropped.
func Upcoming(events []model.Event, now time.Time, opts UpcomingOptions) []UpcomingItem {
	from := StartOfDay(now)
	var until time.Time
	if opts.WithinDays > 0 {
		until = now.AddDate(0, 0, opts.WithinDays)
	}

	dated := datedEvents(events, now.Location(), true)
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].At.Before(dated[j].At) })

	out := []UpcomingItem{}
	for _, d := range dated {
		if d.At.Before(from) {
			continue
		}
		if !until.IsZero() && d.At.After(until) {
			continue
		}
		out = append(out, UpcomingItem{
			ID:       d.Event.ID,
			Title:    d.Event.Title,
			Date:     FormatDateTime(d.At),
			Location: d.Event.Location,
			At:       d.At,
		})
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}
