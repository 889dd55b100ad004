package views

import (
	"sort"
	"time"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// Dated pairs an event with its parsed start.
type Dated struct {
	Event model.Event
	At    time.Time
}

// datedEvents parses every event and drops the ones without a readable date.
func datedEvents(events []model.Event, loc *time.Location, withClock bool) []Dated {
	out := make([]Dated, 0, len(events))
	for _, ev := range events {
		clock := ""
		if withClock {
			clock = ev.Time
		}
		if at, ok := ParseDateTime(ev.Date, clock, loc); ok {
			out = append(out, Dated{Event: ev, At: at})
		}
	}
	return out
}

// MonthEvents returns the events whose date falls in the given month, sorted
// by date. Events on the same day keep their record order.
func MonthEvents(events []model.Event, year int, month time.Month, loc *time.Location) []model.Event {
	dated := datedEvents(events, loc, false)
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].At.Before(dated[j].At) })

	out := []model.Event{}
	for _, d := range dated {
		if d.At.Year() == year && d.At.Month() == month {
			out = append(out, d.Event)
		}
	}
	return out
}

// MonthGrid returns the days shown for a month view: whole weeks from the
// Sunday on or before the 1st through the Saturday on or after the last day.
func MonthGrid(year int, month time.Month, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	day := first.AddDate(0, 0, -int(first.Weekday()))
	var days []time.Time
	for !day.After(last) || day.Weekday() != time.Sunday {
		days = append(days, day)
		day = day.AddDate(0, 0, 1)
	}
	return days
}

// EventsOn returns the events dated on the same calendar day as day.
func EventsOn(events []model.Event, day time.Time) []model.Event {
	y, m, d := day.Date()
	out := []model.Event{}
	for _, de := range datedEvents(events, day.Location(), false) {
		ey, em, ed := de.At.Date()
		if ey == y && em == m && ed == d {
			out = append(out, de.Event)
		}
	}
	return out
}

// ByStatus returns the events with the given status in record order.
func ByStatus(events []model.Event, status model.EventStatus) []model.Event {
	out := []model.Event{}
	for _, ev := range events {
		if ev.Status == status {
			out = append(out, ev)
		}
	}
	return out
}

// Published returns the events open for registration.
func Published(events []model.Event) []model.Event {
	return ByStatus(events, model.StatusPublished)
}

// ByDateRange returns the events dated within [start, end], in record order.
// Events without a readable date are left out.
func ByDateRange(events []model.Event, start, end time.Time) []model.Event {
	out := []model.Event{}
	for _, d := range datedEvents(events, start.Location(), false) {
		if !d.At.Before(start) && !d.At.After(end) {
			out = append(out, d.Event)
		}
	}
	return out
}
