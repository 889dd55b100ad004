package views

import (
	"regexp"
	"strings"
	"time"
)

var (
	isoDate   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	clockTime = regexp.MustCompile(`^(\d{2}):(\d{2})`)
)

// Layouts tried for dates that are neither ISO nor day/month/year.
var looseDateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// Layouts tried for the time that follows a loose date.
var looseTimeLayouts = []string{
	"03:04 PM",
	"3:04 PM",
	"03:04PM",
	"3:04PM",
	"15:04",
	"15:04:05",
}

// ParseDateTime interprets an event's free-form date and time in loc.
//
// Accepted dates are YYYY-MM-DD, D/M/YYYY (day first) and English month
// forms such as "Mar 15, 2025". For the first two, a time starting with HH:MM
// is used and anything else means midnight. Loose dates also accept 12-hour
// times like "09:00 AM". ok is false when the date cannot be read.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	switch {
	case isoDate.MatchString(date):
		d, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return time.Time{}, false
		}
		return withClock(d, clock)

	case slashDate.MatchString(date):
		m := slashDate.FindStringSubmatch(date)
		d, err := time.ParseInLocation("2/1/2006", m[1]+"/"+m[2]+"/"+m[3], loc)
		if err != nil {
			return time.Time{}, false
		}
		return withClock(d, clock)
	}

	for _, dl := range looseDateLayouts {
		d, err := time.ParseInLocation(dl, date, loc)
		if err != nil {
			continue
		}
		if clock == "" {
			return d, true
		}
		for _, tl := range looseTimeLayouts {
			if t, err := time.ParseInLocation(dl+" "+tl, date+" "+strings.ToUpper(clock), loc); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}

// ParseDate reads only the date part; see ParseDateTime.
func ParseDate(date string, loc *time.Location) (time.Time, bool) {
	return ParseDateTime(date, "", loc)
}

// withClock adds a leading HH:MM from clock to midnight d.
func withClock(d time.Time, clock string) (time.Time, bool) {
	m := clockTime.FindStringSubmatch(clock)
	if m == nil {
		return d, true
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", d.Format("2006-01-02")+" "+m[1]+":"+m[2], d.Location())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDateTime renders t as DD/MM/YYYY HH:MM.
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
