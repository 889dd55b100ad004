package engine

import "time"

// Clock supplies wall time for timestamps written into records.
// Implemented by SystemClock (production) and testutil.FixedClock (tests).
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

const (
	// isoLayout matches JavaScript's Date.prototype.toISOString.
	isoLayout = "2006-01-02T15:04:05.000Z07:00"

	// localeLayout matches Date.prototype.toLocaleString in en-US.
	localeLayout = "1/2/2006, 3:04:05 PM"

	// justNow is the display time given to freshly sent notifications.
	justNow = "just now"
)

func (e *Engine) isoNow() string {
	return e.clock.Now().UTC().Format(isoLayout)
}

func (e *Engine) localeNow() string {
	return e.clock.Now().Format(localeLayout)
}
