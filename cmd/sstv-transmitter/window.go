package main

import (
	"time"
)

// NewWindow returns a recurring daily time window. Only the hour and
// minute of start and end are significant. If end is before start the
// window crosses midnight. Equal start and end (including both zero)
// mean the window is always active.
func NewWindow(start, end time.Time) *Window {
	return &Window{
		start: minuteOfDay(start),
		end:   minuteOfDay(end),
		Now:   time.Now,
	}
}

// Window represents a daily transmission window. Now can be replaced
// to control the time source in tests.
type Window struct {
	start int
	end   int
	Now   func() time.Time
}

// Active returns true if the current time falls inside the window.
func (w *Window) Active() bool {
	if w.start == w.end {
		return true
	}
	now := minuteOfDay(w.Now())
	if w.start < w.end {
		return now >= w.start && now <= w.end
	}
	// Crosses midnight.
	return now >= w.start || now <= w.end
}

// Until returns the duration until the window next opens, or zero if
// it is already active.
func (w *Window) Until() time.Duration {
	if w.Active() {
		return 0
	}
	d := w.start - minuteOfDay(w.Now())
	if d < 0 {
		d += 24 * 60
	}
	return time.Duration(d) * time.Minute
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
