// Package valueobject contains domain value objects for the P&L engine.
package valueobject

import "time"

// DateRange is an inclusive [Start, End] interval. A zero bound is open-ended.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// ThroughEndOfDay extends End to the last instant of its calendar day.
func (r DateRange) ThroughEndOfDay() DateRange {
	if r.End.IsZero() {
		return r
	}
	y, m, d := r.End.Date()
	r.End = time.Date(y, m, d, 0, 0, 0, 0, r.End.Location()).Add(24*time.Hour - time.Nanosecond)
	return r
}
