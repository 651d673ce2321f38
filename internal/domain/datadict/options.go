package datadict

import (
	"fmt"
	"time"
)

// DateRange bounds which clinical events participate in a report. A nil end
// leaves that side open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Validate rejects a nonsensical range so callers can tell "no data in
// range" apart from a bad request.
func (r DateRange) Validate() error {
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return fmt.Errorf("start date %s is after end date %s",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return nil
}

// Bounded reports whether either side of the range is set.
func (r DateRange) Bounded() bool {
	return r.Start != nil || r.End != nil
}

// Contains reports whether t falls inside the range, inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Options controls the formatting pass applied after row assembly.
type Options struct {
	// DateFormat is a Go reference layout; empty leaves dates in ISO form.
	DateFormat string
	// JoinArrayBy is the delimiter for multi-valued columns.
	JoinArrayBy string
	// AgeAsString renders age as "N years M months D days" instead of
	// whole years.
	AgeAsString bool
	// IDsAsString renders patient identifiers as their string form.
	IDsAsString bool
}

// DefaultOptions match what the report endpoints serve when the caller does
// not override anything.
func DefaultOptions() Options {
	return Options{
		DateFormat:  "02-01-2006",
		JoinArrayBy: ",",
	}
}
