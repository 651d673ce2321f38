// Package thaidate handles dates recorded in the Thai Buddhist calendar.
// Hospital exports mix Buddhist-era and Gregorian years freely, so every
// inbound date passes through Normalize before storage.
package thaidate

import (
	"fmt"
	"strings"
	"time"
)

// Buddhist-era years run 543 ahead of Gregorian. Any year at or above this
// threshold is treated as Buddhist era; real Gregorian clinical dates never
// reach 2500.
const buddhistEraThreshold = 2500

const eraOffset = 543

// Normalize converts a Buddhist-era date to Gregorian. Dates already in the
// Gregorian range are returned unchanged.
func Normalize(t time.Time) time.Time {
	if t.Year() >= buddhistEraThreshold {
		return t.AddDate(-eraOffset, 0, 0)
	}
	return t
}

// NormalizeYear converts a bare year value.
func NormalizeYear(year int) int {
	if year >= buddhistEraThreshold {
		return year - eraOffset
	}
	return year
}

// layouts accepted by Parse, tried in order. Thai hospital systems export
// day-first; ISO is accepted for API clients.
var layouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	time.RFC3339,
}

// Parse reads a date string in any accepted layout and normalizes
// Buddhist-era years.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Normalize(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
