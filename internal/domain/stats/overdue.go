package stats

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// OverdueItem is one clinic-registered patient whose last qualifying event
// is older than the lookback window.
type OverdueItem struct {
	LastDate string    `json:"last_date"`
	ID       uuid.UUID `json:"id"`
	HN       string    `json:"hn"`
	Name     string    `json:"name"`
	ClinicID string    `json:"clinicID"`
}

// OverdueViralLoad lists registered patients whose most recent viral load
// measurement is on or before today minus the given number of months.
func OverdueViralLoad(patients []PatientRecord, labs []LabRecord, today time.Time, months int) []OverdueItem {
	last := make(map[uuid.UUID]time.Time)
	for _, l := range labs {
		if l.ViralLoad == nil {
			continue
		}
		if prev, ok := last[l.PatientID]; !ok || l.Date.After(prev) {
			last[l.PatientID] = l.Date
		}
	}
	return overdueSince(patients, last, cutoff(today, months))
}

// OverdueFollowUp lists registered patients whose most recent visit is on or
// before today minus the given number of months.
func OverdueFollowUp(patients []PatientRecord, visits []VisitRecord, today time.Time, months int) []OverdueItem {
	last := make(map[uuid.UUID]time.Time)
	for _, v := range visits {
		if prev, ok := last[v.PatientID]; !ok || v.Date.After(prev) {
			last[v.PatientID] = v.Date
		}
	}
	return overdueSince(patients, last, cutoff(today, months))
}

func cutoff(today time.Time, months int) time.Time {
	return today.AddDate(0, -months, 0)
}

// overdueSince keeps registered patients whose last event date exists and is
// not after the cutoff, longest-overdue first. Patients with no event at all
// are not overdue; they never entered follow-up.
func overdueSince(patients []PatientRecord, last map[uuid.UUID]time.Time, cutoff time.Time) []OverdueItem {
	items := make([]OverdueItem, 0)
	dates := make(map[uuid.UUID]time.Time)
	for _, p := range patients {
		if !p.Registered() {
			continue
		}
		d, ok := last[p.ID]
		if !ok || d.After(cutoff) {
			continue
		}
		dates[p.ID] = d
		items = append(items, OverdueItem{
			LastDate: d.Format("2006-01-02"),
			ID:       p.ID,
			HN:       p.HN,
			Name:     p.Name,
			ClinicID: *p.ClinicID,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		di, dj := dates[items[i].ID], dates[items[j].ID]
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return items[i].HN < items[j].HN
	})
	return items
}
