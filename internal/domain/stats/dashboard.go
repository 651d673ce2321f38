package stats

import (
	"time"

	"github.com/google/uuid"
)

// Dashboard is the daily snapshot served to the clinic front desk.
type Dashboard struct {
	PatientCount    int           `json:"patientCount"`
	SchemeCounts    SchemeCounts  `json:"schemeCounts"`
	ExaminedCount   int           `json:"examinedCount"`
	NewPatientCount int           `json:"newPatientCount"`
	OverdueVL       []OverdueItem `json:"overdueVL"`
	OverdueFU       []OverdueItem `json:"overdueFU"`
}

// BuildDashboard computes the snapshot for the given day. Only
// clinic-registered patients count; a new patient is one whose earliest
// recorded visit falls on that day.
func BuildDashboard(patients []PatientRecord, visits []VisitRecord, labs []LabRecord, today time.Time, vlMonths, fuMonths int) *Dashboard {
	today = truncateToDay(today)

	registered := make(map[uuid.UUID]bool)
	d := &Dashboard{}
	for _, p := range patients {
		if p.Registered() {
			registered[p.ID] = true
			d.PatientCount++
		}
	}
	d.SchemeCounts = CountSchemes(patients)

	first := make(map[uuid.UUID]time.Time)
	for _, v := range visits {
		if !registered[v.PatientID] {
			continue
		}
		day := truncateToDay(v.Date)
		if day.Equal(today) {
			d.ExaminedCount++
		}
		if prev, ok := first[v.PatientID]; !ok || day.Before(prev) {
			first[v.PatientID] = day
		}
	}
	for _, firstDay := range first {
		if firstDay.Equal(today) {
			d.NewPatientCount++
		}
	}

	d.OverdueVL = OverdueViralLoad(patients, labs, today, vlMonths)
	d.OverdueFU = OverdueFollowUp(patients, visits, today, fuMonths)
	return d
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
