package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func id(n byte) uuid.UUID {
	var u uuid.UUID
	u[15] = n
	return u
}

func sp(s string) *string { return &s }

func fp(v float64) *float64 { return &v }

func d(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestBuildDashboard_Counts(t *testing.T) {
	today := d(2024, 6, 1)
	patients := []PatientRecord{
		{ID: id(1), ClinicID: sp("63/001"), HN: "1001"},
		{ID: id(2), ClinicID: sp("63/002"), HN: "1002"},
		{ID: id(3), HN: "1003"},
	}
	visits := []VisitRecord{
		// id(1) is a returning patient seen today.
		{PatientID: id(1), Date: d(2023, 1, 10)},
		{PatientID: id(1), Date: today},
		// id(2)'s first ever visit is today.
		{PatientID: id(2), Date: today},
		// unregistered walk-in, never counted
		{PatientID: id(3), Date: today},
	}

	db := BuildDashboard(patients, visits, nil, today, 12, 12)

	if db.PatientCount != 2 {
		t.Errorf("PatientCount = %d, want 2", db.PatientCount)
	}
	if db.ExaminedCount != 2 {
		t.Errorf("ExaminedCount = %d, want 2", db.ExaminedCount)
	}
	if db.NewPatientCount != 1 {
		t.Errorf("NewPatientCount = %d, want 1", db.NewPatientCount)
	}
}

func TestOverdueViralLoad_Window(t *testing.T) {
	today := d(2024, 6, 1)
	patients := []PatientRecord{
		{ID: id(1), ClinicID: sp("63/001"), HN: "1001", Name: "A"},
		{ID: id(2), ClinicID: sp("63/002"), HN: "1002", Name: "B"},
		{ID: id(3), ClinicID: sp("63/003"), HN: "1003", Name: "C"},
	}
	labs := []LabRecord{
		// exactly twelve months ago, still inside the window
		{PatientID: id(1), Date: d(2023, 6, 1), ViralLoad: fp(40)},
		// more recent than the cutoff
		{PatientID: id(2), Date: d(2023, 7, 1), ViralLoad: fp(40)},
		// overdue; a CD4-only lab afterwards must not reset the clock
		{PatientID: id(3), Date: d(2023, 5, 1), ViralLoad: fp(40)},
		{PatientID: id(3), Date: d(2024, 5, 1), AbsoluteCD4: fp(300)},
	}

	items := OverdueViralLoad(patients, labs, today, 12)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	// longest overdue first
	if items[0].HN != "1003" || items[1].HN != "1001" {
		t.Errorf("unexpected order: %q then %q", items[0].HN, items[1].HN)
	}
	if items[0].LastDate != "2023-05-01" {
		t.Errorf("LastDate = %q, want 2023-05-01", items[0].LastDate)
	}
	if items[0].ClinicID != "63/003" {
		t.Errorf("ClinicID = %q, want 63/003", items[0].ClinicID)
	}
}

func TestOverdueFollowUp(t *testing.T) {
	today := d(2024, 6, 1)
	patients := []PatientRecord{
		{ID: id(1), ClinicID: sp("63/001"), HN: "1001"},
		{ID: id(2), ClinicID: sp("63/002"), HN: "1002"},
		// registered but never visited: not in follow-up
		{ID: id(3), ClinicID: sp("63/003"), HN: "1003"},
		// unregistered with an ancient visit
		{ID: id(4), HN: "1004"},
	}
	visits := []VisitRecord{
		{PatientID: id(1), Date: d(2022, 1, 5)},
		{PatientID: id(2), Date: d(2024, 5, 20)},
		{PatientID: id(4), Date: d(2020, 1, 1)},
	}

	items := OverdueFollowUp(patients, visits, today, 12)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(items), items)
	}
	if items[0].HN != "1001" || items[0].LastDate != "2022-01-05" {
		t.Errorf("unexpected item: %+v", items[0])
	}
}
