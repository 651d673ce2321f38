package datadict

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Builder assembles the data dictionary: one row per eligible patient,
// recomputed from the source on every call. Nothing is cached between
// reports.
type Builder struct {
	source Source
}

func NewBuilder(source Source) *Builder {
	return &Builder{source: source}
}

// Build produces the ordered row set for the requested range.
//
// A patient is included when it is administratively registered (non-nil
// clinic id) or any qualifying indicator is defined, and its register date
// falls inside the range. A registered patient with no events at all has no
// register date; such patients appear only in unbounded reports.
func (b *Builder) Build(ctx context.Context, r DateRange) ([]Row, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	patients, err := b.source.Patients(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}
	visits, err := b.source.VisitEvents(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("load visits: %w", err)
	}
	labs, err := b.source.LabEvents(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("load labs: %w", err)
	}
	partnerCounts, err := b.source.PartnerCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load partner counts: %w", err)
	}

	visitsByPatient := make(map[uuid.UUID][]VisitEvent)
	for _, v := range visits {
		visitsByPatient[v.PatientID] = append(visitsByPatient[v.PatientID], v)
	}
	labsByPatient := make(map[uuid.UUID][]LabEvent)
	for _, l := range labs {
		labsByPatient[l.PatientID] = append(labsByPatient[l.PatientID], l)
	}

	var rows []Row
	for _, p := range patients {
		ind := ExtractIndicators(visitsByPatient[p.ID], labsByPatient[p.ID], partnerCounts[p.ID])

		if p.ClinicID == nil && !ind.HasClinicalEvent() {
			continue
		}
		if ind.RegisterDate == nil {
			// No clinical touchpoint at all. Only a registered patient
			// can appear, and only when no range was requested.
			if r.Bounded() {
				continue
			}
		} else if !r.Contains(*ind.RegisterDate) {
			continue
		}

		rows = append(rows, Row{Patient: p, Indicators: ind})
	}

	sortRows(rows)
	return rows, nil
}

// sortRows orders by clinic id (nulls last), then date of birth, then first
// positive antibody date, with the patient id as a final tie-break so the
// order is reproducible.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		if c := compareNullableStr(a.Patient.ClinicID, b.Patient.ClinicID); c != 0 {
			return c < 0
		}
		if c := compareNullableTime(a.Patient.DateOfBirth, b.Patient.DateOfBirth); c != 0 {
			return c < 0
		}
		if c := compareNullableTime(a.Indicators.FirstPosAntiHIV, b.Indicators.FirstPosAntiHIV); c != 0 {
			return c < 0
		}
		return a.Patient.ID.String() < b.Patient.ID.String()
	})
}

func compareNullableStr(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func compareNullableTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	default:
		return 0
	}
}
