package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PatientRecord carries the demographic slice of a patient that the
// statistics builders need. ClinicID is nil for walk-ins that were never
// registered into the clinic.
type PatientRecord struct {
	ID              uuid.UUID
	ClinicID        *string
	HN              string
	Name            string
	DateOfBirth     *time.Time
	Sex             string
	Gender          *string
	Nationality     *string
	HealthInsurance string
	ReferralStatus  *string
	ReferredFrom    *string
}

// Registered reports whether the patient holds a clinic id.
func (p PatientRecord) Registered() bool {
	return p.ClinicID != nil
}

type VisitRecord struct {
	PatientID uuid.UUID
	Date      time.Time
}

// LabRecord is one investigation event. ViralLoad and AbsoluteCD4 are nil
// when the assay was not performed on that date.
type LabRecord struct {
	PatientID   uuid.UUID
	Date        time.Time
	ViralLoad   *float64
	AbsoluteCD4 *float64
}

// Source supplies the raw inputs for statistics. Implementations read whole
// collections; the builders do all grouping and filtering in memory.
type Source interface {
	Patients(ctx context.Context) ([]PatientRecord, error)
	Visits(ctx context.Context) ([]VisitRecord, error)
	Labs(ctx context.Context) ([]LabRecord, error)
}
