package datadict

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hivcare/clinic/internal/domain/patient"
)

// VisitEvent is the slice of a visit the extractors need.
type VisitEvent struct {
	PatientID      uuid.UUID
	Date           time.Time
	ARVMedications []string
	Impression     []string
}

// LabEvent is the slice of an investigation the extractors need.
type LabEvent struct {
	PatientID   uuid.UUID
	Date        time.Time
	ViralLoad   *float64
	AbsoluteCD4 *float64
	PercentCD4  *float64
	AntiHIV     *string
}

// Source supplies the point-in-time snapshots a report is computed from.
// Implementations must apply the date range to events server-side so a
// bounded report never loads out-of-range history.
type Source interface {
	Patients(ctx context.Context) ([]*patient.Patient, error)
	VisitEvents(ctx context.Context, r DateRange) ([]VisitEvent, error)
	LabEvents(ctx context.Context, r DateRange) ([]LabEvent, error)
	PartnerCounts(ctx context.Context) (map[uuid.UUID]int, error)
}
