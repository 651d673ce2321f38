package visit

import (
	"time"

	"github.com/google/uuid"
)

// Visit is one clinical encounter. ARVMedications non-empty is the signal
// that the patient was on antiretroviral treatment at that date.
type Visit struct {
	ID                uuid.UUID `db:"id" json:"id"`
	PatientID         uuid.UUID `db:"patient_id" json:"patient_id"`
	Date              time.Time `db:"date" json:"date"`
	BodyWeight        *float64  `db:"body_weight" json:"body_weight,omitempty"`
	ContactWithTB     *bool     `db:"contact_with_tb" json:"contact_with_tb,omitempty"`
	ARTAdherenceScale *float64  `db:"art_adherence_scale" json:"art_adherence_scale,omitempty"`
	ARTDelayedDosing  *float64  `db:"art_delayed_dosing" json:"art_delayed_dosing,omitempty"`
	AdherenceProblem  *string   `db:"adherence_problem" json:"adherence_problem,omitempty"`
	Impression        []string  `db:"impression" json:"impression,omitempty"`
	ARVMedications    []string  `db:"arv_medications" json:"arv_medications,omitempty"`
	WhySwitchingARV   *string   `db:"why_switching_arv" json:"why_switching_arv,omitempty"`
	TBMedications     []string  `db:"tb_medications" json:"tb_medications,omitempty"`
	OIMedications     []string  `db:"oi_medications" json:"oi_medications,omitempty"`
	Medications       []string  `db:"medications" json:"medications,omitempty"`
	Imported          bool      `db:"imported" json:"imported"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Appointment is a scheduled follow-up.
type Appointment struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	Date           time.Time `db:"date" json:"date"`
	AppointmentFor string    `db:"appointment_for" json:"appointment_for"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
