package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. ClinicID is nil until the patient is
// administratively registered into the clinic; HN is the hospital number and
// is always present.
type Patient struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	ClinicID             *string    `db:"clinic_id" json:"clinic_id,omitempty"`
	HN                   string     `db:"hn" json:"hn"`
	GovernmentID         *string    `db:"government_id" json:"government_id,omitempty"`
	NAPID                *string    `db:"nap_id" json:"nap_id,omitempty"`
	Name                 string     `db:"name" json:"name"`
	DateOfBirth          *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Sex                  string     `db:"sex" json:"sex"`
	Gender               *string    `db:"gender" json:"gender,omitempty"`
	MaritalStatus        *string    `db:"marital_status" json:"marital_status,omitempty"`
	Nationality          *string    `db:"nationality" json:"nationality,omitempty"`
	Occupation           *string    `db:"occupation" json:"occupation,omitempty"`
	Education            *string    `db:"education" json:"education,omitempty"`
	Address              *string    `db:"address" json:"address,omitempty"`
	Cares                *string    `db:"cares" json:"cares,omitempty"`
	HealthInsurance      string     `db:"health_insurance" json:"health_insurance"`
	PhoneNumbers         []string   `db:"phone_numbers" json:"phone_numbers,omitempty"`
	RelativePhoneNumbers []string   `db:"relative_phone_numbers" json:"relative_phone_numbers,omitempty"`
	ReferralStatus       *string    `db:"referral_status" json:"referral_status,omitempty"`
	ReferredFrom         *string    `db:"referred_from" json:"referred_from,omitempty"`
	PatientStatus        *string    `db:"patient_status" json:"patient_status,omitempty"`
	ReferredOutTo        *string    `db:"referred_out_to" json:"referred_out_to,omitempty"`
	RiskBehaviors        []string   `db:"risk_behaviors" json:"risk_behaviors,omitempty"`
	Imported             bool       `db:"imported" json:"imported"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// Partner is one contact-tracing record for a patient.
type Partner struct {
	ID                    uuid.UUID `db:"id" json:"id"`
	PatientID             uuid.UUID `db:"patient_id" json:"patient_id"`
	Deceased              *string   `db:"deceased" json:"deceased,omitempty"`
	Sex                   *string   `db:"sex" json:"sex,omitempty"`
	Gender                *string   `db:"gender" json:"gender,omitempty"`
	HIVStatus             *string   `db:"hiv_status" json:"hiv_status,omitempty"`
	StatusDisclosure      *string   `db:"status_disclosure" json:"status_disclosure,omitempty"`
	TreatmentOrPrevention []string  `db:"treatment_or_prevention" json:"treatment_or_prevention,omitempty"`
	ClinicAttend          *string   `db:"clinic_attend" json:"clinic_attend,omitempty"`
	HN                    *string   `db:"hn" json:"hn,omitempty"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}
