package stats

import (
	"time"

	"github.com/hivcare/clinic/pkg/tabular"
)

// BuildOverview assembles the clinic-wide statistics report: demographic
// cross-tabs for all, Thai and non-Thai patients, payer and referral
// breakdowns, lab result bands and the monthly time series. Age is computed
// against ref.
func BuildOverview(patients []PatientRecord, visits []VisitRecord, labs []LabRecord, ref time.Time) []*tabular.Table {
	thai := make([]PatientRecord, 0, len(patients))
	nonThai := make([]PatientRecord, 0)
	for _, p := range patients {
		if isThai(p.Nationality) {
			thai = append(thai, p)
		} else {
			nonThai = append(nonThai, p)
		}
	}

	return []*tabular.Table{
		AgeSexGenderTable("Age by sex and gender", patients, ref),
		AgeSexGenderTable("Age by sex and gender (Thai)", thai, ref),
		AgeSexGenderTable("Age by sex and gender (non-Thai)", nonThai, ref),
		PayerTable("Healthcare schemes (Thai)", thai),
		PayerTable("Healthcare schemes (non-Thai)", nonThai),
		ReferralTable("Referrals", patients),
		CD4Table("Last CD4", patients, labs),
		ViralLoadTable("Last viral load", patients, labs),
		NewPatientsByMonthTable("New patients by month", visits),
		VisitsByMonthTable("Visits by month", visits),
	}
}

func isThai(nationality *string) bool {
	return nationality != nil && (*nationality == "Thailand" || *nationality == "ไทย")
}
