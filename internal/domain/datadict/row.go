package datadict

import (
	"github.com/hivcare/clinic/internal/domain/patient"
)

// Row is one assembled data-dictionary record: a patient's demographics
// joined with every derived indicator. Multi-valued fields stay as slices
// until the formatting pass so nothing is collapsed early.
type Row struct {
	Patient    *patient.Patient
	Indicators Indicators
}

// Columns is the fixed, ordered header of the data dictionary. Report
// output must keep this order stable so exports line up run to run.
var Columns = []string{
	"System ID",
	"Clinic ID",
	"HN",
	"ID",
	"NAP",
	"Name",
	"Date of birth",
	"Age",
	"Sex",
	"Gender",
	"Marital status",
	"Nationality",
	"Address",
	"Healthcare scheme",
	"PCU/SMC/Frequent clinic",
	"Phone number",
	"Relative's phone number",
	"Referral status",
	"Referred from",
	"Risk behaviors",
	"Patient status",
	"Referred out to",
	"Number of partners",
	"Register date",
	"Last visit date",
	"Retention period (months)",
	"First anti-HIV testing date",
	"First anti-HIV testing result",
	"First anti-HIV positive date",
	"ARV initiation date",
	"First ARV regimen",
	"# of days to start ARV",
	"Last ARV prescription date",
	"Last ARV regimen",
	"Last viral load date",
	"Last viral load result",
	"First CD4 date",
	"First CD4 result",
	"First %CD4 result",
	"Last CD4 date",
	"Last CD4 result",
	"Last %CD4 result",
	"Other diagnosis before ARV initiation",
}
