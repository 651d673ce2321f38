package datadict

import (
	"sort"
	"strings"
	"time"
)

// Indicators holds every longitudinal fact derived for one patient. A nil
// field means the indicator is undefined for that patient; extraction never
// fails on missing data.
type Indicators struct {
	FirstVisit      *time.Time
	FirstLab        *time.Time
	RegisterDate    *time.Time
	LastClinicVisit *time.Time
	RetentionMonths *float64

	FirstAntiHIVDate   *time.Time
	FirstAntiHIVResult *string
	FirstPosAntiHIV    *time.Time

	ARVInitiationDate *time.Time
	InitialARV        []string
	DaysToStartARV    *int

	LastARVPrescriptionDate *time.Time
	CurrentARV              []string

	LastViralLoadDate *time.Time
	LastViralLoad     *float64

	FirstCD4Date    *time.Time
	FirstCD4        *float64
	FirstPercentCD4 *float64
	LastCD4Date     *time.Time
	LastCD4         *float64
	LastPercentCD4  *float64

	DxBeforeARV []string

	NumberOfPartners int
}

// HasClinicalEvent reports whether any of the indicators that qualify a
// patient for the data dictionary is defined.
func (ind *Indicators) HasClinicalEvent() bool {
	return ind.FirstPosAntiHIV != nil ||
		ind.ARVInitiationDate != nil ||
		ind.LastARVPrescriptionDate != nil ||
		ind.LastViralLoadDate != nil ||
		ind.LastCD4Date != nil ||
		ind.FirstCD4Date != nil
}

// ExtractIndicators derives all indicators for one patient from its visit
// and lab events. Events must already be restricted to the report's date
// range; they need not be sorted.
func ExtractIndicators(visits []VisitEvent, labs []LabEvent, partnerCount int) Indicators {
	ind := Indicators{NumberOfPartners: partnerCount}

	ind.FirstVisit = firstVisitDate(visits)
	ind.FirstLab = firstLabDate(labs)
	ind.RegisterDate = earliestOf(ind.FirstVisit, ind.FirstLab)
	ind.LastClinicVisit = latestOf(lastVisitDate(visits), lastLabDate(labs))
	ind.RetentionMonths = retentionMonths(ind.RegisterDate, ind.LastClinicVisit)

	ind.FirstAntiHIVDate, ind.FirstAntiHIVResult = firstAntiHIV(labs)
	ind.FirstPosAntiHIV = firstPositiveAntiHIV(labs)

	ind.ARVInitiationDate, ind.InitialARV = arvInitiation(visits)
	ind.LastARVPrescriptionDate, ind.CurrentARV = lastARVPrescription(visits)
	ind.DaysToStartARV = daysToStartARV(ind.ARVInitiationDate, ind.FirstPosAntiHIV)

	ind.LastViralLoadDate, ind.LastViralLoad = lastViralLoad(labs)
	ind.FirstCD4Date, ind.FirstCD4, ind.FirstPercentCD4 = firstCD4(labs)
	ind.LastCD4Date, ind.LastCD4, ind.LastPercentCD4 = lastCD4(labs)

	ind.DxBeforeARV = diagnosesBeforeARV(visits, ind)

	return ind
}

func firstVisitDate(visits []VisitEvent) *time.Time {
	var first *time.Time
	for i := range visits {
		if first == nil || visits[i].Date.Before(*first) {
			first = &visits[i].Date
		}
	}
	return first
}

func lastVisitDate(visits []VisitEvent) *time.Time {
	var last *time.Time
	for i := range visits {
		if last == nil || visits[i].Date.After(*last) {
			last = &visits[i].Date
		}
	}
	return last
}

func firstLabDate(labs []LabEvent) *time.Time {
	var first *time.Time
	for i := range labs {
		if first == nil || labs[i].Date.Before(*first) {
			first = &labs[i].Date
		}
	}
	return first
}

func lastLabDate(labs []LabEvent) *time.Time {
	var last *time.Time
	for i := range labs {
		if last == nil || labs[i].Date.After(*last) {
			last = &labs[i].Date
		}
	}
	return last
}

func earliestOf(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Before(*a):
		return b
	default:
		return a
	}
}

func latestOf(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.After(*a):
		return b
	default:
		return a
	}
}

// retentionMonths is the span from entry into care to the last clinic
// contact, in 30-day months.
func retentionMonths(registerDate, lastClinicVisit *time.Time) *float64 {
	if registerDate == nil || lastClinicVisit == nil {
		return nil
	}
	days := lastClinicVisit.Sub(*registerDate).Hours() / 24
	months := days / 30
	return &months
}

// firstAntiHIV returns the date and result of the earliest antibody test of
// any outcome.
func firstAntiHIV(labs []LabEvent) (*time.Time, *string) {
	var date *time.Time
	var result *string
	for i := range labs {
		if labs[i].AntiHIV == nil {
			continue
		}
		if date == nil || labs[i].Date.Before(*date) {
			date = &labs[i].Date
			result = labs[i].AntiHIV
		}
	}
	return date, result
}

// firstPositiveAntiHIV is the earliest antibody test that is neither
// negative nor inconclusive. The match is against the stored label, so
// "Negative" excludes only the confirmed-negative value and any label
// containing "Incon" covers the inconclusive variants.
func firstPositiveAntiHIV(labs []LabEvent) *time.Time {
	var date *time.Time
	for i := range labs {
		r := labs[i].AntiHIV
		if r == nil || *r == "Negative" || strings.Contains(*r, "Incon") {
			continue
		}
		if date == nil || labs[i].Date.Before(*date) {
			date = &labs[i].Date
		}
	}
	return date
}

// arvInitiation finds the earliest visit with a non-empty ARV set and the
// regimen prescribed there. An empty ARV set means no ARV that visit, so it
// never counts as initiation.
func arvInitiation(visits []VisitEvent) (*time.Time, []string) {
	var date *time.Time
	var regimen []string
	for i := range visits {
		if len(visits[i].ARVMedications) == 0 {
			continue
		}
		if date == nil || visits[i].Date.Before(*date) {
			date = &visits[i].Date
			regimen = visits[i].ARVMedications
		}
	}
	return date, regimen
}

func lastARVPrescription(visits []VisitEvent) (*time.Time, []string) {
	var date *time.Time
	var regimen []string
	for i := range visits {
		if len(visits[i].ARVMedications) == 0 {
			continue
		}
		if date == nil || visits[i].Date.After(*date) {
			date = &visits[i].Date
			regimen = visits[i].ARVMedications
		}
	}
	return date, regimen
}

// daysToStartARV is the whole-day gap from the first positive antibody test
// to ARV initiation. Initiation recorded before the positive test is a
// data-entry inconsistency and clamps to zero.
func daysToStartARV(arvInitiation, firstPosAntiHIV *time.Time) *int {
	if arvInitiation == nil || firstPosAntiHIV == nil {
		return nil
	}
	days := int(arvInitiation.Sub(*firstPosAntiHIV).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

// lastViralLoad returns the most recent result as stored; the undetectable
// sentinel passes through untouched for the formatting pass to substitute.
func lastViralLoad(labs []LabEvent) (*time.Time, *float64) {
	var date *time.Time
	var value *float64
	for i := range labs {
		if labs[i].ViralLoad == nil {
			continue
		}
		if date == nil || labs[i].Date.After(*date) {
			date = &labs[i].Date
			value = labs[i].ViralLoad
		}
	}
	return date, value
}

func firstCD4(labs []LabEvent) (*time.Time, *float64, *float64) {
	var date *time.Time
	var absolute, percent *float64
	for i := range labs {
		if labs[i].AbsoluteCD4 == nil {
			continue
		}
		if date == nil || labs[i].Date.Before(*date) {
			date = &labs[i].Date
			absolute = labs[i].AbsoluteCD4
			percent = labs[i].PercentCD4
		}
	}
	return date, absolute, percent
}

// lastCD4 mirrors firstCD4 at the other end of the series. A patient with a
// single CD4 measurement reports the same record for both.
func lastCD4(labs []LabEvent) (*time.Time, *float64, *float64) {
	var date *time.Time
	var absolute, percent *float64
	for i := range labs {
		if labs[i].AbsoluteCD4 == nil {
			continue
		}
		if date == nil || labs[i].Date.After(*date) {
			date = &labs[i].Date
			absolute = labs[i].AbsoluteCD4
			percent = labs[i].PercentCD4
		}
	}
	return date, absolute, percent
}

// diagnosesBeforeARV collects the distinct co-morbid impressions recorded
// from entry into care through ARV initiation. The HIV disease code itself
// (B20) is excluded so the column surfaces opportunistic infections and
// other co-morbidities only. Undefined unless the patient has both a
// positive antibody test and an ARV initiation.
func diagnosesBeforeARV(visits []VisitEvent, ind Indicators) []string {
	if ind.FirstPosAntiHIV == nil || ind.ARVInitiationDate == nil {
		return nil
	}
	entry := earliestOf(ind.FirstVisit, ind.FirstLab)
	if entry == nil {
		return nil
	}

	seen := make(map[string]bool)
	for i := range visits {
		v := &visits[i]
		if v.Date.Before(*entry) || v.Date.After(*ind.ARVInitiationDate) {
			continue
		}
		for _, dx := range v.Impression {
			if strings.Contains(strings.ToUpper(dx), "B20") {
				continue
			}
			seen[dx] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for dx := range seen {
		out = append(out, dx)
	}
	sort.Strings(out)
	return out
}
