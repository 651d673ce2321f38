package datadict

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dp(year int, month time.Month, day int) *time.Time {
	t := d(year, month, day)
	return &t
}

func fp(f float64) *float64 { return &f }
func sp(s string) *string   { return &s }

func TestExtract_RegisterDateIsEarliestTouchpoint(t *testing.T) {
	id := uuid.New()
	visits := []VisitEvent{{PatientID: id, Date: d(2021, 3, 1)}}
	labs := []LabEvent{{PatientID: id, Date: d(2021, 2, 15)}}

	ind := ExtractIndicators(visits, labs, 0)
	if ind.RegisterDate == nil || !ind.RegisterDate.Equal(d(2021, 2, 15)) {
		t.Fatalf("expected register date 2021-02-15, got %v", ind.RegisterDate)
	}

	// visit first instead
	ind = ExtractIndicators(
		[]VisitEvent{{PatientID: id, Date: d(2021, 1, 10)}},
		labs, 0)
	if !ind.RegisterDate.Equal(d(2021, 1, 10)) {
		t.Fatalf("expected register date 2021-01-10, got %v", ind.RegisterDate)
	}

	// no events at all
	ind = ExtractIndicators(nil, nil, 0)
	if ind.RegisterDate != nil {
		t.Fatalf("expected undefined register date, got %v", ind.RegisterDate)
	}
}

func TestExtract_FirstPositiveAntiHIV(t *testing.T) {
	id := uuid.New()
	labs := []LabEvent{
		{PatientID: id, Date: d(2020, 1, 1), AntiHIV: sp("Negative")},
		{PatientID: id, Date: d(2020, 2, 1), AntiHIV: sp("Inconclusive")},
		{PatientID: id, Date: d(2020, 3, 1), AntiHIV: sp("Positive")},
		{PatientID: id, Date: d(2020, 4, 1), AntiHIV: sp("Positive")},
	}

	ind := ExtractIndicators(nil, labs, 0)
	if ind.FirstPosAntiHIV == nil || !ind.FirstPosAntiHIV.Equal(d(2020, 3, 1)) {
		t.Fatalf("expected first positive 2020-03-01, got %v", ind.FirstPosAntiHIV)
	}
	if ind.FirstAntiHIVDate == nil || !ind.FirstAntiHIVDate.Equal(d(2020, 1, 1)) {
		t.Fatalf("expected first test 2020-01-01, got %v", ind.FirstAntiHIVDate)
	}
	if ind.FirstAntiHIVResult == nil || *ind.FirstAntiHIVResult != "Negative" {
		t.Fatalf("expected first result Negative, got %v", ind.FirstAntiHIVResult)
	}
}

func TestExtract_OnlyNegativeOrInconclusive(t *testing.T) {
	id := uuid.New()
	labs := []LabEvent{
		{PatientID: id, Date: d(2020, 1, 1), AntiHIV: sp("Negative")},
		{PatientID: id, Date: d(2020, 2, 1), AntiHIV: sp("Inconclusive")},
	}
	ind := ExtractIndicators(nil, labs, 0)
	if ind.FirstPosAntiHIV != nil {
		t.Fatalf("expected no positive date, got %v", ind.FirstPosAntiHIV)
	}
}

func TestExtract_ARVInitiation(t *testing.T) {
	id := uuid.New()
	visits := []VisitEvent{
		{PatientID: id, Date: d(2021, 1, 5)},
		{PatientID: id, Date: d(2021, 2, 1), ARVMedications: []string{"TDF", "3TC", "DTG"}},
		{PatientID: id, Date: d(2021, 3, 1), ARVMedications: []string{"TAF", "FTC", "DTG"}},
	}

	ind := ExtractIndicators(visits, nil, 0)
	if ind.ARVInitiationDate == nil || !ind.ARVInitiationDate.Equal(d(2021, 2, 1)) {
		t.Fatalf("expected initiation 2021-02-01, got %v", ind.ARVInitiationDate)
	}
	if len(ind.InitialARV) != 3 || ind.InitialARV[0] != "TDF" {
		t.Fatalf("unexpected initial regimen: %v", ind.InitialARV)
	}
	if ind.LastARVPrescriptionDate == nil || !ind.LastARVPrescriptionDate.Equal(d(2021, 3, 1)) {
		t.Fatalf("expected last prescription 2021-03-01, got %v", ind.LastARVPrescriptionDate)
	}
	if len(ind.CurrentARV) != 3 || ind.CurrentARV[0] != "TAF" {
		t.Fatalf("unexpected current regimen: %v", ind.CurrentARV)
	}
}

func TestExtract_EmptyARVIsNotInitiation(t *testing.T) {
	id := uuid.New()
	visits := []VisitEvent{
		{PatientID: id, Date: d(2021, 1, 5), ARVMedications: []string{}},
	}
	ind := ExtractIndicators(visits, nil, 0)
	if ind.ARVInitiationDate != nil {
		t.Fatal("an empty ARV set must not count as initiation")
	}
}

func TestExtract_DaysToStartARVClampedAtZero(t *testing.T) {
	id := uuid.New()

	// normal: positive then initiation 22 days later
	ind := ExtractIndicators(
		[]VisitEvent{{PatientID: id, Date: d(2021, 2, 1), ARVMedications: []string{"TDF"}}},
		[]LabEvent{{PatientID: id, Date: d(2021, 1, 10), AntiHIV: sp("Positive")}},
		0)
	if ind.DaysToStartARV == nil || *ind.DaysToStartARV != 22 {
		t.Fatalf("expected 22 days, got %v", ind.DaysToStartARV)
	}

	// initiation predates the recorded positive test
	ind = ExtractIndicators(
		[]VisitEvent{{PatientID: id, Date: d(2021, 1, 1), ARVMedications: []string{"TDF"}}},
		[]LabEvent{{PatientID: id, Date: d(2021, 6, 1), AntiHIV: sp("Positive")}},
		0)
	if ind.DaysToStartARV == nil || *ind.DaysToStartARV != 0 {
		t.Fatalf("expected clamp to 0, got %v", ind.DaysToStartARV)
	}

	// undefined when either endpoint is missing
	ind = ExtractIndicators(
		[]VisitEvent{{PatientID: id, Date: d(2021, 1, 1), ARVMedications: []string{"TDF"}}},
		nil, 0)
	if ind.DaysToStartARV != nil {
		t.Fatalf("expected undefined days to start, got %v", *ind.DaysToStartARV)
	}
}

func TestExtract_SingleCD4RecordFirstEqualsLast(t *testing.T) {
	id := uuid.New()
	labs := []LabEvent{
		{PatientID: id, Date: d(2022, 5, 1), AbsoluteCD4: fp(312), PercentCD4: fp(18)},
	}

	ind := ExtractIndicators(nil, labs, 0)
	if ind.FirstCD4Date == nil || ind.LastCD4Date == nil {
		t.Fatal("expected both first and last CD4 defined")
	}
	if !ind.FirstCD4Date.Equal(*ind.LastCD4Date) {
		t.Fatalf("first %v and last %v CD4 dates differ", ind.FirstCD4Date, ind.LastCD4Date)
	}
	if *ind.FirstCD4 != *ind.LastCD4 || *ind.FirstPercentCD4 != *ind.LastPercentCD4 {
		t.Fatal("expected identical first/last CD4 values for a single record")
	}
}

func TestExtract_CD4Trajectory(t *testing.T) {
	id := uuid.New()
	labs := []LabEvent{
		{PatientID: id, Date: d(2022, 1, 1), AbsoluteCD4: fp(150), PercentCD4: fp(9)},
		{PatientID: id, Date: d(2022, 6, 1)}, // no CD4 drawn
		{PatientID: id, Date: d(2023, 1, 1), AbsoluteCD4: fp(420), PercentCD4: fp(24)},
	}

	ind := ExtractIndicators(nil, labs, 0)
	if *ind.FirstCD4 != 150 || *ind.LastCD4 != 420 {
		t.Fatalf("expected 150→420, got %v→%v", *ind.FirstCD4, *ind.LastCD4)
	}
}

func TestExtract_LastViralLoadKeepsSentinel(t *testing.T) {
	id := uuid.New()
	labs := []LabEvent{
		{PatientID: id, Date: d(2022, 1, 1), ViralLoad: fp(150000)},
		{PatientID: id, Date: d(2023, 1, 1), ViralLoad: fp(-1)},
	}

	ind := ExtractIndicators(nil, labs, 0)
	if ind.LastViralLoadDate == nil || !ind.LastViralLoadDate.Equal(d(2023, 1, 1)) {
		t.Fatalf("expected last VL date 2023-01-01, got %v", ind.LastViralLoadDate)
	}
	if ind.LastViralLoad == nil || *ind.LastViralLoad != -1 {
		t.Fatalf("sentinel must pass through extraction unmodified, got %v", ind.LastViralLoad)
	}
}

func TestExtract_DiagnosesBeforeARV(t *testing.T) {
	id := uuid.New()
	visits := []VisitEvent{
		{PatientID: id, Date: d(2021, 1, 15), Impression: []string{"B20"}},
		{PatientID: id, Date: d(2021, 1, 20), Impression: []string{"A15.9"}},
		{PatientID: id, Date: d(2021, 2, 1), ARVMedications: []string{"TDF"}},
		{PatientID: id, Date: d(2021, 5, 1), Impression: []string{"E11.9"}}, // after initiation
	}
	labs := []LabEvent{
		{PatientID: id, Date: d(2021, 1, 10), AntiHIV: sp("Positive")},
	}

	ind := ExtractIndicators(visits, labs, 0)
	if len(ind.DxBeforeARV) != 1 || ind.DxBeforeARV[0] != "A15.9" {
		t.Fatalf("expected exactly [A15.9], got %v", ind.DxBeforeARV)
	}
}

func TestExtract_DiagnosesBeforeARV_UndefinedWithoutEndpoints(t *testing.T) {
	id := uuid.New()
	visits := []VisitEvent{
		{PatientID: id, Date: d(2021, 1, 15), Impression: []string{"A15.9"}},
	}

	// no positive test and no initiation
	ind := ExtractIndicators(visits, nil, 0)
	if ind.DxBeforeARV != nil {
		t.Fatalf("expected undefined diagnoses, got %v", ind.DxBeforeARV)
	}
}

func TestExtract_RetentionMonths(t *testing.T) {
	id := uuid.New()
	visits := []VisitEvent{
		{PatientID: id, Date: d(2021, 1, 1)},
		{PatientID: id, Date: d(2021, 12, 27)}, // 360 days later
	}

	ind := ExtractIndicators(visits, nil, 0)
	if ind.RetentionMonths == nil || *ind.RetentionMonths != 12 {
		t.Fatalf("expected 12 months retention, got %v", ind.RetentionMonths)
	}
}

func TestExtract_PartnerCount(t *testing.T) {
	ind := ExtractIndicators(nil, nil, 3)
	if ind.NumberOfPartners != 3 {
		t.Fatalf("expected partner count 3, got %d", ind.NumberOfPartners)
	}
}
