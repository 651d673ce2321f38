package datadict

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hivcare/clinic/internal/domain/patient"
)

func TestFormatViralLoad(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-1", "Undetectable"},
		{"Undetectable", "Undetectable"},
		{"20000", "20000"},
		{"0", "0"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatViralLoad(tt.in); got != tt.want {
			t.Fatalf("FormatViralLoad(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatViralLoad_Idempotent(t *testing.T) {
	once := FormatViralLoad("-1")
	twice := FormatViralLoad(once)
	if once != twice {
		t.Fatalf("substitution not idempotent: %q vs %q", once, twice)
	}
}

func TestAgeYears(t *testing.T) {
	dob := d(1990, 6, 15)

	if got := AgeYears(dob, d(2024, 6, 15)); got != 34 {
		t.Fatalf("on the birthday: got %d, want 34", got)
	}
	if got := AgeYears(dob, d(2024, 6, 14)); got != 33 {
		t.Fatalf("day before birthday: got %d, want 33", got)
	}
}

func TestAgeString(t *testing.T) {
	cases := []struct {
		dob, ref time.Time
		want     string
	}{
		{d(1990, 6, 15), d(2024, 8, 20), "34 years 2 months 5 days"},
		// birth day exceeds the length of the month before ref: the month
		// step clamps Jan 31 to Feb 29, leaving a single day
		{d(1990, 1, 31), d(2024, 3, 1), "34 years 1 months 1 days"},
		// leap-day birth against a non-leap anniversary
		{d(2004, 2, 29), d(2024, 2, 28), "19 years 11 months 30 days"},
		// 31st against a 30-day month
		{d(2023, 5, 31), d(2023, 7, 30), "0 years 1 months 30 days"},
		{d(1990, 6, 15), d(2024, 6, 15), "34 years 0 months 0 days"},
	}
	for _, tc := range cases {
		if got := AgeString(tc.dob, tc.ref); got != tc.want {
			t.Errorf("AgeString(%v, %v) = %q, want %q", tc.dob, tc.ref, got, tc.want)
		}
	}
}

func renderOneRow(t *testing.T, row Row, opts Options, ref time.Time) map[string]string {
	t.Helper()
	table := Render([]Row{row}, opts, ref)
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 rendered row, got %d", len(table.Rows))
	}
	m := make(map[string]string, len(Columns))
	for i, col := range Columns {
		m[col] = table.Rows[0][i]
	}
	return m
}

func TestRender(t *testing.T) {
	clinicID := "1001"
	p := &patient.Patient{
		ID:              uuid.New(),
		ClinicID:        &clinicID,
		HN:              "67/1234",
		Name:            "Somsri",
		Sex:             "female",
		HealthInsurance: "uc",
		DateOfBirth:     dp(1990, 6, 15),
		PhoneNumbers:    []string{"081-111-1111", "02-222-2222"},
		RiskBehaviors:   []string{"msm", "idu"},
	}
	row := Row{
		Patient: p,
		Indicators: Indicators{
			RegisterDate:      dp(2021, 2, 15),
			LastViralLoadDate: dp(2023, 1, 1),
			LastViralLoad:     fp(-1),
			InitialARV:        []string{"TDF", "3TC", "DTG"},
			ARVInitiationDate: dp(2021, 3, 1),
			NumberOfPartners:  2,
		},
	}

	m := renderOneRow(t, row, DefaultOptions(), d(2024, 6, 15))

	if m["Clinic ID"] != "1001" || m["HN"] != "67/1234" {
		t.Fatalf("identity columns wrong: %v", m)
	}
	if m["Age"] != "34" {
		t.Fatalf("Age = %q, want 34", m["Age"])
	}
	if m["Register date"] != "15-02-2021" {
		t.Fatalf("Register date = %q", m["Register date"])
	}
	if m["Last viral load result"] != "Undetectable" {
		t.Fatalf("Last viral load result = %q", m["Last viral load result"])
	}
	// regimens are sorted for stable diffs
	if m["First ARV regimen"] != "3TC,DTG,TDF" {
		t.Fatalf("First ARV regimen = %q", m["First ARV regimen"])
	}
	// phone numbers keep their recorded order
	if m["Phone number"] != "081-111-1111,02-222-2222" {
		t.Fatalf("Phone number = %q", m["Phone number"])
	}
	if m["Risk behaviors"] != "idu,msm" {
		t.Fatalf("Risk behaviors = %q", m["Risk behaviors"])
	}
	if m["Number of partners"] != "2" {
		t.Fatalf("Number of partners = %q", m["Number of partners"])
	}
	// undefined indicators render blank, not zero
	if m["# of days to start ARV"] != "" {
		t.Fatalf("expected blank days to start, got %q", m["# of days to start ARV"])
	}
}

func TestRender_AgeAsString(t *testing.T) {
	p := &patient.Patient{
		ID:          uuid.New(),
		HN:          "67/1",
		Name:        "x",
		Sex:         "male",
		DateOfBirth: dp(1990, 6, 15),
	}
	opts := DefaultOptions()
	opts.AgeAsString = true

	m := renderOneRow(t, Row{Patient: p}, opts, d(2024, 8, 20))
	if m["Age"] != "34 years 2 months 5 days" {
		t.Fatalf("Age = %q", m["Age"])
	}
}

func TestRender_CustomDelimiterAndDateFormat(t *testing.T) {
	p := &patient.Patient{
		ID:   uuid.New(),
		HN:   "67/1",
		Name: "x",
		Sex:  "male",
	}
	row := Row{
		Patient: p,
		Indicators: Indicators{
			RegisterDate: dp(2021, 2, 15),
			CurrentARV:   []string{"TDF", "3TC"},
			LastARVPrescriptionDate: dp(2023, 5, 1),
		},
	}
	opts := Options{DateFormat: "2006/01/02", JoinArrayBy: " | "}

	m := renderOneRow(t, row, opts, d(2024, 1, 1))
	if m["Register date"] != "2021/02/15" {
		t.Fatalf("Register date = %q", m["Register date"])
	}
	if m["Last ARV regimen"] != "3TC | TDF" {
		t.Fatalf("Last ARV regimen = %q", m["Last ARV regimen"])
	}
}

func TestRenderMaps_IDHandling(t *testing.T) {
	p := &patient.Patient{ID: uuid.New(), HN: "67/1", Name: "x", Sex: "male"}
	rows := []Row{{Patient: p}}

	maps := RenderMaps(rows, DefaultOptions(), d(2024, 1, 1))
	if _, ok := maps[0]["System ID"].(uuid.UUID); !ok {
		t.Fatalf("expected UUID value by default, got %T", maps[0]["System ID"])
	}

	opts := DefaultOptions()
	opts.IDsAsString = true
	maps = RenderMaps(rows, opts, d(2024, 1, 1))
	if got, ok := maps[0]["System ID"].(string); !ok || got != p.ID.String() {
		t.Fatalf("expected string id, got %v", maps[0]["System ID"])
	}
}
