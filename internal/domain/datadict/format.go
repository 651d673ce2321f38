package datadict

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hivcare/clinic/internal/domain/investigation"
	"github.com/hivcare/clinic/pkg/tabular"
)

// UndetectableLabel replaces the viral-load sentinel in rendered output.
const UndetectableLabel = "Undetectable"

// FormatViralLoad substitutes the undetectable sentinel for its label.
// Applying it to an already substituted value is a no-op.
func FormatViralLoad(s string) string {
	if s == UndetectableLabel {
		return s
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v == investigation.UndetectableViralLoad {
		return UndetectableLabel
	}
	return s
}

// AgeYears is the whole-year age at the reference date.
func AgeYears(dateOfBirth, ref time.Time) int {
	years, _, _ := ageParts(dateOfBirth, ref)
	return years
}

// AgeString renders a calendar-correct "N years M months D days" age.
func AgeString(dateOfBirth, ref time.Time) string {
	years, months, days := ageParts(dateOfBirth, ref)
	return strconv.Itoa(years) + " years " + strconv.Itoa(months) + " months " + strconv.Itoa(days) + " days"
}

// ageParts decomposes dob..ref into whole months plus leftover days. The
// month step clamps to the target month's last day (Jan 31 plus one month is
// Feb 28/29), so the day count never goes negative.
func ageParts(dob, ref time.Time) (years, months, days int) {
	total := (ref.Year()-dob.Year())*12 + int(ref.Month()) - int(dob.Month())
	anchor := addMonthsClamped(dob, total)
	if anchor.After(ref) {
		total--
		anchor = addMonthsClamped(dob, total)
	}
	return total / 12, total % 12, daysBetween(anchor, ref)
}

func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := t.Day()
	if last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Render applies the post-processing transforms and lays the rows out as a
// table in the fixed column order. ref anchors age calculation; callers pass
// the report's end date when one was requested, otherwise the current time.
func Render(rows []Row, opts Options, ref time.Time) *tabular.Table {
	if opts.JoinArrayBy == "" {
		opts.JoinArrayBy = ","
	}

	t := &tabular.Table{Name: "Data dictionary", Columns: Columns}
	for i := range rows {
		t.Rows = append(t.Rows, renderRow(&rows[i], opts, ref))
	}
	return t
}

// RenderMaps produces the same content keyed by column name, for JSON
// consumers. Unless IDsAsString is set, the patient identifier stays a UUID
// value instead of its text form.
func RenderMaps(rows []Row, opts Options, ref time.Time) []map[string]interface{} {
	if opts.JoinArrayBy == "" {
		opts.JoinArrayBy = ","
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for i := range rows {
		cells := renderRow(&rows[i], opts, ref)
		m := make(map[string]interface{}, len(Columns))
		for j, col := range Columns {
			m[col] = cells[j]
		}
		if !opts.IDsAsString {
			m["System ID"] = rows[i].Patient.ID
		}
		out = append(out, m)
	}
	return out
}

func renderRow(row *Row, opts Options, ref time.Time) []string {
	p := row.Patient
	ind := &row.Indicators

	age := ""
	if p.DateOfBirth != nil {
		if opts.AgeAsString {
			age = AgeString(*p.DateOfBirth, ref)
		} else {
			age = strconv.Itoa(AgeYears(*p.DateOfBirth, ref))
		}
	}

	return []string{
		p.ID.String(),
		strVal(p.ClinicID),
		p.HN,
		strVal(p.GovernmentID),
		strVal(p.NAPID),
		p.Name,
		formatDate(p.DateOfBirth, opts.DateFormat),
		age,
		p.Sex,
		strVal(p.Gender),
		strVal(p.MaritalStatus),
		strVal(p.Nationality),
		strVal(p.Address),
		p.HealthInsurance,
		strVal(p.Cares),
		strings.Join(p.PhoneNumbers, opts.JoinArrayBy),
		strings.Join(p.RelativePhoneNumbers, opts.JoinArrayBy),
		strVal(p.ReferralStatus),
		strVal(p.ReferredFrom),
		joinSorted(p.RiskBehaviors, opts.JoinArrayBy),
		strVal(p.PatientStatus),
		strVal(p.ReferredOutTo),
		strconv.Itoa(ind.NumberOfPartners),
		formatDate(ind.RegisterDate, opts.DateFormat),
		formatDate(ind.LastClinicVisit, opts.DateFormat),
		formatFloat(ind.RetentionMonths),
		formatDate(ind.FirstAntiHIVDate, opts.DateFormat),
		strVal(ind.FirstAntiHIVResult),
		formatDate(ind.FirstPosAntiHIV, opts.DateFormat),
		formatDate(ind.ARVInitiationDate, opts.DateFormat),
		joinSorted(ind.InitialARV, opts.JoinArrayBy),
		formatInt(ind.DaysToStartARV),
		formatDate(ind.LastARVPrescriptionDate, opts.DateFormat),
		joinSorted(ind.CurrentARV, opts.JoinArrayBy),
		formatDate(ind.LastViralLoadDate, opts.DateFormat),
		formatViralLoadValue(ind.LastViralLoad),
		formatDate(ind.FirstCD4Date, opts.DateFormat),
		formatFloat(ind.FirstCD4),
		formatFloat(ind.FirstPercentCD4),
		formatDate(ind.LastCD4Date, opts.DateFormat),
		formatFloat(ind.LastCD4),
		formatFloat(ind.LastPercentCD4),
		strings.Join(ind.DxBeforeARV, opts.JoinArrayBy),
	}
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	if layout == "" {
		layout = "2006-01-02"
	}
	return t.Format(layout)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatViralLoadValue(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatViralLoad(strconv.FormatFloat(*v, 'f', -1, 64))
}

// joinSorted joins values whose source order carries no clinical meaning,
// sorting first so repeated runs produce identical cells.
func joinSorted(values []string, sep string) string {
	if len(values) == 0 {
		return ""
	}
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return strings.Join(sorted, sep)
}
