package stats

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hivcare/clinic/internal/domain/datadict"
	"github.com/hivcare/clinic/internal/domain/investigation"
	"github.com/hivcare/clinic/pkg/tabular"
)

const noData = "No data"

// ageBands in report order, youngest first. Patients without a recorded
// date of birth fall in the trailing No data band.
var ageBands = []string{
	"0-9", "10-19", "20-29", "30-39", "40-49",
	"50-59", "60-69", "70-79", "80-89", "90-99", "100+", noData,
}

func ageBand(p PatientRecord, ref time.Time) string {
	if p.DateOfBirth == nil {
		return noData
	}
	age := datadict.AgeYears(*p.DateOfBirth, ref)
	if age < 0 {
		return noData
	}
	if age >= 100 {
		return "100+"
	}
	decade := age / 10
	return strconv.Itoa(decade*10) + "-" + strconv.Itoa(decade*10+9)
}

// AgeSexGenderTable cross-tabulates patients into decade age bands, one row
// per observed sex and gender pair.
func AgeSexGenderTable(name string, patients []PatientRecord, ref time.Time) *tabular.Table {
	type key struct{ sex, gender string }
	counts := make(map[key]map[string]int)
	for _, p := range patients {
		k := key{sex: p.Sex, gender: strOrNA(p.Gender)}
		if counts[k] == nil {
			counts[k] = make(map[string]int)
		}
		counts[k][ageBand(p, ref)]++
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].sex != keys[j].sex {
			return keys[i].sex < keys[j].sex
		}
		return keys[i].gender < keys[j].gender
	})

	t := &tabular.Table{Name: name, Columns: append([]string{"Sex", "Gender"}, ageBands...)}
	for _, k := range keys {
		cells := []string{k.sex, k.gender}
		for _, band := range ageBands {
			cells = append(cells, strconv.Itoa(counts[k][band]))
		}
		t.AppendRow(cells...)
	}
	return t
}

// PayerTable counts patients per raw healthcare scheme string.
func PayerTable(name string, patients []PatientRecord) *tabular.Table {
	counts := make(map[string]int)
	for _, p := range patients {
		scheme := p.HealthInsurance
		if scheme == "" {
			scheme = noData
		}
		counts[scheme]++
	}

	schemes := make([]string, 0, len(counts))
	for s := range counts {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)

	t := &tabular.Table{Name: name, Columns: []string{"Healthcare scheme", "Count"}}
	for _, s := range schemes {
		t.AppendRow(s, strconv.Itoa(counts[s]))
	}
	return t
}

// ReferralTable cross-tabulates sex, gender and referral status against the
// referring facility.
func ReferralTable(name string, patients []PatientRecord) *tabular.Table {
	type key struct{ sex, gender, status string }
	counts := make(map[key]map[string]int)
	fromSet := make(map[string]bool)
	for _, p := range patients {
		k := key{sex: p.Sex, gender: strOrNA(p.Gender), status: strOrNA(p.ReferralStatus)}
		from := strOrNA(p.ReferredFrom)
		fromSet[from] = true
		if counts[k] == nil {
			counts[k] = make(map[string]int)
		}
		counts[k][from]++
	}

	froms := make([]string, 0, len(fromSet))
	for f := range fromSet {
		froms = append(froms, f)
	}
	sort.Strings(froms)

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.sex != b.sex {
			return a.sex < b.sex
		}
		if a.gender != b.gender {
			return a.gender < b.gender
		}
		return a.status < b.status
	})

	t := &tabular.Table{Name: name, Columns: append([]string{"Sex", "Gender", "Referral status"}, froms...)}
	for _, k := range keys {
		cells := []string{k.sex, k.gender, k.status}
		for _, f := range froms {
			cells = append(cells, strconv.Itoa(counts[k][f]))
		}
		t.AppendRow(cells...)
	}
	return t
}

// cd4Bands in report order. Band edges are upper-edge inclusive: a count of
// exactly 200 falls in 0-200 and 350 in 201-350.
var cd4Bands = []string{"0-200", "201-350", ">350", noData}

func cd4Band(cd4 float64) string {
	switch {
	case cd4 <= 200:
		return "0-200"
	case cd4 <= 350:
		return "201-350"
	default:
		return ">350"
	}
}

// CD4Table bands registered patients by their most recent CD4 count.
// Registered patients with no CD4 on file land in No data.
func CD4Table(name string, patients []PatientRecord, labs []LabRecord) *tabular.Table {
	type lastCD4 struct {
		date  time.Time
		value float64
	}
	last := make(map[uuid.UUID]lastCD4)
	for _, l := range labs {
		if l.AbsoluteCD4 == nil {
			continue
		}
		if prev, ok := last[l.PatientID]; !ok || l.Date.After(prev.date) {
			last[l.PatientID] = lastCD4{date: l.Date, value: *l.AbsoluteCD4}
		}
	}

	counts := make(map[string]int)
	for _, p := range patients {
		if !p.Registered() {
			continue
		}
		if cd4, ok := last[p.ID]; ok {
			counts[cd4Band(cd4.value)]++
		} else {
			counts[noData]++
		}
	}

	t := &tabular.Table{Name: name, Columns: []string{"CD4", "Count"}}
	for _, band := range cd4Bands {
		t.AppendRow(band, strconv.Itoa(counts[band]))
	}
	return t
}

var vlBands = []string{datadict.UndetectableLabel, "<=200", "<=1000", ">1000", noData}

func vlBand(vl float64) string {
	switch {
	case vl == investigation.UndetectableViralLoad:
		return datadict.UndetectableLabel
	case vl <= 200:
		return "<=200"
	case vl <= 1000:
		return "<=1000"
	default:
		return ">1000"
	}
}

// ViralLoadTable bands registered patients by their most recent viral load.
func ViralLoadTable(name string, patients []PatientRecord, labs []LabRecord) *tabular.Table {
	type lastVL struct {
		date  time.Time
		value float64
	}
	last := make(map[uuid.UUID]lastVL)
	for _, l := range labs {
		if l.ViralLoad == nil {
			continue
		}
		if prev, ok := last[l.PatientID]; !ok || l.Date.After(prev.date) {
			last[l.PatientID] = lastVL{date: l.Date, value: *l.ViralLoad}
		}
	}

	counts := make(map[string]int)
	for _, p := range patients {
		if !p.Registered() {
			continue
		}
		if vl, ok := last[p.ID]; ok {
			counts[vlBand(vl.value)]++
		} else {
			counts[noData]++
		}
	}

	t := &tabular.Table{Name: name, Columns: []string{"Viral load", "Count"}}
	for _, band := range vlBands {
		t.AppendRow(band, strconv.Itoa(counts[band]))
	}
	return t
}

func strOrNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
