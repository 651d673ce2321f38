package stats

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hivcare/clinic/pkg/tabular"
)

const monthLayout = "01/2006"

// NewPatientsByMonthTable counts patients by the month of their earliest
// recorded visit, chronological order.
func NewPatientsByMonthTable(name string, visits []VisitRecord) *tabular.Table {
	first := make(map[uuid.UUID]time.Time)
	for _, v := range visits {
		if prev, ok := first[v.PatientID]; !ok || v.Date.Before(prev) {
			first[v.PatientID] = v.Date
		}
	}

	counts := make(map[time.Time]int)
	for _, d := range first {
		counts[monthOf(d)]++
	}
	return monthTable(name, counts)
}

// VisitsByMonthTable counts all visits per calendar month, chronological
// order.
func VisitsByMonthTable(name string, visits []VisitRecord) *tabular.Table {
	counts := make(map[time.Time]int)
	for _, v := range visits {
		counts[monthOf(v.Date)]++
	}
	return monthTable(name, counts)
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthTable(name string, counts map[time.Time]int) *tabular.Table {
	months := make([]time.Time, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	t := &tabular.Table{Name: name, Columns: []string{"Month", "Count"}}
	for _, m := range months {
		t.AppendRow(m.Format(monthLayout), strconv.Itoa(counts[m]))
	}
	return t
}
