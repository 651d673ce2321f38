package datadict

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hivcare/clinic/internal/domain/patient"
)

func doDataDict(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	if err := h.GetDataDict(e.NewContext(req, rec)); err != nil {
		t.Fatalf("GetDataDict: %v", err)
	}
	return rec
}

func singleVisitSource() (*mockSource, *patient.Patient) {
	p := newPatient("63/001")
	src := &mockSource{
		patients: []*patient.Patient{p},
		visits:   []VisitEvent{{PatientID: p.ID, Date: d(2021, 2, 15)}},
	}
	return src, p
}

func TestGetDataDict_ConfiguredDefaults(t *testing.T) {
	src, _ := singleVisitSource()
	h := NewHandler(NewBuilder(src), Options{DateFormat: "2006/01/02", JoinArrayBy: " | "})

	rec := doDataDict(t, h, "/datadict")

	var body struct {
		Rows  []map[string]interface{} `json:"rows"`
		Total int                      `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Total != 1 {
		t.Fatalf("total = %d, want 1", body.Total)
	}
	if got := body.Rows[0]["Register date"]; got != "2021/02/15" {
		t.Errorf("Register date = %v, want 2021/02/15", got)
	}
}

func TestGetDataDict_QueryOverridesDefaults(t *testing.T) {
	src, _ := singleVisitSource()
	h := NewHandler(NewBuilder(src), Options{DateFormat: "2006/01/02"})

	rec := doDataDict(t, h, "/datadict?date_format=02.01.2006")

	var body struct {
		Rows []map[string]interface{} `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := body.Rows[0]["Register date"]; got != "15.02.2021" {
		t.Errorf("Register date = %v, want 15.02.2021", got)
	}
}

func TestGetDataDict_HTMLClassParam(t *testing.T) {
	src, _ := singleVisitSource()
	h := NewHandler(NewBuilder(src), Options{})

	rec := doDataDict(t, h, "/datadict?format=html&class=stats,table-striped")
	if !strings.Contains(rec.Body.String(), `<table class="stats table-striped">`) {
		t.Fatalf("class list not applied: %s", rec.Body.String()[:120])
	}

	rec = doDataDict(t, h, "/datadict?format=html")
	if !strings.Contains(rec.Body.String(), `<table class="report-table">`) {
		t.Fatal("default class missing")
	}
}
