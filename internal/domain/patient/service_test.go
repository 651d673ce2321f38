package patient

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockPatientRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockPatientRepo) GetByHN(_ context.Context, hn string) (*Patient, error) {
	for _, p := range m.patients {
		if p.HN == hn {
			return p, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.patients {
		items = append(items, p)
	}
	return items, len(items), nil
}

func (m *mockPatientRepo) Search(_ context.Context, keyword string, limit, offset int) ([]*Patient, int, error) {
	return m.List(nil, limit, offset)
}

func (m *mockPatientRepo) CountByField(_ context.Context, field, value string) (int, error) {
	if field != "hn" && field != "clinic_id" && field != "government_id" && field != "nap_id" {
		return 0, fmt.Errorf("field %q cannot be checked for uniqueness", field)
	}
	count := 0
	for _, p := range m.patients {
		switch field {
		case "hn":
			if p.HN == value {
				count++
			}
		case "clinic_id":
			if p.ClinicID != nil && *p.ClinicID == value {
				count++
			}
		}
	}
	return count, nil
}

type mockPartnerRepo struct {
	partners map[uuid.UUID]*Partner
}

func newMockPartnerRepo() *mockPartnerRepo {
	return &mockPartnerRepo{partners: make(map[uuid.UUID]*Partner)}
}

func (m *mockPartnerRepo) Create(_ context.Context, p *Partner) error {
	p.ID = uuid.New()
	m.partners[p.ID] = p
	return nil
}

func (m *mockPartnerRepo) GetByID(_ context.Context, id uuid.UUID) (*Partner, error) {
	p, ok := m.partners[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockPartnerRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Partner, error) {
	var items []*Partner
	for _, p := range m.partners {
		if p.PatientID == patientID {
			items = append(items, p)
		}
	}
	return items, nil
}

func (m *mockPartnerRepo) Update(_ context.Context, p *Partner) error {
	m.partners[p.ID] = p
	return nil
}

func (m *mockPartnerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.partners, id)
	return nil
}

func newTestService() (*Service, *mockPatientRepo, *mockPartnerRepo) {
	patients := newMockPatientRepo()
	partners := newMockPartnerRepo()
	return NewService(patients, partners), patients, partners
}

func validPatient() *Patient {
	return &Patient{
		HN:              "68/1234",
		Name:            "Somchai Jaidee",
		Sex:             "male",
		HealthInsurance: "30 baht scheme",
	}
}

func TestCreatePatient(t *testing.T) {
	svc, repo, _ := newTestService()

	p := validPatient()
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if len(repo.patients) != 1 {
		t.Fatalf("expected 1 patient stored, got %d", len(repo.patients))
	}
}

func TestCreatePatient_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*Patient)
	}{
		{"missing hn", func(p *Patient) { p.HN = "" }},
		{"missing name", func(p *Patient) { p.Name = "" }},
		{"invalid sex", func(p *Patient) { p.Sex = "unknown" }},
		{"missing insurance", func(p *Patient) { p.HealthInsurance = "" }},
		{"invalid status", func(p *Patient) { s := "vanished"; p.PatientStatus = &s }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient()
			tt.mutate(p)
			if err := svc.CreatePatient(context.Background(), p); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreatePatient_NormalizesBuddhistBirthYear(t *testing.T) {
	svc, _, _ := newTestService()

	p := validPatient()
	dob := time.Date(2530, 6, 15, 0, 0, 0, 0, time.UTC)
	p.DateOfBirth = &dob
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if got := p.DateOfBirth.Year(); got != 1987 {
		t.Fatalf("expected birth year 1987, got %d", got)
	}
}

func TestIsFieldValueTaken(t *testing.T) {
	svc, _, _ := newTestService()

	p := validPatient()
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}

	taken, err := svc.IsFieldValueTaken(context.Background(), "hn", "68/1234")
	if err != nil {
		t.Fatalf("IsFieldValueTaken: %v", err)
	}
	if !taken {
		t.Fatal("expected hn to be taken")
	}

	taken, err = svc.IsFieldValueTaken(context.Background(), "hn", "99/9999")
	if err != nil {
		t.Fatalf("IsFieldValueTaken: %v", err)
	}
	if taken {
		t.Fatal("expected hn to be free")
	}

	if _, err := svc.IsFieldValueTaken(context.Background(), "name", "x"); err == nil {
		t.Fatal("expected error for non-whitelisted field")
	}
}

func TestPartnerLifecycle(t *testing.T) {
	svc, _, partners := newTestService()

	patientID := uuid.New()
	p := &Partner{PatientID: patientID}
	if err := svc.CreatePartner(context.Background(), p); err != nil {
		t.Fatalf("CreatePartner: %v", err)
	}
	if err := svc.CreatePartner(context.Background(), &Partner{}); err == nil {
		t.Fatal("expected error for partner without patient id")
	}

	items, err := svc.ListPartners(context.Background(), patientID)
	if err != nil {
		t.Fatalf("ListPartners: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 partner, got %d", len(items))
	}

	if err := svc.DeletePartner(context.Background(), p.ID); err != nil {
		t.Fatalf("DeletePartner: %v", err)
	}
	if len(partners.partners) != 0 {
		t.Fatal("expected partner deleted")
	}
}
