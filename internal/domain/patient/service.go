package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hivcare/clinic/internal/platform/thaidate"
)

type Service struct {
	patients PatientRepository
	partners PartnerRepository
}

func NewService(patients PatientRepository, partners PartnerRepository) *Service {
	return &Service{patients: patients, partners: partners}
}

var validSexes = map[string]bool{
	"male": true, "female": true,
}

var validStatuses = map[string]bool{
	"active": true, "transferred": true, "lost to follow-up": true, "deceased": true,
}

func (s *Service) validate(p *Patient) error {
	if p.HN == "" {
		return fmt.Errorf("hn is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !validSexes[p.Sex] {
		return fmt.Errorf("invalid sex: %s", p.Sex)
	}
	if p.HealthInsurance == "" {
		return fmt.Errorf("health insurance is required")
	}
	if p.PatientStatus != nil && !validStatuses[*p.PatientStatus] {
		return fmt.Errorf("invalid patient status: %s", *p.PatientStatus)
	}
	if p.DateOfBirth != nil {
		// Imported records sometimes carry Buddhist-era birth years.
		normalized := thaidate.Normalize(*p.DateOfBirth)
		p.DateOfBirth = &normalized
	}
	return nil
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetPatientByHN(ctx context.Context, hn string) (*Patient, error) {
	return s.patients.GetByHN(ctx, hn)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, keyword string, limit, offset int) ([]*Patient, int, error) {
	if keyword != "" {
		return s.patients.Search(ctx, keyword, limit, offset)
	}
	return s.patients.List(ctx, limit, offset)
}

// IsFieldValueTaken reports whether another patient already holds the given
// identifier value. Used by registration forms to check before submit.
func (s *Service) IsFieldValueTaken(ctx context.Context, field, value string) (bool, error) {
	if value == "" {
		return false, fmt.Errorf("value is required")
	}
	count, err := s.patients.CountByField(ctx, field, value)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) CreatePartner(ctx context.Context, p *Partner) error {
	if p.PatientID == uuid.Nil {
		return fmt.Errorf("patient id is required")
	}
	return s.partners.Create(ctx, p)
}

func (s *Service) ListPartners(ctx context.Context, patientID uuid.UUID) ([]*Partner, error) {
	return s.partners.ListByPatient(ctx, patientID)
}

func (s *Service) UpdatePartner(ctx context.Context, p *Partner) error {
	return s.partners.Update(ctx, p)
}

func (s *Service) DeletePartner(ctx context.Context, id uuid.UUID) error {
	return s.partners.Delete(ctx, id)
}
