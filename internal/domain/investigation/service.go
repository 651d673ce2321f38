package investigation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hivcare/clinic/internal/platform/thaidate"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var validSerology = map[string]bool{
	"Positive": true, "Negative": true, "Inconclusive": true,
}

func (s *Service) validate(inv *Investigation) error {
	if inv.PatientID == uuid.Nil {
		return fmt.Errorf("patient id is required")
	}
	if inv.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	inv.Date = thaidate.Normalize(inv.Date)
	if inv.ViralLoad != nil && *inv.ViralLoad < 0 && *inv.ViralLoad != UndetectableViralLoad {
		return fmt.Errorf("viral load must be non-negative or the undetectable sentinel")
	}
	if inv.AbsoluteCD4 != nil && *inv.AbsoluteCD4 < 0 {
		return fmt.Errorf("absolute CD4 must be non-negative")
	}
	if inv.PercentCD4 != nil && (*inv.PercentCD4 < 0 || *inv.PercentCD4 > 100) {
		return fmt.Errorf("percent CD4 must be between 0 and 100")
	}
	if inv.AntiHIV != nil && !validSerology[*inv.AntiHIV] {
		return fmt.Errorf("invalid anti-HIV result: %s", *inv.AntiHIV)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, inv *Investigation) error {
	if err := s.validate(inv); err != nil {
		return err
	}
	return s.repo.Create(ctx, inv)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Investigation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, inv *Investigation) error {
	if err := s.validate(inv); err != nil {
		return err
	}
	return s.repo.Update(ctx, inv)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Investigation, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
