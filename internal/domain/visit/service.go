package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hivcare/clinic/internal/platform/thaidate"
)

type Service struct {
	visits       VisitRepository
	appointments AppointmentRepository
}

func NewService(visits VisitRepository, appointments AppointmentRepository) *Service {
	return &Service{visits: visits, appointments: appointments}
}

func (s *Service) validate(v *Visit) error {
	if v.PatientID == uuid.Nil {
		return fmt.Errorf("patient id is required")
	}
	if v.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	v.Date = truncateToDay(thaidate.Normalize(v.Date))
	if v.BodyWeight != nil && *v.BodyWeight <= 0 {
		return fmt.Errorf("body weight must be positive")
	}
	return nil
}

// CreateVisit records an encounter. A patient has at most one visit per day;
// a second submission for the same day is rejected so the caller can merge.
func (s *Service) CreateVisit(ctx context.Context, v *Visit) error {
	if err := s.validate(v); err != nil {
		return err
	}
	if existing, err := s.visits.GetByPatientAndDate(ctx, v.PatientID, v.Date); err == nil && existing != nil {
		return fmt.Errorf("visit already recorded for %s", v.Date.Format("2006-01-02"))
	}
	return s.visits.Create(ctx, v)
}

func (s *Service) GetVisit(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.visits.GetByID(ctx, id)
}

func (s *Service) UpdateVisit(ctx context.Context, v *Visit) error {
	if err := s.validate(v); err != nil {
		return err
	}
	return s.visits.Update(ctx, v)
}

func (s *Service) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	return s.visits.Delete(ctx, id)
}

func (s *Service) ListVisitsByPatient(ctx context.Context, patientID uuid.UUID) ([]*Visit, error) {
	return s.visits.ListByPatient(ctx, patientID)
}

func (s *Service) ListVisitsByDate(ctx context.Context, date time.Time, limit, offset int) ([]*Visit, int, error) {
	return s.visits.ListByDate(ctx, truncateToDay(date), limit, offset)
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient id is required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if a.AppointmentFor == "" {
		return fmt.Errorf("appointment reason is required")
	}
	a.Date = truncateToDay(thaidate.Normalize(a.Date))
	return s.appointments.Create(ctx, a)
}

func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	if a.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	a.Date = truncateToDay(thaidate.Normalize(a.Date))
	return s.appointments.Update(ctx, a)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) ListAppointmentsByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	return s.appointments.ListByPatient(ctx, patientID)
}

func (s *Service) ListAppointmentsByDate(ctx context.Context, date time.Time, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByDate(ctx, truncateToDay(date), limit, offset)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
