package datadict

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hivcare/clinic/internal/domain/patient"
)

// pgSource reads report inputs straight from the pool. Reports are
// non-transactional; each collection is one bounded query and concurrent
// writes may land between them.
type pgSource struct {
	pool     *pgxpool.Pool
	patients patient.PatientRepository
}

func NewPgSource(pool *pgxpool.Pool, patients patient.PatientRepository) Source {
	return &pgSource{pool: pool, patients: patients}
}

func (s *pgSource) Patients(ctx context.Context) ([]*patient.Patient, error) {
	const batch = 1000
	var all []*patient.Patient
	for offset := 0; ; offset += batch {
		items, _, err := s.patients.List(ctx, batch, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < batch {
			return all, nil
		}
	}
}

func (s *pgSource) VisitEvents(ctx context.Context, r DateRange) ([]VisitEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT patient_id, date, COALESCE(arv_medications, '{}'), COALESCE(impression, '{}')
		FROM visit
		WHERE ($1::date IS NULL OR date >= $1)
		  AND ($2::date IS NULL OR date <= $2)
		ORDER BY date ASC`, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []VisitEvent
	for rows.Next() {
		var v VisitEvent
		if err := rows.Scan(&v.PatientID, &v.Date, &v.ARVMedications, &v.Impression); err != nil {
			return nil, err
		}
		events = append(events, v)
	}
	return events, rows.Err()
}

func (s *pgSource) LabEvents(ctx context.Context, r DateRange) ([]LabEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT patient_id, date, viral_load, absolute_cd4, percent_cd4, anti_hiv
		FROM investigation
		WHERE ($1::date IS NULL OR date >= $1)
		  AND ($2::date IS NULL OR date <= $2)
		ORDER BY date ASC`, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []LabEvent
	for rows.Next() {
		var l LabEvent
		if err := rows.Scan(&l.PatientID, &l.Date, &l.ViralLoad, &l.AbsoluteCD4, &l.PercentCD4, &l.AntiHIV); err != nil {
			return nil, err
		}
		events = append(events, l)
	}
	return events, rows.Err()
}

func (s *pgSource) PartnerCounts(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT patient_id, COUNT(*) FROM partner GROUP BY patient_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
