package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type pgSource struct {
	pool *pgxpool.Pool
}

func NewPgSource(pool *pgxpool.Pool) Source {
	return &pgSource{pool: pool}
}

func (s *pgSource) Patients(ctx context.Context) ([]PatientRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, clinic_id, hn, name, date_of_birth, sex, gender,
		       nationality, COALESCE(health_insurance, ''),
		       referral_status, referred_from
		FROM patient`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PatientRecord
	for rows.Next() {
		var p PatientRecord
		if err := rows.Scan(&p.ID, &p.ClinicID, &p.HN, &p.Name, &p.DateOfBirth,
			&p.Sex, &p.Gender, &p.Nationality, &p.HealthInsurance,
			&p.ReferralStatus, &p.ReferredFrom); err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

func (s *pgSource) Visits(ctx context.Context) ([]VisitRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT patient_id, date FROM visit`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []VisitRecord
	for rows.Next() {
		var v VisitRecord
		if err := rows.Scan(&v.PatientID, &v.Date); err != nil {
			return nil, err
		}
		records = append(records, v)
	}
	return records, rows.Err()
}

func (s *pgSource) Labs(ctx context.Context) ([]LabRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT patient_id, date, viral_load, absolute_cd4 FROM investigation`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []LabRecord
	for rows.Next() {
		var l LabRecord
		if err := rows.Scan(&l.PatientID, &l.Date, &l.ViralLoad, &l.AbsoluteCD4); err != nil {
			return nil, err
		}
		records = append(records, l)
	}
	return records, rows.Err()
}
