package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hivcare/clinic/internal/platform/db"
)

type partnerRepoPG struct{ pool *pgxpool.Pool }

func NewPartnerRepoPG(pool *pgxpool.Pool) PartnerRepository {
	return &partnerRepoPG{pool: pool}
}

func (r *partnerRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const partnerCols = `id, patient_id, deceased, sex, gender, hiv_status,
	status_disclosure, treatment_or_prevention, clinic_attend, hn,
	created_at, updated_at`

func (r *partnerRepoPG) scanRow(row pgx.Row) (*Partner, error) {
	var p Partner
	err := row.Scan(&p.ID, &p.PatientID, &p.Deceased, &p.Sex, &p.Gender, &p.HIVStatus,
		&p.StatusDisclosure, &p.TreatmentOrPrevention, &p.ClinicAttend, &p.HN,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *partnerRepoPG) Create(ctx context.Context, p *Partner) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO partner (id, patient_id, deceased, sex, gender, hiv_status,
			status_disclosure, treatment_or_prevention, clinic_attend, hn)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.PatientID, p.Deceased, p.Sex, p.Gender, p.HIVStatus,
		p.StatusDisclosure, p.TreatmentOrPrevention, p.ClinicAttend, p.HN)
	return err
}

func (r *partnerRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Partner, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+partnerCols+` FROM partner WHERE id = $1`, id))
}

func (r *partnerRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Partner, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+partnerCols+` FROM partner WHERE patient_id = $1 ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Partner
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

func (r *partnerRepoPG) Update(ctx context.Context, p *Partner) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE partner SET deceased=$2, sex=$3, gender=$4, hiv_status=$5,
			status_disclosure=$6, treatment_or_prevention=$7, clinic_attend=$8, hn=$9,
			updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Deceased, p.Sex, p.Gender, p.HIVStatus,
		p.StatusDisclosure, p.TreatmentOrPrevention, p.ClinicAttend, p.HN)
	return err
}

func (r *partnerRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM partner WHERE id = $1`, id)
	return err
}
