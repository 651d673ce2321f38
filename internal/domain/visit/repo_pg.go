package visit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hivcare/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type visitRepoPG struct{ pool *pgxpool.Pool }

func NewVisitRepoPG(pool *pgxpool.Pool) VisitRepository {
	return &visitRepoPG{pool: pool}
}

func (r *visitRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const visitCols = `id, patient_id, date, body_weight, contact_with_tb,
	art_adherence_scale, art_delayed_dosing, adherence_problem,
	impression, arv_medications, why_switching_arv,
	tb_medications, oi_medications, medications,
	imported, created_at, updated_at`

func (r *visitRepoPG) scanRow(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.PatientID, &v.Date, &v.BodyWeight, &v.ContactWithTB,
		&v.ARTAdherenceScale, &v.ARTDelayedDosing, &v.AdherenceProblem,
		&v.Impression, &v.ARVMedications, &v.WhySwitchingARV,
		&v.TBMedications, &v.OIMedications, &v.Medications,
		&v.Imported, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *visitRepoPG) Create(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit (id, patient_id, date, body_weight, contact_with_tb,
			art_adherence_scale, art_delayed_dosing, adherence_problem,
			impression, arv_medications, why_switching_arv,
			tb_medications, oi_medications, medications, imported)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		v.ID, v.PatientID, v.Date, v.BodyWeight, v.ContactWithTB,
		v.ARTAdherenceScale, v.ARTDelayedDosing, v.AdherenceProblem,
		v.Impression, v.ARVMedications, v.WhySwitchingARV,
		v.TBMedications, v.OIMedications, v.Medications, v.Imported)
	return err
}

func (r *visitRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+visitCols+` FROM visit WHERE id = $1`, id))
}

func (r *visitRepoPG) GetByPatientAndDate(ctx context.Context, patientID uuid.UUID, date time.Time) (*Visit, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx,
		`SELECT `+visitCols+` FROM visit WHERE patient_id = $1 AND date = $2`, patientID, date))
}

func (r *visitRepoPG) Update(ctx context.Context, v *Visit) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE visit SET date=$2, body_weight=$3, contact_with_tb=$4,
			art_adherence_scale=$5, art_delayed_dosing=$6, adherence_problem=$7,
			impression=$8, arv_medications=$9, why_switching_arv=$10,
			tb_medications=$11, oi_medications=$12, medications=$13, updated_at=NOW()
		WHERE id = $1`,
		v.ID, v.Date, v.BodyWeight, v.ContactWithTB,
		v.ARTAdherenceScale, v.ARTDelayedDosing, v.AdherenceProblem,
		v.Impression, v.ARVMedications, v.WhySwitchingARV,
		v.TBMedications, v.OIMedications, v.Medications)
	return err
}

func (r *visitRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM visit WHERE id = $1`, id)
	return err
}

func (r *visitRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Visit, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+visitCols+` FROM visit WHERE patient_id = $1 ORDER BY date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Visit
	for rows.Next() {
		v, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func (r *visitRepoPG) ListByDate(ctx context.Context, date time.Time, limit, offset int) ([]*Visit, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM visit WHERE date = $1`, date).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+visitCols+` FROM visit WHERE date = $1
		ORDER BY created_at ASC LIMIT $2 OFFSET $3`, date, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Visit
	for rows.Next() {
		v, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, nil
}
