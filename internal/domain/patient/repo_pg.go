package patient

import (
	"context"
	"fmt"

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

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const patientCols = `id, clinic_id, hn, government_id, nap_id, name, date_of_birth,
	sex, gender, marital_status, nationality, occupation, education, address, cares,
	health_insurance, phone_numbers, relative_phone_numbers,
	referral_status, referred_from, patient_status, referred_out_to,
	risk_behaviors, imported, created_at, updated_at`

func (r *patientRepoPG) scanRow(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.ClinicID, &p.HN, &p.GovernmentID, &p.NAPID, &p.Name, &p.DateOfBirth,
		&p.Sex, &p.Gender, &p.MaritalStatus, &p.Nationality, &p.Occupation, &p.Education,
		&p.Address, &p.Cares, &p.HealthInsurance, &p.PhoneNumbers, &p.RelativePhoneNumbers,
		&p.ReferralStatus, &p.ReferredFrom, &p.PatientStatus, &p.ReferredOutTo,
		&p.RiskBehaviors, &p.Imported, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, clinic_id, hn, government_id, nap_id, name, date_of_birth,
			sex, gender, marital_status, nationality, occupation, education, address, cares,
			health_insurance, phone_numbers, relative_phone_numbers,
			referral_status, referred_from, patient_status, referred_out_to,
			risk_behaviors, imported)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`,
		p.ID, p.ClinicID, p.HN, p.GovernmentID, p.NAPID, p.Name, p.DateOfBirth,
		p.Sex, p.Gender, p.MaritalStatus, p.Nationality, p.Occupation, p.Education,
		p.Address, p.Cares, p.HealthInsurance, p.PhoneNumbers, p.RelativePhoneNumbers,
		p.ReferralStatus, p.ReferredFrom, p.PatientStatus, p.ReferredOutTo,
		p.RiskBehaviors, p.Imported)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *patientRepoPG) GetByHN(ctx context.Context, hn string) (*Patient, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE hn = $1`, hn))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET clinic_id=$2, hn=$3, government_id=$4, nap_id=$5, name=$6,
			date_of_birth=$7, sex=$8, gender=$9, marital_status=$10, nationality=$11,
			occupation=$12, education=$13, address=$14, cares=$15, health_insurance=$16,
			phone_numbers=$17, relative_phone_numbers=$18, referral_status=$19,
			referred_from=$20, patient_status=$21, referred_out_to=$22, risk_behaviors=$23,
			updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.ClinicID, p.HN, p.GovernmentID, p.NAPID, p.Name,
		p.DateOfBirth, p.Sex, p.Gender, p.MaritalStatus, p.Nationality,
		p.Occupation, p.Education, p.Address, p.Cares, p.HealthInsurance,
		p.PhoneNumbers, p.RelativePhoneNumbers, p.ReferralStatus, p.ReferredFrom,
		p.PatientStatus, p.ReferredOutTo, p.RiskBehaviors)
	return err
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+` FROM patient
		ORDER BY clinic_id ASC NULLS LAST, hn ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *patientRepoPG) Search(ctx context.Context, keyword string, limit, offset int) ([]*Patient, int, error) {
	pattern := "%" + keyword + "%"
	const where = `WHERE name ILIKE $1 OR hn ILIKE $1 OR clinic_id ILIKE $1 OR government_id ILIKE $1 OR nap_id ILIKE $1`

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient `+where, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+` FROM patient `+where+`
		ORDER BY clinic_id ASC NULLS LAST, hn ASC
		LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

// uniqueFields are the columns the uniqueness check endpoint may query.
// Column names are interpolated, so only whitelisted values are accepted.
var uniqueFields = map[string]string{
	"hn":            "hn",
	"clinic_id":     "clinic_id",
	"government_id": "government_id",
	"nap_id":        "nap_id",
}

func (r *patientRepoPG) CountByField(ctx context.Context, field, value string) (int, error) {
	col, ok := uniqueFields[field]
	if !ok {
		return 0, fmt.Errorf("field %q cannot be checked for uniqueness", field)
	}
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM patient WHERE %s = $1`, col), value).Scan(&count)
	return count, err
}
