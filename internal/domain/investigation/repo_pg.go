package investigation

import (
	"context"

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const invCols = `id, patient_id, date,
	viral_load, absolute_cd4, percent_cd4,
	hemoglobin, hematocrit, white_blood_cell,
	neutrophils_pct, eosinophils_pct, basophils_pct, lymphocytes_pct, monocytes_pct,
	fbs, hemoglobin_a1c, cholesterol, triglycerides, creatinine, egfr,
	ast, alt, alp, sodium, potassium, chloride, bicarbonate, phosphate,
	anti_hiv, hbsag, anti_hbs, anti_hcv, tpha, rpr, crypto_ag,
	afb, gene_xpert, tb_culture, dst, lpa, tst, chest_xray,
	imported, created_at, updated_at`

func (r *repoPG) scanRow(row pgx.Row) (*Investigation, error) {
	var inv Investigation
	err := row.Scan(&inv.ID, &inv.PatientID, &inv.Date,
		&inv.ViralLoad, &inv.AbsoluteCD4, &inv.PercentCD4,
		&inv.Hemoglobin, &inv.Hematocrit, &inv.WhiteBloodCell,
		&inv.NeutrophilsPct, &inv.EosinophilsPct, &inv.BasophilsPct, &inv.LymphocytesPct, &inv.MonocytesPct,
		&inv.FBS, &inv.HemoglobinA1c, &inv.Cholesterol, &inv.Triglycerides, &inv.Creatinine, &inv.EGFR,
		&inv.AST, &inv.ALT, &inv.ALP, &inv.Sodium, &inv.Potassium, &inv.Chloride, &inv.Bicarbonate, &inv.Phosphate,
		&inv.AntiHIV, &inv.HBsAg, &inv.AntiHBs, &inv.AntiHCV, &inv.TPHA, &inv.RPR, &inv.CryptoAg,
		&inv.AFB, &inv.GeneXpert, &inv.TBCulture, &inv.DST, &inv.LPA, &inv.TST, &inv.ChestXRay,
		&inv.Imported, &inv.CreatedAt, &inv.UpdatedAt)
	return &inv, err
}

func (r *repoPG) Create(ctx context.Context, inv *Investigation) error {
	inv.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO investigation (id, patient_id, date,
			viral_load, absolute_cd4, percent_cd4,
			hemoglobin, hematocrit, white_blood_cell,
			neutrophils_pct, eosinophils_pct, basophils_pct, lymphocytes_pct, monocytes_pct,
			fbs, hemoglobin_a1c, cholesterol, triglycerides, creatinine, egfr,
			ast, alt, alp, sodium, potassium, chloride, bicarbonate, phosphate,
			anti_hiv, hbsag, anti_hbs, anti_hcv, tpha, rpr, crypto_ag,
			afb, gene_xpert, tb_culture, dst, lpa, tst, chest_xray, imported)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37,$38,$39,$40,$41,$42,$43)`,
		inv.ID, inv.PatientID, inv.Date,
		inv.ViralLoad, inv.AbsoluteCD4, inv.PercentCD4,
		inv.Hemoglobin, inv.Hematocrit, inv.WhiteBloodCell,
		inv.NeutrophilsPct, inv.EosinophilsPct, inv.BasophilsPct, inv.LymphocytesPct, inv.MonocytesPct,
		inv.FBS, inv.HemoglobinA1c, inv.Cholesterol, inv.Triglycerides, inv.Creatinine, inv.EGFR,
		inv.AST, inv.ALT, inv.ALP, inv.Sodium, inv.Potassium, inv.Chloride, inv.Bicarbonate, inv.Phosphate,
		inv.AntiHIV, inv.HBsAg, inv.AntiHBs, inv.AntiHCV, inv.TPHA, inv.RPR, inv.CryptoAg,
		inv.AFB, inv.GeneXpert, inv.TBCulture, inv.DST, inv.LPA, inv.TST, inv.ChestXRay, inv.Imported)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Investigation, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+invCols+` FROM investigation WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, inv *Investigation) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE investigation SET date=$2,
			viral_load=$3, absolute_cd4=$4, percent_cd4=$5,
			hemoglobin=$6, hematocrit=$7, white_blood_cell=$8,
			neutrophils_pct=$9, eosinophils_pct=$10, basophils_pct=$11, lymphocytes_pct=$12, monocytes_pct=$13,
			fbs=$14, hemoglobin_a1c=$15, cholesterol=$16, triglycerides=$17, creatinine=$18, egfr=$19,
			ast=$20, alt=$21, alp=$22, sodium=$23, potassium=$24, chloride=$25, bicarbonate=$26, phosphate=$27,
			anti_hiv=$28, hbsag=$29, anti_hbs=$30, anti_hcv=$31, tpha=$32, rpr=$33, crypto_ag=$34,
			afb=$35, gene_xpert=$36, tb_culture=$37, dst=$38, lpa=$39, tst=$40, chest_xray=$41,
			updated_at=NOW()
		WHERE id = $1`,
		inv.ID, inv.Date,
		inv.ViralLoad, inv.AbsoluteCD4, inv.PercentCD4,
		inv.Hemoglobin, inv.Hematocrit, inv.WhiteBloodCell,
		inv.NeutrophilsPct, inv.EosinophilsPct, inv.BasophilsPct, inv.LymphocytesPct, inv.MonocytesPct,
		inv.FBS, inv.HemoglobinA1c, inv.Cholesterol, inv.Triglycerides, inv.Creatinine, inv.EGFR,
		inv.AST, inv.ALT, inv.ALP, inv.Sodium, inv.Potassium, inv.Chloride, inv.Bicarbonate, inv.Phosphate,
		inv.AntiHIV, inv.HBsAg, inv.AntiHBs, inv.AntiHCV, inv.TPHA, inv.RPR, inv.CryptoAg,
		inv.AFB, inv.GeneXpert, inv.TBCulture, inv.DST, inv.LPA, inv.TST, inv.ChestXRay)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM investigation WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Investigation, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+invCols+` FROM investigation WHERE patient_id = $1 ORDER BY date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Investigation
	for rows.Next() {
		inv, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, inv)
	}
	return items, nil
}
