package investigation

import (
	"time"

	"github.com/google/uuid"
)

// UndetectableViralLoad is the stored sentinel for a viral load below the
// assay's detection limit. It is a real favorable result and must never be
// treated as a missing value.
const UndetectableViralLoad = -1

// Investigation is one lab panel drawn on a date. Every result field is
// independently nullable; nil means the test was not performed.
type Investigation struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Date      time.Time `db:"date" json:"date"`

	// HIV monitoring
	ViralLoad   *float64 `db:"viral_load" json:"viral_load,omitempty"`
	AbsoluteCD4 *float64 `db:"absolute_cd4" json:"absolute_cd4,omitempty"`
	PercentCD4  *float64 `db:"percent_cd4" json:"percent_cd4,omitempty"`

	// complete blood count
	Hemoglobin     *float64 `db:"hemoglobin" json:"hemoglobin,omitempty"`
	Hematocrit     *float64 `db:"hematocrit" json:"hematocrit,omitempty"`
	WhiteBloodCell *float64 `db:"white_blood_cell" json:"white_blood_cell,omitempty"`
	NeutrophilsPct *float64 `db:"neutrophils_pct" json:"neutrophils_pct,omitempty"`
	EosinophilsPct *float64 `db:"eosinophils_pct" json:"eosinophils_pct,omitempty"`
	BasophilsPct   *float64 `db:"basophils_pct" json:"basophils_pct,omitempty"`
	LymphocytesPct *float64 `db:"lymphocytes_pct" json:"lymphocytes_pct,omitempty"`
	MonocytesPct   *float64 `db:"monocytes_pct" json:"monocytes_pct,omitempty"`

	// metabolic
	FBS           *float64 `db:"fbs" json:"fbs,omitempty"`
	HemoglobinA1c *float64 `db:"hemoglobin_a1c" json:"hemoglobin_a1c,omitempty"`
	Cholesterol   *float64 `db:"cholesterol" json:"cholesterol,omitempty"`
	Triglycerides *float64 `db:"triglycerides" json:"triglycerides,omitempty"`
	Creatinine    *float64 `db:"creatinine" json:"creatinine,omitempty"`
	EGFR          *float64 `db:"egfr" json:"egfr,omitempty"`
	AST           *float64 `db:"ast" json:"ast,omitempty"`
	ALT           *float64 `db:"alt" json:"alt,omitempty"`
	ALP           *float64 `db:"alp" json:"alp,omitempty"`
	Sodium        *float64 `db:"sodium" json:"sodium,omitempty"`
	Potassium     *float64 `db:"potassium" json:"potassium,omitempty"`
	Chloride      *float64 `db:"chloride" json:"chloride,omitempty"`
	Bicarbonate   *float64 `db:"bicarbonate" json:"bicarbonate,omitempty"`
	Phosphate     *float64 `db:"phosphate" json:"phosphate,omitempty"`

	// serology
	AntiHIV  *string  `db:"anti_hiv" json:"anti_hiv,omitempty"`
	HBsAg    *string  `db:"hbsag" json:"hbsag,omitempty"`
	AntiHBs  *string  `db:"anti_hbs" json:"anti_hbs,omitempty"`
	AntiHCV  *string  `db:"anti_hcv" json:"anti_hcv,omitempty"`
	TPHA     *string  `db:"tpha" json:"tpha,omitempty"`
	RPR      *int     `db:"rpr" json:"rpr,omitempty"`
	CryptoAg *string  `db:"crypto_ag" json:"crypto_ag,omitempty"`

	// TB workup
	AFB       *string  `db:"afb" json:"afb,omitempty"`
	GeneXpert *string  `db:"gene_xpert" json:"gene_xpert,omitempty"`
	TBCulture *string  `db:"tb_culture" json:"tb_culture,omitempty"`
	DST       *string  `db:"dst" json:"dst,omitempty"`
	LPA       *string  `db:"lpa" json:"lpa,omitempty"`
	TST       *float64 `db:"tst" json:"tst,omitempty"`

	ChestXRay *string `db:"chest_xray" json:"chest_xray,omitempty"`

	Imported  bool      `db:"imported" json:"imported"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsUndetectable reports whether the viral load result is the undetectable
// sentinel (as opposed to missing or a measured copy number).
func (inv *Investigation) IsUndetectable() bool {
	return inv.ViralLoad != nil && *inv.ViralLoad == UndetectableViralLoad
}
