package stats

import "strings"

// Simplified healthcare scheme buckets. The raw health_insurance strings
// come from the hospital information system in Thai and are collapsed into
// the four categories the dashboard reports.
const (
	SchemePay = "pay"
	SchemeUC  = "uc"
	SchemeSSS = "sss"
	SchemeGov = "gov"
)

// ClassifyScheme maps a raw health insurance string to its simplified
// bucket. Self-pay and stateless statuses count as pay, civil servant
// reimbursement as gov, social security as sss, everything else as the
// universal coverage scheme.
func ClassifyScheme(insurance string) string {
	switch {
	case insurance == "ชำระเงินเอง" || insurance == "สถานะคนต่างด้าว":
		return SchemePay
	case strings.Contains(insurance, "สิทธิเบิกกรมบัญชีกลาง"):
		return SchemeGov
	case strings.Contains(insurance, "สิทธิประกันสังคม"):
		return SchemeSSS
	default:
		return SchemeUC
	}
}

type SchemeCounts struct {
	Pay int `json:"pay"`
	UC  int `json:"uc"`
	SSS int `json:"sss"`
	Gov int `json:"gov"`
}

// CountSchemes tallies the simplified scheme of every clinic-registered
// patient.
func CountSchemes(patients []PatientRecord) SchemeCounts {
	var c SchemeCounts
	for _, p := range patients {
		if !p.Registered() {
			continue
		}
		switch ClassifyScheme(p.HealthInsurance) {
		case SchemePay:
			c.Pay++
		case SchemeGov:
			c.Gov++
		case SchemeSSS:
			c.SSS++
		default:
			c.UC++
		}
	}
	return c
}
