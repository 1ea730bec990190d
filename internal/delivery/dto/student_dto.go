package dto

import (
	"github.com/shopspring/decimal"
)

type StudentResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	GuardianName  string          `json:"guardian_name"`
	GuardianPhone string          `json:"guardian_phone"`
	Course        string          `json:"course"`
	Batch         string          `json:"batch"`
	TotalFee      decimal.Decimal `json:"total_fee"`
	PaidFee       decimal.Decimal `json:"paid_fee"`
	DueFee        decimal.Decimal `json:"due_fee"`
	AdmissionDate string          `json:"admission_date"`
}

type FeeSummaryResponse struct {
	Total decimal.Decimal `json:"total"`
	Paid  decimal.Decimal `json:"paid"`
	Due   decimal.Decimal `json:"due"`
}

type StudentListResponse struct {
	Students   []StudentResponse   `json:"students"`
	FeeSummary FeeSummaryResponse  `json:"fee_summary"`
	Options    map[string][]string `json:"options"`
	Page       PageInfo            `json:"-"`
}
