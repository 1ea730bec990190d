package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Student is an admitted student as returned by GET /admin/students
type Student struct {
	ID            string          `json:"_id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	GuardianName  string          `json:"guardianName"`
	GuardianPhone string          `json:"guardianPhone"`
	Course        string          `json:"course"`
	Batch         string          `json:"batch"`
	TotalFee      decimal.Decimal `json:"totalFee"`
	PaidFee       decimal.Decimal `json:"paidFee"`
	AdmissionDate string          `json:"admissionDate"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// DueFee is the outstanding amount, never negative
func (s *Student) DueFee() decimal.Decimal {
	due := s.TotalFee.Sub(s.PaidFee)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// FeeSummary totals the fee columns of a set of students
type FeeSummary struct {
	Total decimal.Decimal
	Paid  decimal.Decimal
	Due   decimal.Decimal
}

func SummarizeFees(students []Student) FeeSummary {
	summary := FeeSummary{Total: decimal.Zero, Paid: decimal.Zero, Due: decimal.Zero}
	for i := range students {
		summary.Total = summary.Total.Add(students[i].TotalFee)
		summary.Paid = summary.Paid.Add(students[i].PaidFee)
		summary.Due = summary.Due.Add(students[i].DueFee())
	}
	return summary
}
