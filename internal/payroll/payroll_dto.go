package payroll

import "github.com/shopspring/decimal"

type GeneratePayslipRequest struct {
	EmployeeID string   `json:"employee_id" binding:"required,uuid"`
	Month      int      `json:"month"`
	Year       int      `json:"year"`
	ElementIDs []string `json:"element_ids"`
}

type MarkPaidRequest struct {
	PaymentMethod string  `json:"payment_method" binding:"required,max=50"`
	PaidAt        *string `json:"paid_at"`
}

type ListPayslipsRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Month      int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year       int    `form:"year"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING PAID"`
}

type PayslipLineResponse struct {
	ElementID   string          `json:"element_id,omitempty"`
	Kind        string          `json:"kind"`
	Position    int             `json:"position"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type PayslipResponse struct {
	ID              string                `json:"id"`
	EmployeeID      string                `json:"employee_id"`
	Month           int                   `json:"month"`
	Year            int                   `json:"year"`
	PeriodKey       string                `json:"period_key"`
	BaseSalary      decimal.Decimal       `json:"base_salary"`
	TotalGains      decimal.Decimal       `json:"total_gains"`
	Gross           decimal.Decimal       `json:"gross"`
	Contribution    decimal.Decimal       `json:"contribution"`
	Tax             decimal.Decimal       `json:"tax"`
	TotalDeductions decimal.Decimal       `json:"total_deductions"`
	Net             decimal.Decimal       `json:"net"`
	Zone            string                `json:"zone"`
	Status          string                `json:"status"`
	PaymentMethod   *string               `json:"payment_method,omitempty"`
	PaidAt          *string               `json:"paid_at,omitempty"`
	PDFPath         *string               `json:"pdf_path,omitempty"`
	GeneratedAt     string                `json:"generated_at"`
	Lines           []PayslipLineResponse `json:"lines,omitempty"`
	Warnings        []string              `json:"warnings,omitempty"`
}

// Breakdown explains how the payslip totals were reached.
type Breakdown struct {
	PeriodKey       string                `json:"period_key"`
	Zone            string                `json:"zone"`
	ZoneMultiplier  decimal.Decimal       `json:"zone_multiplier"`
	BaseSalary      decimal.Decimal       `json:"base_salary"`
	TotalGains      decimal.Decimal       `json:"total_gains"`
	Gross           decimal.Decimal       `json:"gross"`
	AnnualizedGross decimal.Decimal       `json:"annualized_gross"`
	Contribution    decimal.Decimal       `json:"contribution"`
	Tax             decimal.Decimal       `json:"tax"`
	OtherDeductions decimal.Decimal       `json:"other_deductions"`
	TotalDeductions decimal.Decimal       `json:"total_deductions"`
	Net             decimal.Decimal       `json:"net"`
	Lines           []PayslipLineResponse `json:"lines"`
	Warnings        []string              `json:"warnings"`
}
