package ledger

import "github.com/shopspring/decimal"

type CreatePaymentRequest struct {
	EmployeeID  string           `json:"employee_id" binding:"required,uuid"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate string           `json:"payment_date" binding:"required"`
	Status      string           `json:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
}

type UpdatePaymentRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	PaymentDate *string          `json:"payment_date"`
	Status      *string          `json:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
}

type ListPaymentsRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Period     string `form:"period" binding:"omitempty,len=7"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
}

type CreateDebtRequest struct {
	EmployeeID string           `json:"employee_id" binding:"required,uuid"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	DebtDate   string           `json:"debt_date"`
	Reason     string           `json:"reason" binding:"max=500"`
}

type ListDebtsRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Period     string `form:"period" binding:"omitempty,len=7"`
}

type PaymentFilter struct {
	EmployeeID string
	PeriodKey  string
	Status     string
}

type DebtFilter struct {
	EmployeeID string
	PeriodKey  string
}

type PaymentResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	PeriodKey   string          `json:"period_key"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type DebtResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	DebtDate   string          `json:"debt_date"`
	PeriodKey  string          `json:"period_key"`
	Reason     string          `json:"reason"`
	PaymentID  string          `json:"payment_id,omitempty"`
	CreatedAt  string          `json:"created_at"`
	// ReducedPayment is the pending payment after the debt was offset against it.
	ReducedPayment *PaymentResponse `json:"reduced_payment,omitempty"`
}
