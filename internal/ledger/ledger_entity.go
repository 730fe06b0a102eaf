package ledger

import (
	"strings"
	"time"

	ledgererrors "go-payroll/internal/ledger/errors"
	"go-payroll/internal/paycalc"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// ActivePaymentConstraint backs the one-active-payment-per-month rule at the database level.
const ActivePaymentConstraint = "uq_payments_employee_period_active"

const dateLayout = "2006-01-02"

type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payments_employee_period_active,where:status <> 'CANCELLED'"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentDate time.Time       `gorm:"type:date;not null"`
	PeriodKey   string          `gorm:"size:7;not null;index;uniqueIndex:uq_payments_employee_period_active"`
	Status      string          `gorm:"size:20;not null;default:PENDING"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (p Payment) Period() paycalc.Period {
	return paycalc.PeriodOf(p.PaymentDate)
}

func (p Payment) Active() bool {
	return p.Status != StatusCancelled
}

func (p Payment) Validate() error {
	if p.Amount.IsNegative() {
		return ledgererrors.ErrInvalidAmount
	}
	return validateStatus(p.Status)
}

type Debt struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DebtDate   time.Time       `gorm:"type:date;not null"`
	PeriodKey  string          `gorm:"size:7;not null;index"`
	Reason     string          `gorm:"type:text"`
	// PaymentID is the pending payment this debt reduced when it was recorded.
	PaymentID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

// LedgerEmployee is the slice of the employees table the ledger locks and prints.
type LedgerEmployee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Matricule string
	FirstName string
	LastName  string
}

func (LedgerEmployee) TableName() string { return "employees" }

func (e LedgerEmployee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// PaymentPatch carries the fields of a partial update; nil means unchanged.
type PaymentPatch struct {
	Amount      *decimal.Decimal
	PaymentDate *time.Time
	Status      *string
}

// Apply merges p into payment, keeps the period key in step with the date and re-validates.
func (p PaymentPatch) Apply(payment *Payment) error {
	next := *payment
	if p.Amount != nil {
		next.Amount = *p.Amount
	}
	if p.PaymentDate != nil {
		next.PaymentDate = *p.PaymentDate
		next.PeriodKey = paycalc.PeriodOf(*p.PaymentDate).Key()
	}
	if p.Status != nil {
		next.Status = strings.ToUpper(strings.TrimSpace(*p.Status))
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*payment = next
	return nil
}

// movesActivePayment reports whether applying p can collide with another active payment.
func (p PaymentPatch) movesActivePayment() bool {
	return p.PaymentDate != nil || p.Status != nil
}

func validateStatus(status string) error {
	switch status {
	case StatusPending, StatusCompleted, StatusCancelled:
		return nil
	default:
		return ledgererrors.ErrInvalidStatus
	}
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ledgererrors.ErrInvalidDate
	}
	return t, nil
}
