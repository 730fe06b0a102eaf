package ledger

import (
	"context"
	"time"

	ledgererrors "go-payroll/internal/ledger/errors"
	"go-payroll/internal/paycalc"
	"go-payroll/internal/shared/dbutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentFinder looks up the active (non-cancelled) payment of an employee for one calendar month.
// It returns gorm.ErrRecordNotFound when there is none.
type PaymentFinder interface {
	FindPaymentForMonth(ctx context.Context, employeeID string, period paycalc.Period, excludeID string) (*Payment, error)
}

type DebtActionKind int

const (
	// CreateDebtOnly records the debt without touching any payment.
	CreateDebtOnly DebtActionKind = iota
	// ReduceExistingPayment records the debt and lowers the pending payment of the same month.
	ReduceExistingPayment
)

type DebtAction struct {
	Kind      DebtActionKind
	Payment   *Payment
	NewAmount decimal.Decimal
}

// ConsistencyGuard keeps payments and debts of one employee and month from contradicting each other.
// It must run inside the transaction that performs the write, after the employee row is locked.
type ConsistencyGuard struct {
	finder PaymentFinder
	logger *zap.Logger
}

func NewConsistencyGuard(finder PaymentFinder, logger *zap.Logger) *ConsistencyGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsistencyGuard{finder: finder, logger: logger}
}

// BeforeCreatePayment rejects a second active payment for the employee's calendar month.
func (g *ConsistencyGuard) BeforeCreatePayment(ctx context.Context, employeeID string, date time.Time) error {
	return g.checkActive(ctx, employeeID, date, "")
}

// BeforeUpdatePayment is BeforeCreatePayment for an existing payment, which never conflicts with itself.
func (g *ConsistencyGuard) BeforeUpdatePayment(ctx context.Context, paymentID, employeeID string, date time.Time) error {
	return g.checkActive(ctx, employeeID, date, paymentID)
}

// BeforeCreateDebt decides what recording a debt does to the payment of the same month.
// The decision is taken once; later payment changes do not revisit existing debts.
func (g *ConsistencyGuard) BeforeCreateDebt(ctx context.Context, employeeID string, amount decimal.Decimal, date time.Time) (DebtAction, error) {
	period := paycalc.PeriodOf(date)

	existing, err := g.finder.FindPaymentForMonth(ctx, employeeID, period, "")
	if err != nil {
		if dbutil.IsNotFound(err) {
			return DebtAction{Kind: CreateDebtOnly}, nil
		}
		return DebtAction{}, err
	}

	switch existing.Status {
	case StatusCompleted:
		g.logger.Info("debt rejected: payment already completed",
			zap.String("employee_id", employeeID),
			zap.String("period", period.Key()),
			zap.String("payment_id", existing.ID.String()),
		)
		return DebtAction{}, ledgererrors.ErrCompletedPaymentExists
	case StatusPending:
		return DebtAction{
			Kind:      ReduceExistingPayment,
			Payment:   existing,
			NewAmount: decimal.Max(decimal.Zero, existing.Amount.Sub(amount)),
		}, nil
	default:
		return DebtAction{Kind: CreateDebtOnly}, nil
	}
}

func (g *ConsistencyGuard) checkActive(ctx context.Context, employeeID string, date time.Time, excludeID string) error {
	period := paycalc.PeriodOf(date)

	existing, err := g.finder.FindPaymentForMonth(ctx, employeeID, period, excludeID)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil
		}
		return err
	}

	g.logger.Info("payment rejected: active payment exists",
		zap.String("employee_id", employeeID),
		zap.String("period", period.Key()),
		zap.String("existing_payment_id", existing.ID.String()),
	)
	return ledgererrors.ErrDuplicateActivePayment
}
