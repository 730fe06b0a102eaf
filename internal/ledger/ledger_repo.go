package ledger

import (
	"context"
	"database/sql"

	"go-payroll/internal/paycalc"
	"go-payroll/internal/shared/dbutil"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	PaymentFinder
	WithTx(tx *sql.Tx) Repository
	LockEmployee(ctx context.Context, id string) (*LedgerEmployee, error)
	FindEmployees(ctx context.Context, ids []string) ([]LedgerEmployee, error)
	CreatePayment(ctx context.Context, payment *Payment) error
	FindPayments(ctx context.Context, filter PaymentFilter) ([]Payment, error)
	FindPaymentByID(ctx context.Context, id string) (*Payment, error)
	UpdatePayment(ctx context.Context, payment *Payment) error
	UpdatePaymentAmount(ctx context.Context, id string, amount decimal.Decimal) error
	DeletePayment(ctx context.Context, id string) error
	CreateDebt(ctx context.Context, debt *Debt) error
	FindDebts(ctx context.Context, filter DebtFilter) ([]Debt, error)
	DeleteDebt(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbutil.BindTx(r.db, tx)}
}

// LockEmployee serialises ledger writes for one employee.
func (r *repository) LockEmployee(ctx context.Context, id string) (*LedgerEmployee, error) {
	var employee LedgerEmployee
	err := dbutil.ForUpdate(r.db.WithContext(ctx)).First(&employee, "id = ?", id).Error
	return &employee, err
}

func (r *repository) FindEmployees(ctx context.Context, ids []string) ([]LedgerEmployee, error) {
	var employees []LedgerEmployee
	if len(ids) == 0 {
		return employees, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&employees).Error
	return employees, err
}

// FindPaymentForMonth returns the oldest non-cancelled payment of the employee in period,
// ignoring excludeID when set.
func (r *repository) FindPaymentForMonth(ctx context.Context, employeeID string, period paycalc.Period, excludeID string) (*Payment, error) {
	q := dbutil.ForUpdate(r.db.WithContext(ctx)).
		Where("employee_id = ? AND period_key = ? AND status <> ?", employeeID, period.Key(), StatusCancelled)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var payment Payment
	err := q.Order("created_at ASC").First(&payment).Error
	return &payment, err
}

func (r *repository) CreatePayment(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) FindPayments(ctx context.Context, filter PaymentFilter) ([]Payment, error) {
	q := r.db.WithContext(ctx)
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.PeriodKey != "" {
		q = q.Where("period_key = ?", filter.PeriodKey)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var payments []Payment
	err := q.Order("payment_date DESC").Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *repository) FindPaymentByID(ctx context.Context, id string) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	return &payment, err
}

func (r *repository) UpdatePayment(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *repository) UpdatePaymentAmount(ctx context.Context, id string, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&Payment{}).
		Where("id = ?", id).
		Update("amount", amount).Error
}

func (r *repository) DeletePayment(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Payment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateDebt(ctx context.Context, debt *Debt) error {
	return r.db.WithContext(ctx).Create(debt).Error
}

func (r *repository) FindDebts(ctx context.Context, filter DebtFilter) ([]Debt, error) {
	q := r.db.WithContext(ctx)
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.PeriodKey != "" {
		q = q.Where("period_key = ?", filter.PeriodKey)
	}

	var debts []Debt
	err := q.Order("debt_date DESC").Order("created_at DESC").Find(&debts).Error
	return debts, err
}

func (r *repository) DeleteDebt(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Debt{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
