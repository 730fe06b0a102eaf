package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/shared/dbutil"

	"gorm.io/gorm"
)

type PayslipFilter struct {
	EmployeeID string
	Month      int
	Year       int
	Status     string
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	Source
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, payslip *Payslip) error
	FindAll(ctx context.Context, filter PayslipFilter) ([]Payslip, error)
	FindByID(ctx context.Context, id string) (*Payslip, error)
	LockByID(ctx context.Context, id string) (*Payslip, error)
	UpdatePayment(ctx context.Context, id string, method string, paidAt time.Time) error
	UpdatePDFPath(ctx context.Context, id string, path string) error
	Delete(ctx context.Context, id string) error
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

// FindEmployee locks the employee row when running inside a transaction.
func (r *repository) FindEmployee(ctx context.Context, id string) (*PayrollEmployee, error) {
	var employee PayrollEmployee
	err := dbutil.ForUpdate(r.db.WithContext(ctx)).First(&employee, "id = ?", id).Error
	return &employee, err
}

func (r *repository) FindGrade(ctx context.Context, id string) (*PayrollGrade, error) {
	var grade PayrollGrade
	err := r.db.WithContext(ctx).First(&grade, "id = ?", id).Error
	return &grade, err
}

func (r *repository) FindWorkplace(ctx context.Context, id string) (*PayrollWorkplace, error) {
	var workplace PayrollWorkplace
	err := r.db.WithContext(ctx).First(&workplace, "id = ?", id).Error
	return &workplace, err
}

func (r *repository) FindElements(ctx context.Context, ids []string) ([]PayrollElement, error) {
	var elements []PayrollElement
	if len(ids) == 0 {
		return elements, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&elements).Error
	return elements, err
}

func (r *repository) Create(ctx context.Context, payslip *Payslip) error {
	return r.db.WithContext(ctx).Create(payslip).Error
}

func (r *repository) FindAll(ctx context.Context, filter PayslipFilter) ([]Payslip, error) {
	q := r.db.WithContext(ctx)
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Month != 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var payslips []Payslip
	err := q.Order("period_key DESC").Order("generated_at DESC").Find(&payslips).Error
	return payslips, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payslip, error) {
	var payslip Payslip
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&payslip, "id = ?", id).Error
	return &payslip, err
}

func (r *repository) LockByID(ctx context.Context, id string) (*Payslip, error) {
	var payslip Payslip
	err := dbutil.ForUpdate(r.db.WithContext(ctx)).First(&payslip, "id = ?", id).Error
	return &payslip, err
}

func (r *repository) UpdatePayment(ctx context.Context, id string, method string, paidAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Payslip{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         StatusPaid,
			"payment_method": method,
			"paid_at":        paidAt,
		}).Error
}

func (r *repository) UpdatePDFPath(ctx context.Context, id string, path string) error {
	return r.db.WithContext(ctx).
		Model(&Payslip{}).
		Where("id = ?", id).
		Update("pdf_path", path).Error
}

// Delete removes the payslip together with its lines.
func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("payslip_id = ?", id).Delete(&PayslipLine{}).Error; err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&Payslip{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
