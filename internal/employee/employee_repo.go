package employee

import (
	"context"
	"database/sql"
	"strings"

	"go-payroll/internal/shared/dbutil"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, employee *Employee) error
	FindAll(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id string) error
	GradeExists(ctx context.Context, gradeID string) (bool, error)
	WorkplaceExists(ctx context.Context, workplaceID string) (bool, error)
	CountPayslips(ctx context.Context, id string) (int64, error)
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

func (r *repository) Create(ctx context.Context, employee *Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *repository) FindAll(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error) {
	q := r.db.WithContext(ctx).Model(&Employee{})

	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(matricule) LIKE ?",
			like, like, like,
		)
	}
	if filter.WorkplaceID != "" {
		q = q.Where("workplace_id = ?", filter.WorkplaceID)
	}
	if filter.GradeID != "" {
		q = q.Where("grade_id = ?", filter.GradeID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []Employee
	err := q.Order("last_name ASC, first_name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&employees).Error
	return employees, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var employee Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error
	return &employee, err
}

func (r *repository) Update(ctx context.Context, employee *Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) GradeExists(ctx context.Context, gradeID string) (bool, error) {
	return r.exists(ctx, "grades", gradeID)
}

func (r *repository) WorkplaceExists(ctx context.Context, workplaceID string) (bool, error) {
	return r.exists(ctx, "workplaces", workplaceID)
}

func (r *repository) CountPayslips(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("payslips").
		Where("employee_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repository) exists(ctx context.Context, table, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(table).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
