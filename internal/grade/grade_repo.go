package grade

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/dbutil"

	"gorm.io/gorm"
)

//go:generate mockgen -source=grade_repo.go -destination=mock/grade_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, grade *Grade) error
	FindAll(ctx context.Context) ([]Grade, error)
	FindByID(ctx context.Context, id string) (*Grade, error)
	Update(ctx context.Context, grade *Grade) error
	Delete(ctx context.Context, id string) error
	CountEmployees(ctx context.Context, id string) (int64, error)
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

func (r *repository) Create(ctx context.Context, grade *Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Grade, error) {
	var grades []Grade
	err := r.db.WithContext(ctx).
		Order("label ASC").
		Find(&grades).Error
	return grades, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Grade, error) {
	var grade Grade
	err := r.db.WithContext(ctx).
		First(&grade, "id = ?", id).Error
	return &grade, err
}

func (r *repository) Update(ctx context.Context, grade *Grade) error {
	return r.db.WithContext(ctx).Save(grade).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Grade{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountEmployees(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("grade_id = ?", id).
		Count(&count).Error
	return count, err
}
