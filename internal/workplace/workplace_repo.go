package workplace

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/dbutil"

	"gorm.io/gorm"
)

//go:generate mockgen -source=workplace_repo.go -destination=mock/workplace_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, workplace *Workplace) error
	FindAll(ctx context.Context, zone string) ([]Workplace, error)
	FindByID(ctx context.Context, id string) (*Workplace, error)
	Update(ctx context.Context, workplace *Workplace) error
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

func (r *repository) Create(ctx context.Context, workplace *Workplace) error {
	return r.db.WithContext(ctx).Create(workplace).Error
}

func (r *repository) FindAll(ctx context.Context, zone string) ([]Workplace, error) {
	var workplaces []Workplace
	q := r.db.WithContext(ctx)
	if zone != "" {
		q = q.Where("zone = ?", zone)
	}
	err := q.Order("name ASC").Find(&workplaces).Error
	return workplaces, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Workplace, error) {
	var workplace Workplace
	err := r.db.WithContext(ctx).First(&workplace, "id = ?", id).Error
	return &workplace, err
}

func (r *repository) Update(ctx context.Context, workplace *Workplace) error {
	return r.db.WithContext(ctx).Save(workplace).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Workplace{}, "id = ?", id)
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
		Where("workplace_id = ?", id).
		Count(&count).Error
	return count, err
}
