package element

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/dbutil"

	"gorm.io/gorm"
)

//go:generate mockgen -source=element_repo.go -destination=mock/element_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, element *Element) error
	FindAll(ctx context.Context, kind string) ([]Element, error)
	FindByID(ctx context.Context, id string) (*Element, error)
	FindByIDs(ctx context.Context, ids []string) ([]Element, error)
	Update(ctx context.Context, element *Element) error
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

func (r *repository) Create(ctx context.Context, element *Element) error {
	return r.db.WithContext(ctx).Create(element).Error
}

func (r *repository) FindAll(ctx context.Context, kind string) ([]Element, error) {
	var elements []Element
	q := r.db.WithContext(ctx)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	err := q.Order("name ASC").Find(&elements).Error
	return elements, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Element, error) {
	var element Element
	err := r.db.WithContext(ctx).First(&element, "id = ?", id).Error
	return &element, err
}

// FindByIDs returns the rows that exist, in no particular order.
func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]Element, error) {
	var elements []Element
	if len(ids) == 0 {
		return elements, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&elements).Error
	return elements, err
}

func (r *repository) Update(ctx context.Context, element *Element) error {
	return r.db.WithContext(ctx).Save(element).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Element{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
