package grade

import (
	"strings"
	"time"

	gradeerrors "go-payroll/internal/grade/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const LabelConstraint = "uq_grades_label"

type Grade struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Label       string          `gorm:"size:100;not null;uniqueIndex:uq_grades_label"`
	BaseSalary  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (g Grade) Validate() error {
	if strings.TrimSpace(g.Label) == "" {
		return gradeerrors.ErrLabelRequired
	}
	if g.BaseSalary.IsNegative() {
		return gradeerrors.ErrInvalidBaseSalary
	}
	return nil
}

// GradePatch carries the fields of a partial update; nil means unchanged.
type GradePatch struct {
	Label       *string
	BaseSalary  *decimal.Decimal
	Description *string
}

// Apply merges p into g and re-validates. g is left untouched on error.
func (p GradePatch) Apply(g *Grade) error {
	next := *g
	if p.Label != nil {
		next.Label = strings.TrimSpace(*p.Label)
	}
	if p.BaseSalary != nil {
		next.BaseSalary = *p.BaseSalary
	}
	if p.Description != nil {
		next.Description = *p.Description
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*g = next
	return nil
}
