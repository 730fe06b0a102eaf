package element

import (
	"strings"
	"time"

	elementerrors "go-payroll/internal/element/errors"
	"go-payroll/internal/paycalc"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const NameConstraint = "uq_compensation_elements_name"

// Element is a catalogue entry applied to payslips by id.
type Element struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name          string              `gorm:"size:255;not null;uniqueIndex:uq_compensation_elements_name"`
	Kind          paycalc.ElementKind `gorm:"type:varchar(10);not null;index"`
	Amount        *decimal.Decimal    `gorm:"type:numeric(14,2)"`
	Description   string              `gorm:"type:text"`
	ZoneSensitive bool                `gorm:"not null;default:false"`
	CreatedAt     time.Time           `gorm:"autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime"`
}

func (Element) TableName() string {
	return "compensation_elements"
}

func (e Element) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return elementerrors.ErrNameRequired
	}
	if !e.Kind.Valid() {
		return elementerrors.ErrInvalidKind
	}
	if e.Amount != nil && e.Amount.IsNegative() {
		return elementerrors.ErrNegativeAmount
	}
	return nil
}

// ToPaycalc converts the catalogue row into the engine's value type.
func (e Element) ToPaycalc() paycalc.Element {
	return paycalc.Element{
		ID:            e.ID.String(),
		Name:          e.Name,
		Kind:          e.Kind,
		Amount:        e.Amount,
		ZoneSensitive: e.ZoneSensitive,
	}
}

// ElementPatch carries a partial update. ClearAmount resets the amount to null.
type ElementPatch struct {
	Name          *string
	Kind          *string
	Amount        *decimal.Decimal
	ClearAmount   bool
	Description   *string
	ZoneSensitive *bool
}

func (p ElementPatch) Apply(e *Element) error {
	next := *e
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Kind != nil {
		next.Kind = paycalc.ElementKind(strings.ToUpper(strings.TrimSpace(*p.Kind)))
	}
	if p.ClearAmount {
		next.Amount = nil
	} else if p.Amount != nil {
		amount := *p.Amount
		next.Amount = &amount
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.ZoneSensitive != nil {
		next.ZoneSensitive = *p.ZoneSensitive
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*e = next
	return nil
}
