package workplace

import (
	"strings"
	"time"

	"go-payroll/internal/paycalc"
	workplaceerrors "go-payroll/internal/workplace/errors"

	"github.com/google/uuid"
)

type Workplace struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name      string       `gorm:"size:255;not null"`
	Province  string       `gorm:"size:100"`
	Zone      paycalc.Zone `gorm:"type:varchar(10);not null;default:'URBAN'"`
	CreatedAt time.Time    `gorm:"autoCreateTime"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime"`
}

func (w Workplace) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return workplaceerrors.ErrNameRequired
	}
	if !w.Zone.Valid() {
		return workplaceerrors.ErrInvalidZone
	}
	return nil
}

type WorkplacePatch struct {
	Name     *string
	Province *string
	Zone     *string
}

func (p WorkplacePatch) Apply(w *Workplace) error {
	next := *w
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Province != nil {
		next.Province = strings.TrimSpace(*p.Province)
	}
	if p.Zone != nil {
		zone, err := paycalc.ParseZone(*p.Zone)
		if err != nil {
			return workplaceerrors.ErrInvalidZone
		}
		next.Zone = zone
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*w = next
	return nil
}
