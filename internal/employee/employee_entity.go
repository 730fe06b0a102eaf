package employee

import (
	"strings"
	"time"

	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/google/uuid"
)

const (
	MatriculeConstraint = "uq_employees_matricule"
	hireDateLayout      = "2006-01-02"
)

type Employee struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Matricule   string     `gorm:"size:50;not null;uniqueIndex:uq_employees_matricule"`
	FirstName   string     `gorm:"size:100;not null"`
	LastName    string     `gorm:"size:100;not null"`
	Email       string     `gorm:"size:255"`
	GradeID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	WorkplaceID *uuid.UUID `gorm:"type:uuid;index"`
	HireDate    *time.Time `gorm:"type:date"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e Employee) Validate() error {
	if strings.TrimSpace(e.FirstName) == "" {
		return employeeerrors.ErrFirstNameRequired
	}
	if strings.TrimSpace(e.LastName) == "" {
		return employeeerrors.ErrLastNameRequired
	}
	return nil
}

// EmployeePatch is a partial update. ClearWorkplace detaches the employee from any workplace.
type EmployeePatch struct {
	FirstName      *string
	LastName       *string
	Email          *string
	GradeID        *uuid.UUID
	WorkplaceID    *uuid.UUID
	ClearWorkplace bool
	HireDate       *time.Time
}

func (p EmployeePatch) Apply(e *Employee) error {
	next := *e
	if p.FirstName != nil {
		next.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		next.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.Email != nil {
		next.Email = strings.TrimSpace(*p.Email)
	}
	if p.GradeID != nil {
		next.GradeID = *p.GradeID
	}
	if p.ClearWorkplace {
		next.WorkplaceID = nil
	} else if p.WorkplaceID != nil {
		id := *p.WorkplaceID
		next.WorkplaceID = &id
	}
	if p.HireDate != nil {
		d := *p.HireDate
		next.HireDate = &d
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*e = next
	return nil
}

func parseHireDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(hireDateLayout, s)
	if err != nil {
		return nil, employeeerrors.ErrInvalidHireDate
	}
	return &d, nil
}
