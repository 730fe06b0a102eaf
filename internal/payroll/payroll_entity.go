package payroll

import (
	"time"

	"go-payroll/internal/paycalc"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
)

// Payslip is immutable once generated except for the payment fields and pdf_path.
type Payslip struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_payslips_employee_period"`
	Month           int             `gorm:"not null"`
	Year            int             `gorm:"not null"`
	PeriodKey       string          `gorm:"type:varchar(7);not null;index:idx_payslips_employee_period;index"`
	BaseSalary      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalGains      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Gross           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Contribution    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Tax             decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Net             decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Zone            string          `gorm:"type:varchar(10);not null"`
	ZoneMultiplier  decimal.Decimal `gorm:"type:numeric(6,3);not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentMethod   *string         `gorm:"type:varchar(50)"`
	PaidAt          *time.Time
	PDFPath         *string `gorm:"column:pdf_path"`
	GeneratedAt     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Lines []PayslipLine `gorm:"foreignKey:PayslipID;constraint:OnDelete:CASCADE"`
}

func (p Payslip) Period() paycalc.Period {
	return paycalc.Period{Year: p.Year, Month: p.Month}
}

type PayslipLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PayslipID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ElementID   *uuid.UUID      `gorm:"type:uuid"`
	Kind        string          `gorm:"type:varchar(20);not null"`
	Position    int             `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description string          `gorm:"type:varchar(255);not null"`
}

// Read models over tables owned by other modules.

type PayrollEmployee struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Matricule   string     `gorm:"column:matricule"`
	FirstName   string     `gorm:"column:first_name"`
	LastName    string     `gorm:"column:last_name"`
	GradeID     uuid.UUID  `gorm:"type:uuid;column:grade_id"`
	WorkplaceID *uuid.UUID `gorm:"type:uuid;column:workplace_id"`
}

func (PayrollEmployee) TableName() string {
	return "employees"
}

func (e PayrollEmployee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type PayrollGrade struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Label      string          `gorm:"column:label"`
	BaseSalary decimal.Decimal `gorm:"column:base_salary"`
}

func (PayrollGrade) TableName() string {
	return "grades"
}

type PayrollWorkplace struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
	Zone string    `gorm:"column:zone"`
}

func (PayrollWorkplace) TableName() string {
	return "workplaces"
}

type PayrollElement struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name          string           `gorm:"column:name"`
	Kind          string           `gorm:"column:kind"`
	Amount        *decimal.Decimal `gorm:"column:amount"`
	ZoneSensitive bool             `gorm:"column:zone_sensitive"`
}

func (PayrollElement) TableName() string {
	return "compensation_elements"
}

func (e PayrollElement) toPaycalc() paycalc.Element {
	return paycalc.Element{
		ID:            e.ID.String(),
		Name:          e.Name,
		Kind:          paycalc.ElementKind(e.Kind),
		Amount:        e.Amount,
		ZoneSensitive: e.ZoneSensitive,
	}
}
