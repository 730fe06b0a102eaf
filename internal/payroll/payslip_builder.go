package payroll

import (
	"context"
	"time"

	"go-payroll/internal/paycalc"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/dbutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var annualFactor = decimal.NewFromInt(12)

// Source is the read side the builder needs. Repository satisfies it.
type Source interface {
	FindEmployee(ctx context.Context, id string) (*PayrollEmployee, error)
	FindGrade(ctx context.Context, id string) (*PayrollGrade, error)
	FindWorkplace(ctx context.Context, id string) (*PayrollWorkplace, error)
	FindElements(ctx context.Context, ids []string) ([]PayrollElement, error)
}

type PayslipBuilder struct {
	engine *paycalc.Engine
	logger *zap.Logger
	now    func() time.Time
}

func NewPayslipBuilder(engine *paycalc.Engine, logger ...*zap.Logger) *PayslipBuilder {
	l := zap.L().Named("payroll.builder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.builder")
	}
	return &PayslipBuilder{engine: engine, logger: l, now: time.Now}
}

// Build computes a pending payslip for one employee and period. Nothing is persisted.
func (b *PayslipBuilder) Build(
	ctx context.Context,
	src Source,
	employeeID string,
	period paycalc.Period,
	elementIDs []string,
) (*Payslip, Breakdown, error) {
	log := contextutil.GetLogger(ctx, b.logger)

	if err := b.engine.ValidatePeriod(period); err != nil {
		return nil, Breakdown{}, payrollerrors.ErrInvalidPeriod.WithCause(err)
	}

	employee, err := src.FindEmployee(ctx, employeeID)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil, Breakdown{}, payrollerrors.ErrEmployeeNotFound
		}
		return nil, Breakdown{}, err
	}

	grade, err := src.FindGrade(ctx, employee.GradeID.String())
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil, Breakdown{}, payrollerrors.ErrGradeNotFound
		}
		return nil, Breakdown{}, err
	}

	zone, err := b.resolveZone(ctx, src, employee)
	if err != nil {
		return nil, Breakdown{}, err
	}

	elements, err := b.loadElements(ctx, src, elementIDs)
	if err != nil {
		return nil, Breakdown{}, err
	}

	c := b.engine.Compute(grade.BaseSalary, elements, zone)
	if err := c.Check(); err != nil {
		log.Error("payslip invariant check failed",
			zap.String("employee_id", employeeID),
			zap.String("period", period.Key()),
			zap.Error(err),
		)
		return nil, Breakdown{}, payrollerrors.ErrInconsistentTotals.WithCause(err)
	}

	if c.HasWarning(paycalc.WarningNegativeNet) {
		log.Warn("payslip has negative net",
			zap.String("employee_id", employeeID),
			zap.String("period", period.Key()),
			zap.String("net", c.Net.String()),
		)
	}

	payslip := b.assemble(employee.ID, period, c)
	return payslip, newBreakdown(payslip, c), nil
}

// resolveZone falls back to the default zone when the employee has no workplace
// or the workplace row is gone.
func (b *PayslipBuilder) resolveZone(ctx context.Context, src Source, employee *PayrollEmployee) (paycalc.Zone, error) {
	if employee.WorkplaceID == nil {
		return paycalc.DefaultZone, nil
	}

	workplace, err := src.FindWorkplace(ctx, employee.WorkplaceID.String())
	if err != nil {
		if dbutil.IsNotFound(err) {
			return paycalc.DefaultZone, nil
		}
		return "", err
	}

	zone, err := paycalc.ParseZone(workplace.Zone)
	if err != nil {
		contextutil.GetLogger(ctx, b.logger).Warn("workplace has unknown zone, using default",
			zap.String("workplace_id", workplace.ID.String()),
			zap.String("zone", workplace.Zone),
		)
		return paycalc.DefaultZone, nil
	}
	return zone, nil
}

// loadElements keeps the first occurrence of each id in caller order.
// Ids that are malformed or no longer exist are skipped.
func (b *PayslipBuilder) loadElements(ctx context.Context, src Source, ids []string) ([]paycalc.Element, error) {
	seen := make(map[string]struct{}, len(ids))
	ordered := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		key := id.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ordered = append(ordered, key)
	}
	if len(ordered) == 0 {
		return nil, nil
	}

	rows, err := src.FindElements(ctx, ordered)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]PayrollElement, len(rows))
	for _, row := range rows {
		byID[row.ID.String()] = row
	}

	elements := make([]paycalc.Element, 0, len(ordered))
	for _, id := range ordered {
		row, ok := byID[id]
		if !ok {
			continue
		}
		elements = append(elements, row.toPaycalc())
	}
	return elements, nil
}

func (b *PayslipBuilder) assemble(employeeID uuid.UUID, period paycalc.Period, c paycalc.Computation) *Payslip {
	payslipID := uuid.New()
	lines := b.engine.Lines(c)

	payslip := &Payslip{
		ID:              payslipID,
		EmployeeID:      employeeID,
		Month:           period.Month,
		Year:            period.Year,
		PeriodKey:       period.Key(),
		BaseSalary:      c.BaseSalary,
		TotalGains:      c.TotalGains,
		Gross:           c.Gross,
		Contribution:    c.Contribution,
		Tax:             c.Tax,
		TotalDeductions: c.TotalDeductions,
		Net:             c.Net,
		Zone:            string(c.Zone),
		ZoneMultiplier:  c.ZoneMultiplier,
		Status:          StatusPending,
		GeneratedAt:     b.now().UTC(),
		Lines:           make([]PayslipLine, len(lines)),
	}

	for i, l := range lines {
		line := PayslipLine{
			ID:          uuid.New(),
			PayslipID:   payslipID,
			Kind:        string(l.Kind),
			Position:    i,
			Amount:      l.Amount,
			Description: l.Description,
		}
		if l.ElementID != "" {
			if id, err := uuid.Parse(l.ElementID); err == nil {
				line.ElementID = &id
			}
		}
		payslip.Lines[i] = line
	}
	return payslip
}

func newBreakdown(p *Payslip, c paycalc.Computation) Breakdown {
	return Breakdown{
		PeriodKey:       p.PeriodKey,
		Zone:            p.Zone,
		ZoneMultiplier:  p.ZoneMultiplier,
		BaseSalary:      p.BaseSalary,
		TotalGains:      p.TotalGains,
		Gross:           p.Gross,
		AnnualizedGross: p.Gross.Mul(annualFactor),
		Contribution:    p.Contribution,
		Tax:             p.Tax,
		OtherDeductions: p.TotalDeductions.Sub(p.Contribution).Sub(p.Tax),
		TotalDeductions: p.TotalDeductions,
		Net:             p.Net,
		Lines:           mapLines(p.Lines),
		Warnings:        append([]string{}, c.Warnings...),
	}
}

// breakdownOf rebuilds the explanation of a stored payslip.
func breakdownOf(p *Payslip) Breakdown {
	warnings := []string{}
	if p.Net.IsNegative() {
		warnings = append(warnings, paycalc.WarningNegativeNet)
	}
	return newBreakdown(p, paycalc.Computation{Warnings: warnings})
}
