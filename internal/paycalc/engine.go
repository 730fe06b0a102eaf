package paycalc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrInvariantBroken  = errors.New("payslip totals are inconsistent")
	ErrInvalidYearRange = errors.New("invalid year range")
)

// WarningNegativeNet marks a computation whose deductions exceed gross pay.
const WarningNegativeNet = "negative_net"

type Settings struct {
	Brackets         []TaxBracket
	ContributionRate decimal.Decimal
	ContributionCap  decimal.Decimal
	RuralMultiplier  decimal.Decimal
	MinYear          int
	MaxYear          int
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bound(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// DefaultBrackets is the DRC annual income tax schedule.
func DefaultBrackets() []TaxBracket {
	return []TaxBracket{
		{Lower: dec("0"), Upper: bound("524160"), Rate: dec("0")},
		{Lower: dec("524161"), Upper: bound("1428000"), Rate: dec("0.10")},
		{Lower: dec("1428001"), Upper: bound("2803200"), Rate: dec("0.15")},
		{Lower: dec("2803201"), Upper: bound("5044800"), Rate: dec("0.20")},
		{Lower: dec("5044801"), Upper: bound("8229600"), Rate: dec("0.22")},
		{Lower: dec("8229601"), Upper: bound("13200000"), Rate: dec("0.25")},
		{Lower: dec("13200001"), Upper: bound("18504000"), Rate: dec("0.30")},
		{Lower: dec("18504001"), Rate: dec("0.35")},
	}
}

func DefaultSettings() Settings {
	return Settings{
		Brackets:         DefaultBrackets(),
		ContributionRate: dec("0.05"),
		ContributionCap:  dec("180000"),
		RuralMultiplier:  dec("1.2"),
		MinYear:          2000,
		MaxYear:          2100,
	}
}

// Engine bundles the calculators configured for one jurisdiction.
type Engine struct {
	Tax          *TaxBracketEvaluator
	Contribution *ContributionCalculator
	Zone         *ZoneAdjuster
	Aggregator   *CompensationAggregator
	minYear      int
	maxYear      int
}

func NewEngine(s Settings) (*Engine, error) {
	tax, err := NewTaxBracketEvaluator(s.Brackets)
	if err != nil {
		return nil, err
	}
	contribution, err := NewContributionCalculator(s.ContributionRate, s.ContributionCap)
	if err != nil {
		return nil, err
	}
	zone, err := NewZoneAdjuster(s.RuralMultiplier)
	if err != nil {
		return nil, err
	}
	if s.MinYear > s.MaxYear {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidYearRange, s.MinYear, s.MaxYear)
	}

	return &Engine{
		Tax:          tax,
		Contribution: contribution,
		Zone:         zone,
		Aggregator:   NewCompensationAggregator(zone),
		minYear:      s.MinYear,
		maxYear:      s.MaxYear,
	}, nil
}

func (e *Engine) ValidatePeriod(p Period) error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, p.Month)
	}
	if p.Year < e.minYear || p.Year > e.maxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidPeriod, p.Year, e.minYear, e.maxYear)
	}
	return nil
}

// Computation is a fully itemised month of pay. All amounts are rounded to the minor unit.
type Computation struct {
	Zone            Zone
	ZoneMultiplier  decimal.Decimal
	BaseSalary      decimal.Decimal
	GainLines       []Line
	DeductionLines  []Line
	TotalGains      decimal.Decimal
	Gross           decimal.Decimal
	Contribution    decimal.Decimal
	Tax             decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
	Warnings        []string
}

// Compute turns a base salary and the selected elements into a payslip computation.
// Tax is assessed on the month's gross annualised by twelve.
func (e *Engine) Compute(baseSalary decimal.Decimal, elements []Element, zone Zone) Computation {
	if !zone.Valid() {
		zone = DefaultZone
	}

	agg := e.Aggregator.Aggregate(elements, zone)
	base := RoundMoney(baseSalary)
	gross := base.Add(agg.TotalGains)
	contribution := RoundMoney(e.Contribution.Compute(gross))
	tax := RoundMoney(e.Tax.Evaluate(gross.Mul(monthsPerYear)))
	totalDeductions := contribution.Add(tax).Add(agg.TotalDeductions)
	net := gross.Sub(totalDeductions)

	c := Computation{
		Zone:            zone,
		ZoneMultiplier:  e.Zone.Multiplier(zone),
		BaseSalary:      base,
		GainLines:       agg.GainLines,
		DeductionLines:  agg.DeductionLines,
		TotalGains:      agg.TotalGains,
		Gross:           gross,
		Contribution:    contribution,
		Tax:             tax,
		TotalDeductions: totalDeductions,
		Net:             net,
		Warnings:        []string{},
	}
	if net.IsNegative() {
		c.Warnings = append(c.Warnings, WarningNegativeNet)
	}
	return c
}

// Lines returns every payslip line in rendering order:
// gains, contribution, tax, then the remaining deductions.
func (e *Engine) Lines(c Computation) []Line {
	lines := make([]Line, 0, len(c.GainLines)+len(c.DeductionLines)+2)
	lines = append(lines, c.GainLines...)
	lines = append(lines,
		Line{
			Kind:        LineContribution,
			Amount:      c.Contribution,
			Description: fmt.Sprintf("Social contribution (%s%%)", e.Contribution.Rate().Shift(2).String()),
		},
		Line{
			Kind:        LineTax,
			Amount:      c.Tax,
			Description: "Income tax",
		},
	)
	lines = append(lines, c.DeductionLines...)
	return lines
}

// Check verifies the totals relations every stored payslip must satisfy.
func (c Computation) Check() error {
	if !c.Gross.Equal(c.BaseSalary.Add(c.TotalGains)) {
		return fmt.Errorf("%w: gross %s != base %s + gains %s", ErrInvariantBroken, c.Gross, c.BaseSalary, c.TotalGains)
	}
	if !c.Net.Equal(c.Gross.Sub(c.TotalDeductions)) {
		return fmt.Errorf("%w: net %s != gross %s - deductions %s", ErrInvariantBroken, c.Net, c.Gross, c.TotalDeductions)
	}
	if c.TotalDeductions.LessThan(c.Contribution.Add(c.Tax)) {
		return fmt.Errorf("%w: deductions %s below statutory minimum", ErrInvariantBroken, c.TotalDeductions)
	}
	return nil
}

func (c Computation) HasWarning(w string) bool {
	for _, x := range c.Warnings {
		if x == w {
			return true
		}
	}
	return false
}
