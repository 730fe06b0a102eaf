package paycalc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type LineKind string

const (
	LineGain         LineKind = "GAIN"
	LineContribution LineKind = "CONTRIBUTION"
	LineTax          LineKind = "TAX"
	LineDeduction    LineKind = "DEDUCTION"
)

// Line is one payslip entry. ElementID is empty for statutory lines.
type Line struct {
	ElementID   string
	Kind        LineKind
	Amount      decimal.Decimal
	Description string
}

type Aggregation struct {
	GainLines       []Line
	DeductionLines  []Line
	TotalGains      decimal.Decimal
	TotalDeductions decimal.Decimal
}

type CompensationAggregator struct {
	zone *ZoneAdjuster
}

func NewCompensationAggregator(zone *ZoneAdjuster) *CompensationAggregator {
	return &CompensationAggregator{zone: zone}
}

// Aggregate splits elements into gain and deduction lines, keeping input order.
// Gains go through the zone adjuster; deductions are taken at their fixed amount.
// Line amounts are rounded to the minor unit and totals are sums of the rounded lines.
func (a *CompensationAggregator) Aggregate(elements []Element, zone Zone) Aggregation {
	out := Aggregation{
		GainLines:       []Line{},
		DeductionLines:  []Line{},
		TotalGains:      decimal.Zero,
		TotalDeductions: decimal.Zero,
	}

	for _, e := range elements {
		switch e.Kind {
		case KindGain:
			amount := RoundMoney(a.zone.Adjust(e, zone))
			out.GainLines = append(out.GainLines, Line{
				ElementID:   e.ID,
				Kind:        LineGain,
				Amount:      amount,
				Description: fmt.Sprintf("%s - Zone: %s", e.Name, zone),
			})
			out.TotalGains = out.TotalGains.Add(amount)
		case KindDeduction:
			amount := RoundMoney(e.BaseAmount())
			out.DeductionLines = append(out.DeductionLines, Line{
				ElementID:   e.ID,
				Kind:        LineDeduction,
				Amount:      amount,
				Description: e.Name,
			})
			out.TotalDeductions = out.TotalDeductions.Add(amount)
		}
	}

	return out
}
