// Package paycalc holds the payroll arithmetic: progressive tax, capped contribution,
// zone adjustment and element aggregation. It performs no I/O.
package paycalc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MinorUnits is the number of decimal places kept on every payslip amount.
const MinorUnits int32 = 2

var monthsPerYear = decimal.NewFromInt(12)

// RoundMoney rounds half away from zero to the currency minor unit.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnits)
}

type Period struct {
	Year  int
	Month int
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Key is the sortable YYYY-MM form used for ordering and uniqueness.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Bounds returns the half-open UTC range [start, end) covering the calendar month.
func (p Period) Bounds() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (p Period) String() string {
	return p.Key()
}
