package paycalc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyBracketTable = errors.New("tax bracket table is empty")
	ErrInvalidBracket    = errors.New("invalid tax bracket")
)

// adjacencyGap is the widest distance between consecutive brackets treated as contiguous.
var adjacencyGap = decimal.NewFromInt(1)

// TaxBracket taxes annual income above Lower up to Upper at Rate. A nil Upper is the
// open-ended top bracket.
type TaxBracket struct {
	Lower decimal.Decimal
	Upper *decimal.Decimal
	Rate  decimal.Decimal
}

type TaxBracketEvaluator struct {
	brackets []TaxBracket
}

func NewTaxBracketEvaluator(brackets []TaxBracket) (*TaxBracketEvaluator, error) {
	if len(brackets) == 0 {
		return nil, ErrEmptyBracketTable
	}

	last := len(brackets) - 1
	table := make([]TaxBracket, len(brackets))
	for i, b := range brackets {
		if b.Lower.IsNegative() {
			return nil, fmt.Errorf("%w: bracket %d has negative lower bound", ErrInvalidBracket, i)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: bracket %d rate %s outside [0,1]", ErrInvalidBracket, i, b.Rate)
		}
		if b.Upper == nil && i != last {
			return nil, fmt.Errorf("%w: only the last bracket may be unbounded", ErrInvalidBracket)
		}
		if b.Upper != nil && !b.Upper.GreaterThan(b.Lower) {
			return nil, fmt.Errorf("%w: bracket %d upper bound must exceed lower bound", ErrInvalidBracket, i)
		}
		if i > 0 && !b.Lower.GreaterThanOrEqual(*table[i-1].Upper) {
			return nil, fmt.Errorf("%w: bracket %d overlaps bracket %d", ErrInvalidBracket, i, i-1)
		}

		table[i] = b
		if b.Upper != nil {
			upper := *b.Upper
			table[i].Upper = &upper
		}
	}

	return &TaxBracketEvaluator{brackets: table}, nil
}

// Evaluate returns the monthly tax due on annualGross.
//
// A bracket whose lower bound sits at most one unit above the previous upper bound starts
// at that upper bound, so integer tables such as 0-524160 / 524161-1428000 leave no untaxed
// unit in between. Wider gaps stay untaxed: the bracket starts at its own lower bound.
func (e *TaxBracketEvaluator) Evaluate(annualGross decimal.Decimal) decimal.Decimal {
	if !annualGross.IsPositive() {
		return decimal.Zero
	}

	total := decimal.Zero
	for i, b := range e.brackets {
		floor := bracketFloor(b, e.previousUpper(i))
		if !annualGross.GreaterThan(floor) {
			break
		}

		top := annualGross
		if b.Upper != nil && b.Upper.LessThan(annualGross) {
			top = *b.Upper
		}
		total = total.Add(top.Sub(floor).Mul(b.Rate))

		if b.Upper == nil {
			break
		}
	}

	return total.Div(monthsPerYear)
}

func (e *TaxBracketEvaluator) previousUpper(i int) *decimal.Decimal {
	if i == 0 {
		return nil
	}
	return e.brackets[i-1].Upper
}

func bracketFloor(b TaxBracket, prevUpper *decimal.Decimal) decimal.Decimal {
	if prevUpper != nil && b.Lower.Sub(*prevUpper).LessThanOrEqual(adjacencyGap) {
		return *prevUpper
	}
	return b.Lower
}

// Brackets returns a copy of the configured table.
func (e *TaxBracketEvaluator) Brackets() []TaxBracket {
	out := make([]TaxBracket, len(e.brackets))
	copy(out, e.brackets)
	return out
}
