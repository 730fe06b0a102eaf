package paycalc

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidContribution = errors.New("invalid contribution settings")

type ContributionCalculator struct {
	rate decimal.Decimal
	cap  decimal.Decimal
}

func NewContributionCalculator(rate, ceiling decimal.Decimal) (*ContributionCalculator, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, ErrInvalidContribution
	}
	if ceiling.IsNegative() {
		return nil, ErrInvalidContribution
	}
	return &ContributionCalculator{rate: rate, cap: ceiling}, nil
}

// Compute applies the rate to the monthly gross, capped at the contribution ceiling.
func (c *ContributionCalculator) Compute(monthlyGross decimal.Decimal) decimal.Decimal {
	base := monthlyGross
	if base.IsNegative() {
		base = decimal.Zero
	}
	if base.GreaterThan(c.cap) {
		base = c.cap
	}
	return base.Mul(c.rate)
}

func (c *ContributionCalculator) Rate() decimal.Decimal {
	return c.rate
}

// Max is the largest contribution Compute can return.
func (c *ContributionCalculator) Max() decimal.Decimal {
	return c.cap.Mul(c.rate)
}
