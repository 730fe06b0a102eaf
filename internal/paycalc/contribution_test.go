package paycalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestContributionCalculator_Compute(t *testing.T) {
	c, err := NewContributionCalculator(dec("0.05"), dec("180000"))
	assert.NoError(t, err)

	assert.True(t, c.Compute(decimal.NewFromInt(200000)).Equal(dec("9000")))
	assert.True(t, c.Compute(decimal.NewFromInt(100000)).Equal(dec("5000")))
	assert.True(t, c.Compute(decimal.NewFromInt(-10)).IsZero())
	assert.True(t, c.Max().Equal(dec("9000")))

	for gross := int64(0); gross <= 1000000; gross += 33333 {
		assert.False(t, c.Compute(decimal.NewFromInt(gross)).GreaterThan(c.Max()))
	}
}

func TestNewContributionCalculator_Validation(t *testing.T) {
	_, err := NewContributionCalculator(dec("1.01"), dec("100"))
	assert.ErrorIs(t, err, ErrInvalidContribution)

	_, err = NewContributionCalculator(dec("0.05"), dec("-1"))
	assert.ErrorIs(t, err, ErrInvalidContribution)
}
