package paycalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompensationAggregator_Aggregate(t *testing.T) {
	z, _ := NewZoneAdjuster(dec("1.2"))
	a := NewCompensationAggregator(z)

	elements := []Element{
		{ID: "e1", Name: "Rural allowance", Kind: KindGain, Amount: amount("1000"), ZoneSensitive: true},
		{ID: "e2", Name: "Union fee", Kind: KindDeduction, Amount: amount("250"), ZoneSensitive: true},
		{ID: "e3", Name: "Housing", Kind: KindGain, Amount: amount("500")},
		{ID: "e4", Name: "Canteen", Kind: KindDeduction},
		{ID: "e5", Name: "Bonus", Kind: KindGain, Amount: amount("10.005")},
	}

	got := a.Aggregate(elements, ZoneRural)

	assert.Len(t, got.GainLines, 3)
	assert.Equal(t, []string{"e1", "e3", "e5"}, []string{got.GainLines[0].ElementID, got.GainLines[1].ElementID, got.GainLines[2].ElementID})
	assert.True(t, got.GainLines[0].Amount.Equal(dec("1200")))
	assert.Equal(t, "Rural allowance - Zone: RURAL", got.GainLines[0].Description)
	assert.True(t, got.GainLines[2].Amount.Equal(dec("10.01")))
	assert.True(t, got.TotalGains.Equal(dec("1710.01")))

	assert.Len(t, got.DeductionLines, 2)
	assert.Equal(t, "e2", got.DeductionLines[0].ElementID)
	assert.True(t, got.DeductionLines[0].Amount.Equal(dec("250")), "deductions are never zone adjusted")
	assert.True(t, got.DeductionLines[1].Amount.IsZero())
	assert.True(t, got.TotalDeductions.Equal(dec("250")))
}

func TestCompensationAggregator_Empty(t *testing.T) {
	z, _ := NewZoneAdjuster(dec("1.2"))
	got := NewCompensationAggregator(z).Aggregate(nil, ZoneUrban)

	assert.Empty(t, got.GainLines)
	assert.Empty(t, got.DeductionLines)
	assert.True(t, got.TotalGains.IsZero())
	assert.True(t, got.TotalDeductions.IsZero())
}
