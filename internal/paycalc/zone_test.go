package paycalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amount(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestZoneAdjuster_Adjust(t *testing.T) {
	z, err := NewZoneAdjuster(dec("1.2"))
	assert.NoError(t, err)

	sensitive := Element{Name: "Rural allowance", Kind: KindGain, Amount: amount("1000"), ZoneSensitive: true}
	plain := Element{Name: "Transport", Kind: KindGain, Amount: amount("1000")}

	assert.True(t, z.Adjust(sensitive, ZoneRural).Equal(dec("1200")))
	assert.True(t, z.Adjust(sensitive, ZoneUrban).Equal(dec("1000")))
	assert.True(t, z.Adjust(plain, ZoneRural).Equal(dec("1000")))
	assert.True(t, z.Adjust(Element{Kind: KindGain, ZoneSensitive: true}, ZoneRural).IsZero())

	assert.True(t, z.Multiplier(ZoneUrban).Equal(dec("1")))
	assert.True(t, z.Multiplier(ZoneRural).Equal(dec("1.2")))
}

func TestNewZoneAdjuster_RejectsNonPositive(t *testing.T) {
	_, err := NewZoneAdjuster(dec("0"))
	assert.ErrorIs(t, err, ErrInvalidMultiplier)
}

func TestParseZone(t *testing.T) {
	z, err := ParseZone(" rural ")
	assert.NoError(t, err)
	assert.Equal(t, ZoneRural, z)

	_, err = ParseZone("suburban")
	assert.Error(t, err)
}
