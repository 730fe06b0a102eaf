package paycalc

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidMultiplier = errors.New("zone multiplier must be positive")

type ZoneAdjuster struct {
	ruralMultiplier decimal.Decimal
}

func NewZoneAdjuster(ruralMultiplier decimal.Decimal) (*ZoneAdjuster, error) {
	if !ruralMultiplier.IsPositive() {
		return nil, ErrInvalidMultiplier
	}
	return &ZoneAdjuster{ruralMultiplier: ruralMultiplier}, nil
}

func (z *ZoneAdjuster) Multiplier(zone Zone) decimal.Decimal {
	if zone == ZoneRural {
		return z.ruralMultiplier
	}
	return decimal.NewFromInt(1)
}

// Adjust returns the effective amount of e for an employee working in zone.
// Only zone-sensitive elements in a rural zone are multiplied.
func (z *ZoneAdjuster) Adjust(e Element, zone Zone) decimal.Decimal {
	amount := e.BaseAmount()
	if e.ZoneSensitive && zone == ZoneRural {
		return amount.Mul(z.ruralMultiplier)
	}
	return amount
}
