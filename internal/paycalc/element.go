package paycalc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Zone string

const (
	ZoneUrban Zone = "URBAN"
	ZoneRural Zone = "RURAL"
)

// DefaultZone applies when an employee has no workplace or the workplace cannot be found.
const DefaultZone = ZoneUrban

func ParseZone(s string) (Zone, error) {
	switch Zone(strings.ToUpper(strings.TrimSpace(s))) {
	case ZoneUrban:
		return ZoneUrban, nil
	case ZoneRural:
		return ZoneRural, nil
	}
	return "", fmt.Errorf("unknown zone %q", s)
}

func (z Zone) Valid() bool {
	return z == ZoneUrban || z == ZoneRural
}

type ElementKind string

const (
	KindGain      ElementKind = "GAIN"
	KindDeduction ElementKind = "DEDUCTION"
)

func (k ElementKind) Valid() bool {
	return k == KindGain || k == KindDeduction
}

// Element is a fixed-amount compensation entry. A nil Amount counts as zero.
type Element struct {
	ID            string
	Name          string
	Kind          ElementKind
	Amount        *decimal.Decimal
	ZoneSensitive bool
}

func (e Element) BaseAmount() decimal.Decimal {
	if e.Amount == nil {
		return decimal.Zero
	}
	return *e.Amount
}
