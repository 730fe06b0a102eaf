package config

import (
	"fmt"

	"go-payroll/internal/paycalc"

	"github.com/shopspring/decimal"
)

// BracketConfig is one row of the annual tax table. An empty Upper marks the open-ended top bracket.
type BracketConfig struct {
	Lower string `mapstructure:"lower"`
	Upper string `mapstructure:"upper"`
	Rate  string `mapstructure:"rate"`
}

type PayrollConfig struct {
	Brackets         []BracketConfig
	ContributionRate string
	ContributionCap  string
	RuralMultiplier  string
	MinYear          int
	MaxYear          int
}

// defaultBrackets renders the built-in table in the shape viper decodes from payroll.yaml.
func defaultBrackets() []map[string]any {
	table := paycalc.DefaultBrackets()
	out := make([]map[string]any, 0, len(table))
	for _, b := range table {
		upper := ""
		if b.Upper != nil {
			upper = b.Upper.String()
		}
		out = append(out, map[string]any{
			"lower": b.Lower.String(),
			"upper": upper,
			"rate":  b.Rate.String(),
		})
	}
	return out
}

// Engine builds validated calculation components from the configured tables.
func (p PayrollConfig) Engine() (*paycalc.Engine, error) {
	brackets := make([]paycalc.TaxBracket, 0, len(p.Brackets))
	for i, b := range p.Brackets {
		lower, err := decimal.NewFromString(b.Lower)
		if err != nil {
			return nil, fmt.Errorf("bracket %d lower: %w", i, err)
		}
		rate, err := decimal.NewFromString(b.Rate)
		if err != nil {
			return nil, fmt.Errorf("bracket %d rate: %w", i, err)
		}
		bracket := paycalc.TaxBracket{Lower: lower, Rate: rate}
		if b.Upper != "" {
			upper, err := decimal.NewFromString(b.Upper)
			if err != nil {
				return nil, fmt.Errorf("bracket %d upper: %w", i, err)
			}
			bracket.Upper = &upper
		}
		brackets = append(brackets, bracket)
	}

	rate, err := decimal.NewFromString(p.ContributionRate)
	if err != nil {
		return nil, fmt.Errorf("contribution rate: %w", err)
	}
	contributionCap, err := decimal.NewFromString(p.ContributionCap)
	if err != nil {
		return nil, fmt.Errorf("contribution cap: %w", err)
	}
	multiplier, err := decimal.NewFromString(p.RuralMultiplier)
	if err != nil {
		return nil, fmt.Errorf("rural multiplier: %w", err)
	}

	return paycalc.NewEngine(paycalc.Settings{
		Brackets:         brackets,
		ContributionRate: rate,
		ContributionCap:  contributionCap,
		RuralMultiplier:  multiplier,
		MinYear:          p.MinYear,
		MaxYear:          p.MaxYear,
	})
}
