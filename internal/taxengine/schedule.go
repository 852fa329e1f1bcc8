package taxengine

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrUnsupportedGender = errors.New("unsupported gender code")

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// ParseGender rejects unknown codes instead of silently defaulting; callers
// that want the permissive zero-default behaviour only get it for numeric fields.
func ParseGender(v string) (Gender, error) {
	switch v {
	case string(GenderMale):
		return GenderMale, nil
	case string(GenderFemale):
		return GenderFemale, nil
	}
	return "", ErrUnsupportedGender
}

// Slab is one progressive bracket. Width nil marks the final unbounded bracket
// that absorbs all remaining taxable income.
type Slab struct {
	Width *decimal.Decimal
	Rate  decimal.Decimal
}

// Schedule holds the law-defined constants for one jurisdiction and tax year.
// Brackets and thresholds change yearly, so they are configuration, never
// hardcoded into Calculate.
type Schedule struct {
	Jurisdiction string
	Year         int

	Slabs map[Gender][]Slab

	ExemptionCap     decimal.Decimal
	ExemptionDivisor decimal.Decimal

	RebateRate         decimal.Decimal
	InvestmentRate     decimal.Decimal
	MaxInvestmentLimit decimal.Decimal
}

func (s Schedule) SlabsFor(gender Gender) ([]Slab, error) {
	slabs, ok := s.Slabs[gender]
	if !ok || len(slabs) == 0 {
		return nil, ErrUnsupportedGender
	}
	return slabs, nil
}

func width(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func rate(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// Default2023 is the reference jurisdiction's 2023 individual income tax
// schedule. Women get a higher tax-free threshold; the remaining brackets
// are shared.
func Default2023() Schedule {
	shared := []Slab{
		{Width: width(100_000), Rate: rate("0.05")},
		{Width: width(300_000), Rate: rate("0.10")},
		{Width: width(400_000), Rate: rate("0.15")},
		{Width: width(500_000), Rate: rate("0.20")},
		{Width: nil, Rate: rate("0.25")},
	}

	male := append([]Slab{{Width: width(350_000), Rate: decimal.Zero}}, shared...)
	female := append([]Slab{{Width: width(400_000), Rate: decimal.Zero}}, shared...)

	return Schedule{
		Jurisdiction:       "BD",
		Year:               2023,
		Slabs:              map[Gender][]Slab{GenderMale: male, GenderFemale: female},
		ExemptionCap:       decimal.NewFromInt(500_000),
		ExemptionDivisor:   decimal.NewFromInt(3),
		RebateRate:         rate("0.03"),
		InvestmentRate:     rate("0.15"),
		MaxInvestmentLimit: decimal.NewFromInt(1_000_000),
	}
}
