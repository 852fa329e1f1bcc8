package taxengine

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryProfile carries the employee's fixed monthly salary components.
// Amounts are whole local-currency units; the engine does no conversion.
type SalaryProfile struct {
	Basic       decimal.Decimal `json:"basic"`
	HouseRent   decimal.Decimal `json:"house_rent"`
	Medical     decimal.Decimal `json:"medical"`
	Conveyance  decimal.Decimal `json:"conveyance"`
	GrossSalary decimal.Decimal `json:"gross_salary"`
	CashSalary  decimal.Decimal `json:"cash_salary"`
}

// Inputs are the per-calculation figures supplied by the caller. SourceOther
// and Bonus are pointers so an absent field can be told apart from an explicit
// zero: absent numeric fields default to zero and are reported back in
// Result.DefaultedFields rather than failing the calculation.
type Inputs struct {
	EmployeeID  string
	Gender      Gender
	SourceOther *decimal.Decimal
	Bonus       *decimal.Decimal
}

type ComponentBreakdown struct {
	Monthly    decimal.Decimal `json:"monthly"`
	YTD        decimal.Decimal `json:"ytd"`
	TaxableYTD decimal.Decimal `json:"taxable_ytd"`
}

type SalaryBreakdown struct {
	Basic            ComponentBreakdown `json:"basic"`
	HouseRent        ComponentBreakdown `json:"house_rent"`
	Medical          ComponentBreakdown `json:"medical"`
	Conveyance       ComponentBreakdown `json:"conveyance"`
	Bonus            decimal.Decimal    `json:"bonus"`
	TotalIncomeYTD   decimal.Decimal    `json:"total_income_ytd"`
	Exemption        decimal.Decimal    `json:"exemption"`
	TaxableIncomeYTD decimal.Decimal    `json:"taxable_income_ytd"`
}

type RebateInfo struct {
	MaxInvestmentLimit decimal.Decimal `json:"max_investment_limit"`
	TaxRebate          decimal.Decimal `json:"tax_rebate"`
}

type TaxCalculation struct {
	TotalTaxPayable decimal.Decimal `json:"total_tax_payable"`
	TaxRebate       decimal.Decimal `json:"tax_rebate"`
	NetTaxPayable   decimal.Decimal `json:"net_tax_payable"`
	TaxPayable      decimal.Decimal `json:"tax_payable"`
	MonthlyTDS      decimal.Decimal `json:"monthly_tds"`
	ShouldDeductTax bool            `json:"should_deduct_tax"`
	ActualDeduction decimal.Decimal `json:"actual_deduction"`
}

// SlabRow is one applied bracket, in ascending income order. Limit nil means
// the unbounded final bracket.
type SlabRow struct {
	Limit  *decimal.Decimal `json:"limit"`
	Income decimal.Decimal  `json:"income"`
	Rate   decimal.Decimal  `json:"rate"`
	Tax    decimal.Decimal  `json:"tax"`
}

type Result struct {
	EmployeeID      string          `json:"employee_id"`
	SalaryBreakdown SalaryBreakdown `json:"salary_breakdown"`
	Rebate          RebateInfo      `json:"rebate"`
	TaxCalculation  TaxCalculation  `json:"tax_calculation"`
	TaxSlabs        []SlabRow       `json:"tax_slabs"`

	// DefaultedFields lists input fields that were absent and substituted
	// with zero, so callers can decide how much to trust the output.
	DefaultedFields []string `json:"defaulted_fields,omitempty"`

	// ComputedAt and Stale are stamped by the caller that owns the clock and
	// the cache; Calculate itself stays referentially transparent.
	ComputedAt time.Time `json:"computed_at"`
	Stale      bool      `json:"stale"`
}

var (
	monthsPerYear = decimal.NewFromInt(12)
)

// Calculate annualizes the monthly salary components, applies the exemption,
// walks the progressive slab schedule for the employee's gender category,
// applies the rebate and other-source offset, and derives the monthly
// withholding. Pure: identical inputs yield identical output.
func Calculate(profile SalaryProfile, in Inputs, sched Schedule) (Result, error) {
	slabs, err := sched.SlabsFor(in.Gender)
	if err != nil {
		return Result{}, err
	}

	sourceOther, bonus, defaulted := normalize(in)

	annualize := func(monthly decimal.Decimal) ComponentBreakdown {
		return ComponentBreakdown{Monthly: monthly, YTD: monthly.Mul(monthsPerYear)}
	}

	basic := annualize(profile.Basic)
	houseRent := annualize(profile.HouseRent)
	medical := annualize(profile.Medical)
	conveyance := annualize(profile.Conveyance)

	totalIncome := basic.YTD.Add(houseRent.YTD).Add(medical.YTD).Add(conveyance.YTD).Add(bonus)

	// Exemption is the lesser of the statutory cap or one third of total
	// yearly income.
	exemption := totalIncome.Div(sched.ExemptionDivisor)
	if exemption.GreaterThan(sched.ExemptionCap) {
		exemption = sched.ExemptionCap
	}
	taxable := totalIncome.Sub(exemption)

	// Per-component taxable figures reapply the taxable/total ratio. Display
	// only; taxable itself is the authoritative figure downstream.
	if totalIncome.IsPositive() {
		ratio := taxable.Div(totalIncome)
		basic.TaxableYTD = basic.YTD.Mul(ratio).Round(2)
		houseRent.TaxableYTD = houseRent.YTD.Mul(ratio).Round(2)
		medical.TaxableYTD = medical.YTD.Mul(ratio).Round(2)
		conveyance.TaxableYTD = conveyance.YTD.Mul(ratio).Round(2)
	}

	rows, totalTax := applySlabs(taxable, slabs)

	rebate := threeWayMin(
		taxable.Mul(sched.RebateRate),
		taxable.Mul(sched.InvestmentRate),
		sched.MaxInvestmentLimit,
	).Round(2)

	netTax := totalTax.Sub(rebate)
	if netTax.IsNegative() {
		netTax = decimal.Zero
	}

	taxPayable := netTax.Sub(sourceOther)
	if taxPayable.IsNegative() {
		taxPayable = decimal.Zero
	}

	// Whole currency units, rounded half up. Downstream summation relies on
	// this rounding mode staying put.
	monthlyTDS := taxPayable.DivRound(monthsPerYear, 0)

	shouldDeduct := taxPayable.IsPositive()
	actualDeduction := decimal.Zero
	if shouldDeduct {
		actualDeduction = monthlyTDS
	}

	return Result{
		EmployeeID: in.EmployeeID,
		SalaryBreakdown: SalaryBreakdown{
			Basic:            basic,
			HouseRent:        houseRent,
			Medical:          medical,
			Conveyance:       conveyance,
			Bonus:            bonus,
			TotalIncomeYTD:   totalIncome,
			Exemption:        exemption,
			TaxableIncomeYTD: taxable,
		},
		Rebate: RebateInfo{
			MaxInvestmentLimit: sched.MaxInvestmentLimit,
			TaxRebate:          rebate,
		},
		TaxCalculation: TaxCalculation{
			TotalTaxPayable: totalTax,
			TaxRebate:       rebate,
			NetTaxPayable:   netTax,
			TaxPayable:      taxPayable,
			MonthlyTDS:      monthlyTDS,
			ShouldDeductTax: shouldDeduct,
			ActualDeduction: actualDeduction,
		},
		TaxSlabs:        rows,
		DefaultedFields: defaulted,
	}, nil
}

// applySlabs walks the brackets in ascending order, filling each up to its
// width until no taxable income remains. The unbounded final bracket absorbs
// whatever is left.
func applySlabs(taxable decimal.Decimal, slabs []Slab) ([]SlabRow, decimal.Decimal) {
	rows := make([]SlabRow, 0, len(slabs))
	totalTax := decimal.Zero
	remaining := taxable

	for _, slab := range slabs {
		if !remaining.IsPositive() {
			break
		}

		income := remaining
		if slab.Width != nil && income.GreaterThan(*slab.Width) {
			income = *slab.Width
		}

		tax := income.Mul(slab.Rate).Round(2)
		totalTax = totalTax.Add(tax)
		remaining = remaining.Sub(income)

		rows = append(rows, SlabRow{
			Limit:  slab.Width,
			Income: income,
			Rate:   slab.Rate,
			Tax:    tax,
		})
	}

	return rows, totalTax
}

func normalize(in Inputs) (sourceOther, bonus decimal.Decimal, defaulted []string) {
	if in.SourceOther != nil {
		sourceOther = *in.SourceOther
	} else {
		defaulted = append(defaulted, "source_other")
	}
	if in.Bonus != nil {
		bonus = *in.Bonus
	} else {
		defaulted = append(defaulted, "bonus")
	}
	return sourceOther, bonus, defaulted
}

func threeWayMin(a, b, c decimal.Decimal) decimal.Decimal {
	m := a
	if b.LessThan(m) {
		m = b
	}
	if c.LessThan(m) {
		m = c
	}
	return m
}
