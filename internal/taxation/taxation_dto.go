package taxation

import (
	"github.com/shopspring/decimal"
)

// CalculateTaxRequest mirrors the caller's wire contract: the salary profile
// itself is looked up server-side from the employee record. SourceOther and
// Bonus stay pointers so an omitted field is defaulted to zero and reported,
// not rejected.
type CalculateTaxRequest struct {
	EmployeeID  string           `json:"employee_id" binding:"required,uuid"`
	Gender      string           `json:"gender" binding:"required"`
	SourceOther *decimal.Decimal `json:"source_other"`
	Bonus       *decimal.Decimal `json:"bonus"`
	TaxYear     int              `json:"tax_year"`
}

type ProvisionRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	MonthlyTDS   decimal.Decimal `json:"monthly_tds"`
	YearlyTax    decimal.Decimal `json:"yearly_tax"`
}

// ProvisionResponse is the finance dashboard aggregate: the employer's total
// expected withholding for a tax year.
type ProvisionResponse struct {
	TaxYear         int             `json:"tax_year"`
	EmployeeCount   int             `json:"employee_count"`
	TotalMonthlyTDS decimal.Decimal `json:"total_monthly_tds"`
	TotalYearlyTax  decimal.Decimal `json:"total_yearly_tax"`
	Rows            []ProvisionRow  `json:"rows"`
}
