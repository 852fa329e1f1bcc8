package payrollcalc

import (
	"github.com/shopspring/decimal"
)

// OTBasicRatio is the share of gross salary treated as basic pay for overtime
// math only. The profile's real basic field may differ; the two are kept
// deliberately decoupled.
var OTBasicRatio = decimal.RequireFromString("0.6")

// DefaultWorkDayHours applies when the company has not configured a work day
// length. Companies run either 8 or 10 hour days.
const DefaultWorkDayHours = 8

const minutesPerHour = 60

// Inputs is one employee's attendance and adjustment figures for a single
// payroll period plus the fixed salary components.
type Inputs struct {
	GrossSalary    decimal.Decimal `json:"gross_salary"`
	TotalDays      int             `json:"total_days"`
	DaysWorked     int             `json:"days_worked"`
	Advance        decimal.Decimal `json:"advance"`
	OTMinutes      int             `json:"ot_minutes"`
	ManualAddition decimal.Decimal `json:"manual_addition"`
	CashPayment    decimal.Decimal `json:"cash_payment"`
	AIT            decimal.Decimal `json:"ait"`
	Basic          decimal.Decimal `json:"basic"`
	HouseRent      decimal.Decimal `json:"house_rent"`
	Medical        decimal.Decimal `json:"medical"`
	Conveyance     decimal.Decimal `json:"conveyance"`
	CashSalary     decimal.Decimal `json:"cash_salary"`
	WorkDayHours   int             `json:"work_day_hours"`
}

type Result struct {
	AbsentDays      int             `json:"absent_days"`
	AbsentDeduction decimal.Decimal `json:"absent_deduction"`
	TotalDeduction  decimal.Decimal `json:"total_deduction"`
	OTPay           decimal.Decimal `json:"ot_pay"`
	NetPayBank      decimal.Decimal `json:"net_pay_bank"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
}

// Calculate derives one period's deductions, overtime pay, and payable
// figures. Every quotient with a zero denominator yields zero instead of
// failing, and absent days floor at zero; days_worked above total_days is not
// rejected. Pure and safe to re-invoke; manual_addition and ot_pay stay
// separate line items and are summed here, never folded into each other.
func Calculate(in Inputs) Result {
	workDayHours := in.WorkDayHours
	if workDayHours <= 0 {
		workDayHours = DefaultWorkDayHours
	}

	absentDays := in.TotalDays - in.DaysWorked
	if absentDays < 0 {
		absentDays = 0
	}

	absentDeduction := decimal.Zero
	if in.TotalDays > 0 {
		dailyBasic := in.Basic.Div(decimal.NewFromInt(int64(in.TotalDays)))
		absentDeduction = dailyBasic.Mul(decimal.NewFromInt(int64(absentDays))).Round(2)
	}

	otPay := decimal.Zero
	if in.TotalDays > 0 && in.OTMinutes > 0 {
		otHours := decimal.NewFromInt(int64(in.OTMinutes)).Div(decimal.NewFromInt(minutesPerHour))
		dailyBasicSalary := in.GrossSalary.Mul(OTBasicRatio).Div(decimal.NewFromInt(int64(in.TotalDays)))
		hourlyRate := dailyBasicSalary.Div(decimal.NewFromInt(int64(workDayHours)))
		otPay = hourlyRate.Mul(otHours).Round(2)
	}

	totalDeduction := in.AIT.Add(in.Advance).Add(absentDeduction)

	netPayBank := in.GrossSalary.
		Sub(in.CashPayment).
		Sub(totalDeduction).
		Add(in.ManualAddition).
		Add(otPay)

	totalPayable := netPayBank.Add(in.CashPayment).Add(in.AIT).Add(in.CashSalary)

	return Result{
		AbsentDays:      absentDays,
		AbsentDeduction: absentDeduction,
		TotalDeduction:  totalDeduction,
		OTPay:           otPay,
		NetPayBank:      netPayBank,
		TotalPayable:    totalPayable,
	}
}
