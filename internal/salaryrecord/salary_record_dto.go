package salaryrecord

import "github.com/shopspring/decimal"

type SalaryRowRequest struct {
	EmployeeID     string          `json:"employee_id" binding:"required,uuid"`
	GrossSalary    decimal.Decimal `json:"gross_salary"`
	TotalDays      int             `json:"total_days" binding:"min=0,max=31"`
	DaysWorked     int             `json:"days_worked" binding:"min=0"`
	OTMinutes      int             `json:"ot_minutes" binding:"min=0"`
	Advance        decimal.Decimal `json:"advance"`
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

type SaveSalariesRequest struct {
	Year  int                `json:"year" binding:"required,min=2000,max=2100"`
	Month int                `json:"month" binding:"required,min=1,max=12"`
	Rows  []SalaryRowRequest `json:"rows" binding:"required,min=1,dive"`
}

type GenerateSalariesRequest struct {
	Year         int `json:"year" binding:"required,min=2000,max=2100"`
	Month        int `json:"month" binding:"required,min=1,max=12"`
	WorkDayHours int `json:"work_day_hours" binding:"omitempty,min=1,max=24"`
}

type SalaryRecordResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	BatchNo      string `json:"batch_no"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`

	GrossSalary    decimal.Decimal `json:"gross_salary"`
	TotalDays      int             `json:"total_days"`
	DaysWorked     int             `json:"days_worked"`
	OTMinutes      int             `json:"ot_minutes"`
	Advance        decimal.Decimal `json:"advance"`
	ManualAddition decimal.Decimal `json:"manual_addition"`
	CashPayment    decimal.Decimal `json:"cash_payment"`
	AIT            decimal.Decimal `json:"ait"`
	CashSalary     decimal.Decimal `json:"cash_salary"`
	WorkDayHours   int             `json:"work_day_hours"`

	AbsentDays      int             `json:"absent_days"`
	AbsentDeduction decimal.Decimal `json:"absent_deduction"`
	TotalDeduction  decimal.Decimal `json:"total_deduction"`
	OTPay           decimal.Decimal `json:"ot_pay"`
	NetPayBank      decimal.Decimal `json:"net_pay_bank"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
}

type SaveSalariesResponse struct {
	BatchNo string                 `json:"batch_no"`
	Year    int                    `json:"year"`
	Month   int                    `json:"month"`
	Rows    []SalaryRecordResponse `json:"rows"`
}
