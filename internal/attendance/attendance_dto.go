package attendance

import "github.com/shopspring/decimal"

type UpsertMonthlyRecordRequest struct {
	EmployeeID     string          `json:"employee_id" binding:"required,uuid"`
	Year           int             `json:"year" binding:"required,min=2000,max=2100"`
	Month          int             `json:"month" binding:"required,min=1,max=12"`
	TotalDays      int             `json:"total_days" binding:"min=0,max=31"`
	DaysWorked     int             `json:"days_worked" binding:"min=0"`
	OTMinutes      int             `json:"ot_minutes" binding:"min=0"`
	Advance        decimal.Decimal `json:"advance"`
	ManualAddition decimal.Decimal `json:"manual_addition"`
	CashPayment    decimal.Decimal `json:"cash_payment"`
	AIT            decimal.Decimal `json:"ait"`
}

type MonthlyRecordResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name,omitempty"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	TotalDays      int             `json:"total_days"`
	DaysWorked     int             `json:"days_worked"`
	OTMinutes      int             `json:"ot_minutes"`
	Advance        decimal.Decimal `json:"advance"`
	ManualAddition decimal.Decimal `json:"manual_addition"`
	CashPayment    decimal.Decimal `json:"cash_payment"`
	AIT            decimal.Decimal `json:"ait"`
}
