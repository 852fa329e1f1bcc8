package employee

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	EmployeeNumber string          `json:"employee_number"`
	FullName       string          `json:"full_name" binding:"required"`
	Email          string          `json:"email" binding:"required,email"`
	Gender         string          `json:"gender" binding:"required"`
	Designation    string          `json:"designation"`
	JoiningDate    string          `json:"joining_date" binding:"required"`
	Basic          decimal.Decimal `json:"basic"`
	HouseRent      decimal.Decimal `json:"house_rent"`
	Medical        decimal.Decimal `json:"medical"`
	Conveyance     decimal.Decimal `json:"conveyance"`
	GrossSalary    decimal.Decimal `json:"gross_salary"`
	CashSalary     decimal.Decimal `json:"cash_salary"`
}

type UpdateEmployeeRequest struct {
	FullName    string          `json:"full_name" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	Gender      string          `json:"gender" binding:"required"`
	Designation string          `json:"designation"`
	Basic       decimal.Decimal `json:"basic"`
	HouseRent   decimal.Decimal `json:"house_rent"`
	Medical     decimal.Decimal `json:"medical"`
	Conveyance  decimal.Decimal `json:"conveyance"`
	GrossSalary decimal.Decimal `json:"gross_salary"`
	CashSalary  decimal.Decimal `json:"cash_salary"`
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	EmployeeNumber string          `json:"employee_number"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Gender         string          `json:"gender"`
	Designation    string          `json:"designation,omitempty"`
	JoiningDate    string          `json:"joining_date"`
	Basic          decimal.Decimal `json:"basic"`
	HouseRent      decimal.Decimal `json:"house_rent"`
	Medical        decimal.Decimal `json:"medical"`
	Conveyance     decimal.Decimal `json:"conveyance"`
	GrossSalary    decimal.Decimal `json:"gross_salary"`
	CashSalary     decimal.Decimal `json:"cash_salary"`
}
