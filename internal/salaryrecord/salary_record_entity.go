package salaryrecord

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryRecord is one employee's persisted payroll row for a period: the raw
// attendance/adjustment inputs alongside the derived figures, so a posted
// batch stays auditable even if the calculation rules change later.
type SalaryRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_record_period"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_record_period"`
	BatchNo    string    `gorm:"type:varchar(40);not null;index"`
	Year       int       `gorm:"not null;uniqueIndex:uq_salary_record_period"`
	Month      int       `gorm:"not null;uniqueIndex:uq_salary_record_period"`

	// Inputs
	GrossSalary    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDays      int             `gorm:"not null;default:0"`
	DaysWorked     int             `gorm:"not null;default:0"`
	OTMinutes      int             `gorm:"not null;default:0"`
	Advance        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ManualAddition decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CashPayment    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	AIT            decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Basic          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	HouseRent      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Medical        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Conveyance     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CashSalary     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	WorkDayHours   int             `gorm:"not null;default:8"`

	// Derived
	AbsentDays      int             `gorm:"not null;default:0"`
	AbsentDeduction decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDeduction  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OTPay           decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetPayBank      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalPayable    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (SalaryRecord) TableName() string {
	return "salary_records"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
