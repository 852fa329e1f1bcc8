package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyRecord is one employee's attendance and payroll adjustments for a
// single period. It feeds the payroll aggregation: days worked, overtime
// minutes, advance, manual addition, cash payment, and advance income tax.
type MonthlyRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_period"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_period"`
	Year       int       `gorm:"not null;uniqueIndex:uq_attendance_period"`
	Month      int       `gorm:"not null;uniqueIndex:uq_attendance_period"`

	TotalDays  int `gorm:"not null;default:0"`
	DaysWorked int `gorm:"not null;default:0"`
	OTMinutes  int `gorm:"not null;default:0"`

	Advance        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ManualAddition decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CashPayment    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	AIT            decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (MonthlyRecord) TableName() string {
	return "attendance_monthly_records"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
