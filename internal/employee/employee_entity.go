package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is the HR record plus the fixed monthly salary profile used by the
// tax and payroll calculations. Amounts are whole local-currency units stored
// as numeric to keep fractional adjustments exact.
type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeNumber string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_employee_number_company"`
	FullName       string    `gorm:"type:varchar(120);not null"`
	Email          string    `gorm:"type:varchar(120);not null"`
	Gender         string    `gorm:"type:varchar(10);not null"`
	Designation    string    `gorm:"type:varchar(80)"`
	JoiningDate    time.Time `gorm:"type:date"`

	Basic       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	HouseRent   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Medical     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Conveyance  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	GrossSalary decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CashSalary  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
