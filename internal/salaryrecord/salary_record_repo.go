package salaryrecord

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QueryFilter struct {
	Year  int
	Month int
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, record *SalaryRecord) error
	FindAllByCompany(ctx context.Context, companyID string, filter QueryFilter) ([]SalaryRecord, error)
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository to tx so its statements join the caller's
// transaction instead of autocommitting on the pool.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

// Upsert replaces the existing row for the employee/period so reposting a
// month overwrites rather than duplicates.
func (r *repository) Upsert(ctx context.Context, record *SalaryRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"}, {Name: "employee_id"}, {Name: "year"}, {Name: "month"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"batch_no",
				"gross_salary", "total_days", "days_worked", "ot_minutes",
				"advance", "manual_addition", "cash_payment", "ait",
				"basic", "house_rent", "medical", "conveyance", "cash_salary",
				"work_day_hours",
				"absent_days", "absent_deduction", "total_deduction",
				"ot_pay", "net_pay_bank", "total_payable",
				"updated_at",
			}),
		}).
		Create(record).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter QueryFilter) ([]SalaryRecord, error) {
	query := r.db.WithContext(ctx).
		Preload("Employee").
		Where("company_id = ?", companyID)

	if filter.Year > 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Month > 0 {
		query = query.Where("month = ?", filter.Month)
	}

	var records []SalaryRecord
	err := query.
		Order("year DESC").
		Order("month DESC").
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
