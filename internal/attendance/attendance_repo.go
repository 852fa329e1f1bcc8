package attendance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, record *MonthlyRecord) error
	FindByPeriod(ctx context.Context, companyID string, year, month int) ([]MonthlyRecord, error)
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*MonthlyRecord, error)
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

func (r *repository) Upsert(ctx context.Context, record *MonthlyRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"}, {Name: "employee_id"}, {Name: "year"}, {Name: "month"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_days", "days_worked", "ot_minutes",
				"advance", "manual_addition", "cash_payment", "ait", "updated_at",
			}),
		}).
		Create(record).Error
}

func (r *repository) FindByPeriod(ctx context.Context, companyID string, year, month int) ([]MonthlyRecord, error) {
	var records []MonthlyRecord
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("company_id = ?", companyID).
		Where("year = ?", year).
		Where("month = ?", month).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*MonthlyRecord, error) {
	var record MonthlyRecord
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Where("month = ?", month).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
