package attendance

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                  func(tx *sql.Tx) Repository
	upsertFn                  func(ctx context.Context, record *MonthlyRecord) error
	findByPeriodFn            func(ctx context.Context, companyID string, year, month int) ([]MonthlyRecord, error)
	findByEmployeeAndPeriodFn func(ctx context.Context, companyID, employeeID string, year, month int) (*MonthlyRecord, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Upsert(ctx context.Context, record *MonthlyRecord) error {
	return f.upsertFn(ctx, record)
}
func (f *fakeRepo) FindByPeriod(ctx context.Context, companyID string, year, month int) ([]MonthlyRecord, error) {
	return f.findByPeriodFn(ctx, companyID, year, month)
}
func (f *fakeRepo) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*MonthlyRecord, error) {
	return f.findByEmployeeAndPeriodFn(ctx, companyID, employeeID, year, month)
}

func TestService_Upsert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	ctx := context.Background()

	var saved MonthlyRecord
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.upsertFn = func(ctx context.Context, record *MonthlyRecord) error {
		saved = *record
		return nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Upsert(ctx, companyID, UpsertMonthlyRecordRequest{
		EmployeeID: employeeID,
		Year:       2024,
		Month:      3,
		TotalDays:  30,
		DaysWorked: 28,
		OTMinutes:  600,
		Advance:    decimal.RequireFromString("1500"),
		AIT:        decimal.RequireFromString("500"),
	})
	assert.NoError(t, err)
	assert.Equal(t, employeeID, resp.EmployeeID)
	assert.Equal(t, 28, saved.DaysWorked)
	assert.True(t, saved.Advance.Equal(decimal.RequireFromString("1500")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Upsert_NegativeAdjustment(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	svc := NewService(db, repo)

	_, err := svc.Upsert(context.Background(), uuid.New().String(), UpsertMonthlyRecordRequest{
		EmployeeID: uuid.New().String(),
		Year:       2024,
		Month:      3,
		Advance:    decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, ErrNegativeAdjustment)
}

func TestService_GetByEmployee_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByEmployeeAndPeriodFn = func(ctx context.Context, companyID, employeeID string, year, month int) (*MonthlyRecord, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	_, err := svc.GetByEmployee(context.Background(), uuid.New().String(), uuid.New().String(), 2024, 3)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestService_GetByPeriod_MapsEmployeeName(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New()
	employeeID := uuid.New()

	repo := &fakeRepo{}
	repo.findByPeriodFn = func(ctx context.Context, cid string, year, month int) ([]MonthlyRecord, error) {
		return []MonthlyRecord{{
			ID:         uuid.New(),
			CompanyID:  companyID,
			EmployeeID: employeeID,
			Year:       year,
			Month:      month,
			TotalDays:  30,
			DaysWorked: 30,
			Employee:   &EmployeeRef{ID: employeeID, FullName: "Rahim Uddin"},
		}}, nil
	}

	svc := NewService(db, repo)
	resp, err := svc.GetByPeriod(context.Background(), companyID.String(), 2024, 3)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Rahim Uddin", resp[0].EmployeeName)
}
