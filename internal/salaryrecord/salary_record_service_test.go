package salaryrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"go-hr-payroll/internal/attendance"
	"go-hr-payroll/internal/employee"
	"go-hr-payroll/internal/events"
	"go-hr-payroll/internal/messaging/kafka"
	salaryrecorderrors "go-hr-payroll/internal/salaryrecord/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn                   func(tx *sql.Tx) Repository
	upsertFn                   func(ctx context.Context, record *SalaryRecord) error
	findAllByCompanyFn         func(ctx context.Context, companyID string, filter QueryFilter) ([]SalaryRecord, error)
	employeeBelongsToCompanyFn func(ctx context.Context, companyID, employeeID string) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Upsert(ctx context.Context, record *SalaryRecord) error {
	return f.upsertFn(ctx, record)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string, filter QueryFilter) ([]SalaryRecord, error) {
	return f.findAllByCompanyFn(ctx, companyID, filter)
}
func (f *fakeRepo) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	return f.employeeBelongsToCompanyFn(ctx, companyID, employeeID)
}

type fakeAttendanceRepo struct {
	findByPeriodFn func(ctx context.Context, companyID string, year, month int) ([]attendance.MonthlyRecord, error)
}

func (f *fakeAttendanceRepo) WithTx(tx *sql.Tx) attendance.Repository { return f }
func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record *attendance.MonthlyRecord) error {
	return errors.New("not implemented")
}
func (f *fakeAttendanceRepo) FindByPeriod(ctx context.Context, companyID string, year, month int) ([]attendance.MonthlyRecord, error) {
	return f.findByPeriodFn(ctx, companyID, year, month)
}
func (f *fakeAttendanceRepo) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*attendance.MonthlyRecord, error) {
	return nil, errors.New("not implemented")
}

type fakeEmployeeRepo struct {
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	return errors.New("not implemented")
}
func (f *fakeEmployeeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeEmployeeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, empl *employee.Employee) error {
	return errors.New("not implemented")
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, companyID, id string) error {
	return errors.New("not implemented")
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func validRow(employeeID string) SalaryRowRequest {
	return SalaryRowRequest{
		EmployeeID:  employeeID,
		GrossSalary: decimal.RequireFromString("50000"),
		TotalDays:   30,
		DaysWorked:  28,
		OTMinutes:   120,
		Advance:     decimal.RequireFromString("1000"),
		AIT:         decimal.RequireFromString("500"),
		Basic:       decimal.RequireFromString("30000"),
	}
}

func TestService_SaveBatch(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	var saved []SalaryRecord
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.upsertFn = func(ctx context.Context, record *SalaryRecord) error {
		saved = append(saved, *record)
		return nil
	}
	repo.employeeBelongsToCompanyFn = func(ctx context.Context, cid, eid string) (bool, error) {
		return true, nil
	}

	outbox := &fakeOutbox{}
	svc := NewService(db, repo, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeCounter{}, outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.SaveBatch(context.Background(), companyID, SaveSalariesRequest{
		Year:  2024,
		Month: 3,
		Rows:  []SalaryRowRequest{validRow(employeeID)},
	})
	assert.NoError(t, err)
	assert.Equal(t, "SAL-202403-00001", resp.BatchNo)
	assert.Len(t, resp.Rows, 1)

	// Derived figures persist alongside the inputs.
	assert.Len(t, saved, 1)
	assert.Equal(t, 2, saved[0].AbsentDays)
	assert.True(t, saved[0].AbsentDeduction.Equal(decimal.RequireFromString("2000")))
	assert.True(t, saved[0].TotalDeduction.Equal(decimal.RequireFromString("3500")))

	// Batch commit writes exactly one outbox event.
	assert.Len(t, outbox.created, 1)
	assert.Equal(t, events.SalaryPostedTopic, outbox.created[0].Topic)
	assert.Equal(t, kafka.OutboxStatusPending, outbox.created[0].Status)

	var event events.SalaryPostedEvent
	assert.NoError(t, json.Unmarshal(outbox.created[0].Payload, &event))
	assert.Equal(t, resp.BatchNo, event.BatchNo)
	assert.Equal(t, 1, event.RowCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SaveBatch_DuplicateEmployeeRow(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	svc := NewService(db, &fakeRepo{}, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeCounter{}, &fakeOutbox{})

	_, err := svc.SaveBatch(context.Background(), uuid.New().String(), SaveSalariesRequest{
		Year:  2024,
		Month: 3,
		Rows:  []SalaryRowRequest{validRow(employeeID), validRow(employeeID)},
	})
	assert.ErrorIs(t, err, salaryrecorderrors.ErrDuplicateEmployeeRow)
}

func TestService_SaveBatch_NegativeAmount(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeCounter{}, &fakeOutbox{})

	row := validRow(uuid.New().String())
	row.Advance = decimal.RequireFromString("-1")
	_, err := svc.SaveBatch(context.Background(), uuid.New().String(), SaveSalariesRequest{
		Year:  2024,
		Month: 3,
		Rows:  []SalaryRowRequest{row},
	})
	assert.ErrorIs(t, err, salaryrecorderrors.ErrNegativeMoneyValue)
}

func TestService_SaveBatch_EmployeeNotInCompany(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.employeeBelongsToCompanyFn = func(ctx context.Context, cid, eid string) (bool, error) {
		return false, nil
	}

	svc := NewService(db, repo, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeCounter{}, &fakeOutbox{})

	_, err := svc.SaveBatch(context.Background(), uuid.New().String(), SaveSalariesRequest{
		Year:  2024,
		Month: 3,
		Rows:  []SalaryRowRequest{validRow(uuid.New().String())},
	})
	assert.ErrorIs(t, err, salaryrecorderrors.ErrEmployeeNotInCompany)
}

func TestService_GenerateFromAttendance(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New()
	employeeID := uuid.New()

	attendanceRepo := &fakeAttendanceRepo{}
	attendanceRepo.findByPeriodFn = func(ctx context.Context, cid string, year, month int) ([]attendance.MonthlyRecord, error) {
		return []attendance.MonthlyRecord{{
			ID:         uuid.New(),
			CompanyID:  companyID,
			EmployeeID: employeeID,
			Year:       year,
			Month:      month,
			TotalDays:  30,
			DaysWorked: 28,
			OTMinutes:  120,
			Advance:    decimal.RequireFromString("1000"),
			AIT:        decimal.RequireFromString("500"),
		}}, nil
	}

	employeeRepo := &fakeEmployeeRepo{}
	employeeRepo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
		return &employee.Employee{
			ID:          employeeID,
			CompanyID:   companyID,
			FullName:    "Karim Ahmed",
			Basic:       decimal.RequireFromString("30000"),
			GrossSalary: decimal.RequireFromString("50000"),
		}, nil
	}

	var saved []SalaryRecord
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.upsertFn = func(ctx context.Context, record *SalaryRecord) error {
		saved = append(saved, *record)
		return nil
	}

	svc := NewService(db, repo, attendanceRepo, employeeRepo, &fakeCounter{}, &fakeOutbox{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.GenerateFromAttendance(context.Background(), companyID.String(), GenerateSalariesRequest{
		Year:  2024,
		Month: 3,
	})
	assert.NoError(t, err)
	assert.Len(t, resp.Rows, 1)
	assert.Len(t, saved, 1)

	// Profile and attendance figures merge into the same calculation the
	// manual save path runs.
	assert.Equal(t, 2, saved[0].AbsentDays)
	assert.True(t, saved[0].AbsentDeduction.Equal(decimal.RequireFromString("2000")))
	assert.True(t, saved[0].GrossSalary.Equal(decimal.RequireFromString("50000")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GenerateFromAttendance_NoRecords(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	attendanceRepo := &fakeAttendanceRepo{}
	attendanceRepo.findByPeriodFn = func(ctx context.Context, cid string, year, month int) ([]attendance.MonthlyRecord, error) {
		return nil, nil
	}

	svc := NewService(db, &fakeRepo{}, attendanceRepo, &fakeEmployeeRepo{}, &fakeCounter{}, &fakeOutbox{})

	_, err := svc.GenerateFromAttendance(context.Background(), uuid.New().String(), GenerateSalariesRequest{
		Year:  2024,
		Month: 3,
	})
	assert.ErrorIs(t, err, salaryrecorderrors.ErrNoAttendanceRecords)
}

func TestService_GetAll_MapsEmployeeName(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	repo := &fakeRepo{}
	repo.findAllByCompanyFn = func(ctx context.Context, cid string, filter QueryFilter) ([]SalaryRecord, error) {
		assert.Equal(t, 2024, filter.Year)
		return []SalaryRecord{{
			ID:         uuid.New(),
			CompanyID:  uuid.New(),
			EmployeeID: employeeID,
			BatchNo:    "SAL-202403-00001",
			Year:       2024,
			Month:      3,
			Employee:   &EmployeeRef{ID: employeeID, FullName: "Karim Ahmed"},
		}}, nil
	}

	svc := NewService(db, repo, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeCounter{}, &fakeOutbox{})

	resp, err := svc.GetAll(context.Background(), uuid.New().String(), QueryFilter{Year: 2024})
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Karim Ahmed", resp[0].EmployeeName)
}
