package attendance

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"go-hr-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found for this period",
		http.StatusNotFound,
	)
	ErrNegativeAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"adjustment amounts cannot be negative",
		http.StatusBadRequest,
	)
)

type Service interface {
	Upsert(ctx context.Context, companyID string, req UpsertMonthlyRecordRequest) (MonthlyRecordResponse, error)
	GetByPeriod(ctx context.Context, companyID string, year, month int) ([]MonthlyRecordResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string, year, month int) (MonthlyRecordResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Upsert(
	ctx context.Context,
	companyID string,
	req UpsertMonthlyRecordRequest,
) (MonthlyRecordResponse, error) {
	for _, v := range []bool{
		req.Advance.IsNegative(),
		req.ManualAddition.IsNegative(),
		req.CashPayment.IsNegative(),
		req.AIT.IsNegative(),
	} {
		if v {
			return MonthlyRecordResponse{}, ErrNegativeAdjustment
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MonthlyRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record := &MonthlyRecord{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		EmployeeID:     uuid.MustParse(req.EmployeeID),
		Year:           req.Year,
		Month:          req.Month,
		TotalDays:      req.TotalDays,
		DaysWorked:     req.DaysWorked,
		OTMinutes:      req.OTMinutes,
		Advance:        req.Advance,
		ManualAddition: req.ManualAddition,
		CashPayment:    req.CashPayment,
		AIT:            req.AIT,
	}

	if err := qtx.Upsert(ctx, record); err != nil {
		return MonthlyRecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return MonthlyRecordResponse{}, err
	}

	return mapToResponse(*record), nil
}

func (s *service) GetByPeriod(
	ctx context.Context,
	companyID string,
	year, month int,
) ([]MonthlyRecordResponse, error) {
	records, err := s.repo.FindByPeriod(ctx, companyID, year, month)
	if err != nil {
		return nil, err
	}

	resp := make([]MonthlyRecordResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp, nil
}

func (s *service) GetByEmployee(
	ctx context.Context,
	companyID, employeeID string,
	year, month int,
) (MonthlyRecordResponse, error) {
	record, err := s.repo.FindByEmployeeAndPeriod(ctx, companyID, employeeID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MonthlyRecordResponse{}, ErrRecordNotFound
		}
		return MonthlyRecordResponse{}, err
	}

	return mapToResponse(*record), nil
}

func mapToResponse(record MonthlyRecord) MonthlyRecordResponse {
	resp := MonthlyRecordResponse{
		ID:             record.ID.String(),
		CompanyID:      record.CompanyID.String(),
		EmployeeID:     record.EmployeeID.String(),
		Year:           record.Year,
		Month:          record.Month,
		TotalDays:      record.TotalDays,
		DaysWorked:     record.DaysWorked,
		OTMinutes:      record.OTMinutes,
		Advance:        record.Advance,
		ManualAddition: record.ManualAddition,
		CashPayment:    record.CashPayment,
		AIT:            record.AIT,
	}
	if record.Employee != nil {
		resp.EmployeeName = record.Employee.FullName
	}
	return resp
}
