package salaryrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hr-payroll/internal/attendance"
	"go-hr-payroll/internal/employee"
	"go-hr-payroll/internal/events"
	"go-hr-payroll/internal/messaging/kafka"
	"go-hr-payroll/internal/payrollcalc"
	salaryrecorderrors "go-hr-payroll/internal/salaryrecord/errors"
	"go-hr-payroll/internal/shared/contextutil"
	"go-hr-payroll/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// generateConcurrency caps parallel employee lookups when a batch is built
// from attendance records.
const generateConcurrency = 3

type Service interface {
	SaveBatch(ctx context.Context, companyID string, req SaveSalariesRequest) (SaveSalariesResponse, error)
	GenerateFromAttendance(ctx context.Context, companyID string, req GenerateSalariesRequest) (SaveSalariesResponse, error)
	GetAll(ctx context.Context, companyID string, filter QueryFilter) ([]SalaryRecordResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	attendance attendance.Repository
	employees  employee.Repository
	counter    counter.Repository
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salaryrecord.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryrecord.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		attendance: attendanceRepo,
		employees:  employeeRepo,
		counter:    counterRepo,
		outbox:     outboxRepo,
		logger:     l,
	}
}

func (s *service) SaveBatch(
	ctx context.Context,
	companyID string,
	req SaveSalariesRequest,
) (SaveSalariesResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("save salary batch requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("rows", len(req.Rows)),
	)

	if err := validateRows(req.Rows); err != nil {
		return SaveSalariesResponse{}, err
	}

	for _, row := range req.Rows {
		ok, err := s.repo.EmployeeBelongsToCompany(ctx, companyID, row.EmployeeID)
		if err != nil {
			return SaveSalariesResponse{}, err
		}
		if !ok {
			return SaveSalariesResponse{}, salaryrecorderrors.ErrEmployeeNotInCompany
		}
	}

	return s.persistBatch(ctx, companyID, req.Year, req.Month, req.Rows)
}

func (s *service) GenerateFromAttendance(
	ctx context.Context,
	companyID string,
	req GenerateSalariesRequest,
) (SaveSalariesResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("generate salary batch requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
	)

	records, err := s.attendance.FindByPeriod(ctx, companyID, req.Year, req.Month)
	if err != nil {
		return SaveSalariesResponse{}, err
	}
	if len(records) == 0 {
		return SaveSalariesResponse{}, salaryrecorderrors.ErrNoAttendanceRecords
	}

	workDayHours := req.WorkDayHours
	if workDayHours <= 0 {
		workDayHours = payrollcalc.DefaultWorkDayHours
	}

	rows := make([]SalaryRowRequest, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(generateConcurrency)
	for i, record := range records {
		g.Go(func() error {
			empl, err := s.employees.FindByIDAndCompany(gctx, companyID, record.EmployeeID.String())
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return salaryrecorderrors.ErrEmployeeNotInCompany
				}
				return err
			}

			rows[i] = SalaryRowRequest{
				EmployeeID:     record.EmployeeID.String(),
				GrossSalary:    empl.GrossSalary,
				TotalDays:      record.TotalDays,
				DaysWorked:     record.DaysWorked,
				OTMinutes:      record.OTMinutes,
				Advance:        record.Advance,
				ManualAddition: record.ManualAddition,
				CashPayment:    record.CashPayment,
				AIT:            record.AIT,
				Basic:          empl.Basic,
				HouseRent:      empl.HouseRent,
				Medical:        empl.Medical,
				Conveyance:     empl.Conveyance,
				CashSalary:     empl.CashSalary,
				WorkDayHours:   workDayHours,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SaveSalariesResponse{}, err
	}

	return s.persistBatch(ctx, companyID, req.Year, req.Month, rows)
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter QueryFilter,
) ([]SalaryRecordResponse, error) {
	records, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(records), nil
}

// persistBatch writes every computed row plus the batch's outbox event in a
// single transaction, so a posted batch and its salary.posted announcement
// commit or roll back together.
func (s *service) persistBatch(
	ctx context.Context,
	companyID string,
	year, month int,
	rows []SalaryRowRequest,
) (SaveSalariesResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	nextVal, err := s.counter.GetNextValue(ctx, companyID, counter.TypeSalaryBatch)
	if err != nil {
		s.logger.Error("generate batch number failed", zap.String("request_id", rid), zap.Error(err))
		return SaveSalariesResponse{}, err
	}
	batchNo := fmt.Sprintf("SAL-%04d%02d-%05d", year, month, nextVal)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("save salary batch begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SaveSalariesResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	saved := make([]SalaryRecordResponse, 0, len(rows))
	for _, row := range rows {
		record := buildRecord(companyID, batchNo, year, month, row)
		if err := qtx.Upsert(ctx, record); err != nil {
			s.logger.Error("upsert salary record failed",
				zap.String("request_id", rid),
				zap.String("employee_id", row.EmployeeID),
				zap.Error(err),
			)
			return SaveSalariesResponse{}, err
		}
		saved = append(saved, mapToResponse(*record))
	}

	payload, err := json.Marshal(events.SalaryPostedEvent{
		EventType:  events.SalaryPostedEventType,
		BatchNo:    batchNo,
		CompanyID:  companyID,
		Year:       year,
		Month:      month,
		RowCount:   len(saved),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return SaveSalariesResponse{}, err
	}

	outboxTx := s.outbox.WithTx(tx)
	if err := outboxTx.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "salary_batch",
		AggregateID:   companyID,
		EventType:     events.SalaryPostedEventType,
		Topic:         events.SalaryPostedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("create outbox event failed", zap.String("request_id", rid), zap.Error(err))
		return SaveSalariesResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SaveSalariesResponse{}, err
	}

	s.logger.Info("salary batch posted",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("batch_no", batchNo),
		zap.Int("rows", len(saved)),
	)

	return SaveSalariesResponse{
		BatchNo: batchNo,
		Year:    year,
		Month:   month,
		Rows:    saved,
	}, nil
}

func validateRows(rows []SalaryRowRequest) error {
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, dup := seen[row.EmployeeID]; dup {
			return salaryrecorderrors.ErrDuplicateEmployeeRow
		}
		seen[row.EmployeeID] = struct{}{}

		for _, amount := range []decimal.Decimal{
			row.GrossSalary, row.Advance, row.ManualAddition, row.CashPayment,
			row.AIT, row.Basic, row.HouseRent, row.Medical, row.Conveyance, row.CashSalary,
		} {
			if amount.IsNegative() {
				return salaryrecorderrors.ErrNegativeMoneyValue
			}
		}
	}
	return nil
}

func buildRecord(companyID, batchNo string, year, month int, row SalaryRowRequest) *SalaryRecord {
	result := payrollcalc.Calculate(payrollcalc.Inputs{
		GrossSalary:    row.GrossSalary,
		TotalDays:      row.TotalDays,
		DaysWorked:     row.DaysWorked,
		Advance:        row.Advance,
		OTMinutes:      row.OTMinutes,
		ManualAddition: row.ManualAddition,
		CashPayment:    row.CashPayment,
		AIT:            row.AIT,
		Basic:          row.Basic,
		HouseRent:      row.HouseRent,
		Medical:        row.Medical,
		Conveyance:     row.Conveyance,
		CashSalary:     row.CashSalary,
		WorkDayHours:   row.WorkDayHours,
	})

	workDayHours := row.WorkDayHours
	if workDayHours <= 0 {
		workDayHours = payrollcalc.DefaultWorkDayHours
	}

	return &SalaryRecord{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(companyID),
		EmployeeID: uuid.MustParse(row.EmployeeID),
		BatchNo:    batchNo,
		Year:       year,
		Month:      month,

		GrossSalary:    row.GrossSalary,
		TotalDays:      row.TotalDays,
		DaysWorked:     row.DaysWorked,
		OTMinutes:      row.OTMinutes,
		Advance:        row.Advance,
		ManualAddition: row.ManualAddition,
		CashPayment:    row.CashPayment,
		AIT:            row.AIT,
		Basic:          row.Basic,
		HouseRent:      row.HouseRent,
		Medical:        row.Medical,
		Conveyance:     row.Conveyance,
		CashSalary:     row.CashSalary,
		WorkDayHours:   workDayHours,

		AbsentDays:      result.AbsentDays,
		AbsentDeduction: result.AbsentDeduction,
		TotalDeduction:  result.TotalDeduction,
		OTPay:           result.OTPay,
		NetPayBank:      result.NetPayBank,
		TotalPayable:    result.TotalPayable,
	}
}

func mapToResponse(record SalaryRecord) SalaryRecordResponse {
	resp := SalaryRecordResponse{
		ID:         record.ID.String(),
		CompanyID:  record.CompanyID.String(),
		EmployeeID: record.EmployeeID.String(),
		BatchNo:    record.BatchNo,
		Year:       record.Year,
		Month:      record.Month,

		GrossSalary:    record.GrossSalary,
		TotalDays:      record.TotalDays,
		DaysWorked:     record.DaysWorked,
		OTMinutes:      record.OTMinutes,
		Advance:        record.Advance,
		ManualAddition: record.ManualAddition,
		CashPayment:    record.CashPayment,
		AIT:            record.AIT,
		CashSalary:     record.CashSalary,
		WorkDayHours:   record.WorkDayHours,

		AbsentDays:      record.AbsentDays,
		AbsentDeduction: record.AbsentDeduction,
		TotalDeduction:  record.TotalDeduction,
		OTPay:           record.OTPay,
		NetPayBank:      record.NetPayBank,
		TotalPayable:    record.TotalPayable,
	}
	if record.Employee != nil {
		resp.EmployeeName = record.Employee.FullName
	}
	return resp
}

func mapToListResponse(records []SalaryRecord) []SalaryRecordResponse {
	resp := make([]SalaryRecordResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp
}
