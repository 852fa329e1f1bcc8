package taxation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hr-payroll/internal/employee"
	"go-hr-payroll/internal/events"
	"go-hr-payroll/internal/messaging/kafka"
	"go-hr-payroll/internal/shared/contextutil"
	taxationerrors "go-hr-payroll/internal/taxation/errors"
	"go-hr-payroll/internal/taxengine"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// provisionBatchSize bounds concurrent per-employee calculations so a large
// company cannot saturate the database connection pool.
const provisionBatchSize = 3

type Service interface {
	Calculate(ctx context.Context, companyID string, req CalculateTaxRequest) (taxengine.Result, error)
	GetCachedResult(ctx context.Context, companyID, employeeID string) (taxengine.Result, error)
	Provision(ctx context.Context, companyID string, taxYear int) (ProvisionResponse, error)
}

type service struct {
	employees employee.Repository
	cache     ResultCache
	schedules map[int]taxengine.Schedule
	outbox    kafka.OutboxRepository
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	employees employee.Repository,
	cache ResultCache,
	schedules map[int]taxengine.Schedule,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("taxation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("taxation.service")
	}
	if len(schedules) == 0 {
		def := taxengine.Default2023()
		schedules = map[int]taxengine.Schedule{def.Year: def}
	}
	return &service{
		employees: employees,
		cache:     cache,
		schedules: schedules,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

// NewServiceWithOutbox additionally announces every fresh calculation on the
// tax.calculated topic.
func NewServiceWithOutbox(
	employees employee.Repository,
	cache ResultCache,
	schedules map[int]taxengine.Schedule,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	svc := NewService(employees, cache, schedules, logger...).(*service)
	svc.outbox = outbox
	return svc
}

func (s *service) scheduleFor(taxYear int) (taxengine.Schedule, error) {
	if taxYear == 0 {
		// Latest configured year wins when the caller does not pin one.
		latest := 0
		for year := range s.schedules {
			if year > latest {
				latest = year
			}
		}
		return s.schedules[latest], nil
	}

	sched, ok := s.schedules[taxYear]
	if !ok {
		return taxengine.Schedule{}, taxationerrors.ErrUnsupportedTaxYear
	}
	return sched, nil
}

func (s *service) Calculate(
	ctx context.Context,
	companyID string,
	req CalculateTaxRequest,
) (taxengine.Result, error) {
	rid := contextutil.GetRequestID(ctx)

	gender, err := taxengine.ParseGender(req.Gender)
	if err != nil {
		return taxengine.Result{}, taxationerrors.ErrUnsupportedGender
	}

	sched, err := s.scheduleFor(req.TaxYear)
	if err != nil {
		return taxengine.Result{}, err
	}

	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return taxengine.Result{}, taxationerrors.ErrEmployeeNotFound
		}

		// Profile store is down. Serve the cached result, explicitly marked
		// stale so the caller never mistakes it for a fresh figure.
		if cached, cacheErr := s.cache.Get(ctx, companyID, req.EmployeeID); cacheErr == nil {
			s.logger.Warn("profile lookup failed, serving stale cached tax result",
				zap.String("request_id", rid),
				zap.String("employee_id", req.EmployeeID),
				zap.Error(err),
			)
			cached.Stale = true
			return *cached, nil
		}

		return taxengine.Result{}, err
	}

	result, err := taxengine.Calculate(profileFromEmployee(empl), taxengine.Inputs{
		EmployeeID:  req.EmployeeID,
		Gender:      gender,
		SourceOther: req.SourceOther,
		Bonus:       req.Bonus,
	}, sched)
	if err != nil {
		return taxengine.Result{}, taxationerrors.ErrUnsupportedGender
	}

	result.ComputedAt = time.Now().UTC()

	if err := s.cache.Set(ctx, companyID, result); err != nil {
		s.logger.Error("cache tax result failed",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
	}
	if err := s.cache.InvalidateProvision(ctx, companyID); err != nil {
		s.logger.Error("invalidate provision cache failed", zap.Error(err))
	}

	s.enqueueCalculatedEvent(ctx, companyID, req.EmployeeID, sched.Year)

	s.logger.Info("tax calculated",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("tax_year", sched.Year),
		zap.Bool("should_deduct", result.TaxCalculation.ShouldDeductTax),
	)

	return result, nil
}

func (s *service) GetCachedResult(
	ctx context.Context,
	companyID, employeeID string,
) (taxengine.Result, error) {
	cached, err := s.cache.Get(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return taxengine.Result{}, taxationerrors.ErrResultNotCached
		}
		return taxengine.Result{}, err
	}

	return *cached, nil
}

// Provision aggregates the expected withholding across every employee of the
// company, computing per-employee results in bounded batches. The aggregate
// is cached; the payroll consumer invalidates it when a new batch posts.
func (s *service) Provision(
	ctx context.Context,
	companyID string,
	taxYear int,
) (ProvisionResponse, error) {
	sched, err := s.scheduleFor(taxYear)
	if err != nil {
		return ProvisionResponse{}, err
	}

	if cached, err := s.cache.GetProvision(ctx, companyID); err == nil && cached.TaxYear == sched.Year {
		return *cached, nil
	}

	key := fmt.Sprintf("provision:%s:%d", companyID, sched.Year)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.computeProvision(ctx, companyID, sched)
	})
	if err != nil {
		return ProvisionResponse{}, err
	}

	return v.(ProvisionResponse), nil
}

func (s *service) computeProvision(
	ctx context.Context,
	companyID string,
	sched taxengine.Schedule,
) (ProvisionResponse, error) {
	employees, err := s.employees.FindAllByCompany(ctx, companyID)
	if err != nil {
		return ProvisionResponse{}, err
	}

	rows := make([]ProvisionRow, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(provisionBatchSize)

	for i, empl := range employees {
		g.Go(func() error {
			gender, err := taxengine.ParseGender(empl.Gender)
			if err != nil {
				// Legacy records may carry unknown codes; surface a zero row
				// rather than sinking the whole dashboard.
				s.logger.Warn("skipping employee with unsupported gender code",
					zap.String("employee_id", empl.ID.String()),
					zap.String("gender", empl.Gender),
				)
				rows[i] = ProvisionRow{
					EmployeeID:   empl.ID.String(),
					EmployeeName: empl.FullName,
					MonthlyTDS:   decimal.Zero,
					YearlyTax:    decimal.Zero,
				}
				return nil
			}

			result, err := taxengine.Calculate(profileFromEmployee(&empl), taxengine.Inputs{
				EmployeeID: empl.ID.String(),
				Gender:     gender,
			}, sched)
			if err != nil {
				return err
			}

			rows[i] = ProvisionRow{
				EmployeeID:   empl.ID.String(),
				EmployeeName: empl.FullName,
				MonthlyTDS:   result.TaxCalculation.MonthlyTDS,
				YearlyTax:    result.TaxCalculation.TaxPayable,
			}
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return ProvisionResponse{}, err
	}

	totalMonthly := decimal.Zero
	totalYearly := decimal.Zero
	for _, row := range rows {
		totalMonthly = totalMonthly.Add(row.MonthlyTDS)
		totalYearly = totalYearly.Add(row.YearlyTax)
	}

	provision := ProvisionResponse{
		TaxYear:         sched.Year,
		EmployeeCount:   len(employees),
		TotalMonthlyTDS: totalMonthly,
		TotalYearlyTax:  totalYearly,
		Rows:            rows,
	}

	if err := s.cache.SetProvision(ctx, companyID, provision); err != nil {
		s.logger.Error("cache provision failed", zap.Error(err))
	}

	return provision, nil
}

// enqueueCalculatedEvent is best effort; a failed enqueue never fails the
// calculation the caller already received.
func (s *service) enqueueCalculatedEvent(ctx context.Context, companyID, employeeID string, taxYear int) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(events.TaxCalculatedEvent{
		EventType:  events.TaxCalculatedEventType,
		EmployeeID: employeeID,
		CompanyID:  companyID,
		TaxYear:    taxYear,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "tax_result",
		AggregateID:   employeeID,
		EventType:     events.TaxCalculatedEventType,
		Topic:         events.TaxCalculatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("enqueue tax calculated event failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}
}

func profileFromEmployee(empl *employee.Employee) taxengine.SalaryProfile {
	return taxengine.SalaryProfile{
		Basic:       empl.Basic,
		HouseRent:   empl.HouseRent,
		Medical:     empl.Medical,
		Conveyance:  empl.Conveyance,
		GrossSalary: empl.GrossSalary,
		CashSalary:  empl.CashSalary,
	}
}
