package app

import (
	"database/sql"

	"go-hr-payroll/internal/attendance"
	"go-hr-payroll/internal/employee"
	"go-hr-payroll/internal/messaging/kafka"
	"go-hr-payroll/internal/middleware"
	"go-hr-payroll/internal/salaryrecord"
	"go-hr-payroll/internal/shared/counter"
	"go-hr-payroll/internal/taxation"
	"go-hr-payroll/internal/taxengine"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	salaryRecordRepo := salaryrecord.NewRepository(gormDB)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	salaryRecordService := salaryrecord.NewService(
		db, salaryRecordRepo, attendanceRepo, employeeRepo, counterRepo, outboxRepo,
	)

	defaultSchedule := taxengine.Default2023()
	taxationService := taxation.NewServiceWithOutbox(
		employeeRepo,
		taxation.NewRedisResultCache(rdb),
		map[int]taxengine.Schedule{defaultSchedule.Year: defaultSchedule},
		outboxRepo,
	)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	employeeHandler := employee.NewHandler(employeeService)
	salaryRecordHandler := salaryrecord.NewHandlerWithRedis(salaryRecordService, rdb)
	taxationHandler := taxation.NewHandler(taxationService)

	// --- Routes Registration ---
	router.Use(middleware.RateLimitByIP(20, 40))

	api := router.Group("/api/v1")
	api.Use(middleware.CompanyScope(), middleware.ContextLogger(logger))
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		employee.RegisterRoutes(api, employeeHandler)
		salaryrecord.RegisterRoutes(api, salaryRecordHandler, rdb)
		taxation.RegisterRoutes(api, taxationHandler)
	}

	return nil
}
