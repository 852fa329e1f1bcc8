package consumer

import (
	"context"
	"encoding/json"

	"go-hr-payroll/internal/employee"
	"go-hr-payroll/internal/events"
	"go-hr-payroll/internal/taxation"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeCreated drops the company's cached provision aggregate and
// employee options list when headcount changes, so instances other than the
// one that served the write converge too.
func ConsumeEmployeeCreated(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_created")
	log.Info("employee created consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee created consumer stopped")
				return
			}
			log.Error("fetch employee created message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := rdb.Del(ctx,
			taxation.ProvisionKey(event.CompanyID),
			employee.GetOptionsKey(event.CompanyID),
		).Err(); err != nil {
			log.Error("invalidate company caches failed",
				zap.String("company_id", event.CompanyID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee created message failed", zap.Error(err))
			continue
		}

		log.Info("company caches invalidated from employee created event",
			zap.String("company_id", event.CompanyID),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
