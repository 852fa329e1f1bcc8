package consumer

import (
	"context"
	"encoding/json"

	"go-hr-payroll/internal/events"
	"go-hr-payroll/internal/taxation"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeSalaryPosted drops the company's cached tax provision whenever a
// payroll batch lands, so the next provision read reflects the new figures.
func ConsumeSalaryPosted(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.salary_posted")
	log.Info("salary posted consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("salary posted consumer stopped")
				return
			}
			log.Error("fetch salary posted message failed", zap.Error(err))
			continue
		}

		var event events.SalaryPostedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode salary posted event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := rdb.Del(ctx, taxation.ProvisionKey(event.CompanyID)).Err(); err != nil {
			log.Error("invalidate provision cache failed",
				zap.String("company_id", event.CompanyID),
				zap.String("batch_no", event.BatchNo),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary posted message failed", zap.Error(err))
			continue
		}

		log.Info("provision cache invalidated from salary posted event",
			zap.String("company_id", event.CompanyID),
			zap.String("batch_no", event.BatchNo),
			zap.Int("year", event.Year),
			zap.Int("month", event.Month),
		)
	}
}
