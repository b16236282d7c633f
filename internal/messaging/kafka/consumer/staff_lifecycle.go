package consumer

import (
	"context"
	"encoding/json"

	"github.com/Yaseenhassan/college-leave-app/internal/events"
	"github.com/Yaseenhassan/college-leave-app/internal/leavebalance"
	"github.com/Yaseenhassan/college-leave-app/internal/shared/academicyear"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeStaffLifecycle seeds default leave entitlements for every staff
// member announced on the lifecycle topic. Seeding skips triples that already
// exist, so replayed events are safe to reprocess.
func ConsumeStaffLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	balanceService leavebalance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.staff_lifecycle")
	log.Info("staff lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("staff lifecycle consumer stopped")
				return
			}
			log.Error("fetch staff lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.StaffCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode staff_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		year := academicyear.ForDate(event.JoinedAt)
		if event.JoinedAt.IsZero() {
			year = academicyear.Current()
		}

		if err := balanceService.SeedDefaults(ctx, event.StaffID, year); err != nil {
			log.Error("seed default leave balances failed",
				zap.String("staff_id", event.StaffID),
				zap.String("academic_year", year),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit staff lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("default leave balances seeded from staff_created event",
			zap.String("staff_id", event.StaffID),
			zap.String("academic_year", year),
		)
	}
}
