package consumer

import (
	"context"
	"encoding/json"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-paytrack/internal/events"
	"go-paytrack/internal/notifier"
	"go-paytrack/internal/settlement"
)

// ConsumeSettlementNotify builds the requested settlement and hands it to
// the notifier. Delivery failures leave the message uncommitted so it is
// redelivered; the engine itself never retries a send.
func ConsumeSettlementNotify(
	ctx context.Context,
	reader *kafkago.Reader,
	settlementService settlement.Service,
	sender notifier.Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.settlement_notify")
	log.Info("settlement notify consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("settlement notify consumer stopped")
				return
			}
			log.Error("fetch settlement notify message failed", zap.Error(err))
			continue
		}

		var event events.SettlementNotifyEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode settlement notify event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		summary, err := settlementService.BuildSettlement(ctx, event.EmployeeID, event.Year)
		if err != nil {
			log.Error("build settlement failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Int("year", event.Year),
				zap.Error(err),
			)
			continue
		}

		if err := sender.SendSettlement(event.Email, summary); err != nil {
			// Redelivery cannot help an unconfigured sender; commit the
			// message and leave a loud trace instead of hot-looping.
			if errors.Is(err, notifier.ErrNotConfigured) {
				log.Error("settlement notification dropped, smtp not configured",
					zap.String("employee_id", event.EmployeeID),
					zap.String("email", event.Email),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			log.Error("send settlement notification failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("email", event.Email),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit settlement notify message failed", zap.Error(err))
			continue
		}

		log.Info("settlement notification delivered",
			zap.String("employee_id", event.EmployeeID),
			zap.Int("year", event.Year),
		)
	}
}
