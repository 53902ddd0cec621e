package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
	"github.com/Fouxth/BaanTK-sub000/pkg/kafka"
)

// RemindersTopic carries overdue reminder requests for the messaging
// collaborator (the LINE push-notification worker).
const RemindersTopic = "baantk.reminders"

// KafkaReminderDispatcher implements port.ReminderDispatcher.
type KafkaReminderDispatcher struct {
	producer producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaReminderDispatcher creates a dispatcher writing to the reminders topic.
func NewKafkaReminderDispatcher(p *kafka.Producer, logger *slog.Logger) *KafkaReminderDispatcher {
	return &KafkaReminderDispatcher{producer: p, topic: RemindersTopic, logger: logger}
}

// reminderMessage is the wire format of one reminder request.
type reminderMessage struct {
	BorrowerID  string          `json:"borrower_id"`
	Tier        string          `json:"tier"`
	TotalOwed   decimal.Decimal `json:"total_owed"`
	OverdueDays int             `json:"overdue_days"`
}

// Dispatch forwards the reminder request, keyed by borrower ID.
func (d *KafkaReminderDispatcher) Dispatch(ctx context.Context, req port.ReminderRequest) error {
	value, err := json.Marshal(reminderMessage{
		BorrowerID:  req.BorrowerID,
		Tier:        req.Tier.String(),
		TotalOwed:   req.TotalOwed,
		OverdueDays: req.OverdueDays,
	})
	if err != nil {
		return fmt.Errorf("marshal reminder: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(req.BorrowerID),
		Value: value,
		Headers: map[string]string{
			"tier": req.Tier.String(),
		},
	}
	if err := d.producer.Publish(ctx, d.topic, msg); err != nil {
		return fmt.Errorf("dispatch reminder: %w", err)
	}

	d.logger.Info("reminder dispatched",
		"borrower_id", req.BorrowerID,
		"tier", req.Tier.String(),
		"overdue_days", req.OverdueDays)
	return nil
}
