package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"employee-portal/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NewDeliveryHandler delivers consumed notification messages into inboxes.
func NewDeliveryHandler(inbox Inbox, logger *zap.Logger) consumer.HandlerFunc {
	log := logger.Named("notification.delivery")

	return func(ctx context.Context, msg kafkago.Message) error {
		var m Message
		if err := json.Unmarshal(msg.Value, &m); err != nil {
			return fmt.Errorf("decode notification: %w: %v", consumer.ErrSkip, err)
		}
		if m.LeaveRequestID == "" || m.Subject == "" {
			return fmt.Errorf("incomplete notification %q: %w", m.ID, consumer.ErrSkip)
		}

		if err := inbox.Push(ctx, m); err != nil {
			return err
		}

		log.Info("notification delivered",
			zap.String("request_id", m.RequestID),
			zap.String("event_type", m.EventType),
			zap.String("to", m.RecipientEmail),
			zap.String("audience", string(m.Audience)),
			zap.String("subject", m.Subject),
		)
		return nil
	}
}
