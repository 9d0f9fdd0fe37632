package notification

import (
	"context"
	"database/sql"
	"encoding/json"

	"employee-portal/internal/events"
	"employee-portal/internal/messaging/kafka"
	"employee-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier records a message as part of the transition's transaction.
// Nothing is delivered unless tx commits.
type Notifier interface {
	Notify(ctx context.Context, tx *sql.Tx, msg Message) error
}

type outboxNotifier struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxNotifier(outbox kafka.OutboxRepository, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}
	return &outboxNotifier{outbox: outbox, logger: l}
}

func (n *outboxNotifier) Notify(ctx context.Context, tx *sql.Tx, msg Message) error {
	rid := contextutil.GetRequestID(ctx)
	msg.RequestID = rid

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := n.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: kafka.AggregateLeaveRequest,
		AggregateID:   msg.LeaveRequestID,
		EventType:     msg.EventType,
		Topic:         events.LeaveNotificationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		n.logger.Error("queue notification failed",
			zap.String("request_id", rid),
			zap.String("event_type", msg.EventType),
			zap.String("leave_request_id", msg.LeaveRequestID),
			zap.Error(err),
		)
		return err
	}

	n.logger.Debug("notification queued",
		zap.String("request_id", rid),
		zap.String("event_type", msg.EventType),
		zap.String("audience", string(msg.Audience)),
	)
	return nil
}

type noopNotifier struct {
	logger *zap.Logger
}

// NewNoopNotifier logs messages instead of queueing them.
func NewNoopNotifier(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &noopNotifier{logger: logger.Named("notification.noop")}
}

func (n *noopNotifier) Notify(ctx context.Context, _ *sql.Tx, msg Message) error {
	n.logger.Info("notification",
		zap.String("to", msg.RecipientEmail),
		zap.String("audience", string(msg.Audience)),
		zap.String("subject", msg.Subject),
	)
	return nil
}
