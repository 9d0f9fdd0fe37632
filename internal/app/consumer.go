package app

import (
	"context"
	"fmt"

	"employee-portal/internal/bootstrap"
	"employee-portal/internal/config"
	"employee-portal/internal/events"
	"employee-portal/internal/messaging/kafka/consumer"
	"employee-portal/internal/notification"
	"employee-portal/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notificationGroupID = "employee-portal-notifications"

// RunConsumer delivers leave notifications into Redis inboxes until a
// shutdown signal.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.LeaveNotificationTopic,
		GroupID:        notificationGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	inbox := notification.NewRedisInbox(rdb, cfg.NotificationInboxSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.Run(ctx, reader, notification.NewDeliveryHandler(inbox, logger), logger, "notifications")
	}()

	sig := bootstrap.WaitForSignal()
	bootstrap.NewStdoutAuditLogger(logger).Log(ctx, bootstrap.AuditLog{
		Action:  "CONSUMER_SHUTDOWN",
		Message: "Notification consumer is shutting down",
		Meta:    map[string]any{"signal": sig.String()},
	})
	cancel()
	<-done

	return nil
}
