package app

import (
	"context"
	"fmt"

	"employee-portal/internal/bootstrap"
	"employee-portal/internal/config"
	"employee-portal/internal/messaging/kafka"
	"employee-portal/internal/messaging/kafka/producer"
	"employee-portal/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays committed outbox rows to Kafka until a shutdown signal.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connectDB(cfg)
	if err != nil {
		return err
	}
	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DBMaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		cfg.OutboxPollInterval,
	)

	sig := bootstrap.WaitForSignal()
	bootstrap.NewStdoutAuditLogger(logger).Log(ctx, bootstrap.AuditLog{
		Action:  "WORKER_SHUTDOWN",
		Message: "Outbox worker is shutting down",
		Meta:    map[string]any{"signal": sig.String()},
	})
	cancel()

	return nil
}
