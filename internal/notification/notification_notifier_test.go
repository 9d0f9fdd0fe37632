package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"employee-portal/internal/events"
	"employee-portal/internal/messaging/kafka"
	kafkaMock "employee-portal/internal/messaging/kafka/mock"
	"employee-portal/internal/notification"
	"employee-portal/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestOutboxNotifier_Notify(t *testing.T) {
	msg := notification.Submitted(
		notification.Leave{ID: "6c3f1e0a-8d0b-4f43-9a51-1b2b1d7e4c90", StartDate: "2025-01-01", EndDate: "2025-01-02"},
		notification.Party{ID: "a", Name: "Alice"},
		notification.Party{ID: "b", Name: "Bob", Email: "bob@example.com"},
	)

	t.Run("success writes outbox row on the given tx", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		outbox := kafkaMock.NewMockOutboxRepository(ctrl)
		ctx := contextutil.WithRequestID(context.Background(), "req-7")

		outbox.EXPECT().WithTx(nil).Return(outbox)
		outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.LeaveNotificationTopic, e.Topic)
			assert.Equal(t, events.LeaveSubmitted, e.EventType)
			assert.Equal(t, msg.LeaveRequestID, e.AggregateID)
			assert.Equal(t, kafka.AggregateLeaveRequest, e.AggregateType)
			assert.Equal(t, "req-7", e.RequestID)
			assert.Equal(t, kafka.OutboxStatusPending, e.Status)

			var decoded notification.Message
			require.NoError(t, json.Unmarshal(e.Payload, &decoded))
			assert.Equal(t, "bob@example.com", decoded.RecipientEmail)
			assert.Equal(t, "req-7", decoded.RequestID)
			return nil
		})

		err := notification.NewOutboxNotifier(outbox, zap.NewNop()).Notify(ctx, nil, msg)

		assert.NoError(t, err)
	})

	t.Run("negative outbox failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		outbox := kafkaMock.NewMockOutboxRepository(ctrl)

		outbox.EXPECT().WithTx(nil).Return(outbox)
		outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

		err := notification.NewOutboxNotifier(outbox, zap.NewNop()).Notify(context.Background(), nil, msg)

		assert.EqualError(t, err, "insert failed")
	})
}

func TestNoopNotifier(t *testing.T) {
	assert.NoError(t, notification.NewNoopNotifier(nil).Notify(context.Background(), nil, notification.Message{}))
}
