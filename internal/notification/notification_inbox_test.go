package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"employee-portal/internal/messaging/kafka/consumer"
	"employee-portal/internal/notification"
	"employee-portal/internal/rbac"

	"github.com/go-redis/redismock/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisInbox(t *testing.T) {
	ctx := context.Background()

	t.Run("push caps list", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inbox := notification.NewRedisInbox(rdb, 10)

		msg := notification.Message{ID: "m-1", RecipientID: "e-1", Audience: notification.AudienceEmployee, Subject: "s"}
		payload, _ := json.Marshal(msg)
		key := notification.InboxKey("e-1")

		mock.ExpectLPush(key, string(payload)).SetVal(1)
		mock.ExpectLTrim(key, 0, 9).SetVal("OK")

		require.NoError(t, inbox.Push(ctx, msg))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list decodes and skips garbage", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inbox := notification.NewRedisInbox(rdb, 10)

		good, _ := json.Marshal(notification.Message{ID: "m-1", Subject: "hello"})
		mock.ExpectLRange(notification.HRInboxKey, 0, 4).SetVal([]string{string(good), "{broken"})

		msgs, err := inbox.List(ctx, notification.HRInboxKey, 5)

		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "hello", msgs[0].Subject)
	})
}

type fakeInbox struct {
	pushed []notification.Message
	pushFn func(msg notification.Message) error
	lists  map[string][]notification.Message
}

func (f *fakeInbox) Push(ctx context.Context, msg notification.Message) error {
	if f.pushFn != nil {
		if err := f.pushFn(msg); err != nil {
			return err
		}
	}
	f.pushed = append(f.pushed, msg)
	return nil
}

func (f *fakeInbox) List(ctx context.Context, key string, limit int) ([]notification.Message, error) {
	return f.lists[key], nil
}

func TestDeliveryHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		inbox := &fakeInbox{}
		handle := notification.NewDeliveryHandler(inbox, zap.NewNop())
		payload, _ := json.Marshal(notification.Message{ID: "m", LeaveRequestID: "lr", Subject: "Leave Request Approved"})

		err := handle(ctx, kafkago.Message{Value: payload})

		assert.NoError(t, err)
		assert.Len(t, inbox.pushed, 1)
	})

	t.Run("negative undecodable is skipped", func(t *testing.T) {
		handle := notification.NewDeliveryHandler(&fakeInbox{}, zap.NewNop())

		err := handle(ctx, kafkago.Message{Value: []byte("not json")})

		assert.ErrorIs(t, err, consumer.ErrSkip)
	})

	t.Run("negative redis failure is retried", func(t *testing.T) {
		inbox := &fakeInbox{pushFn: func(notification.Message) error { return errors.New("redis down") }}
		handle := notification.NewDeliveryHandler(inbox, zap.NewNop())
		payload, _ := json.Marshal(notification.Message{ID: "m", LeaveRequestID: "lr", Subject: "s"})

		err := handle(ctx, kafkago.Message{Value: payload})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, consumer.ErrSkip)
	})
}

func TestService_ListForCaller(t *testing.T) {
	now := time.Now()
	inbox := &fakeInbox{lists: map[string][]notification.Message{
		notification.InboxKey("e-1"): {{ID: "own", OccurredAt: now.Add(-time.Hour)}},
		notification.HRInboxKey:      {{ID: "hr", OccurredAt: now}},
	}}
	checker, err := rbac.NewService(zap.NewNop())
	require.NoError(t, err)
	svc := notification.NewService(inbox, checker, zap.NewNop())

	t.Run("employee sees own inbox only", func(t *testing.T) {
		msgs, err := svc.ListForCaller(context.Background(), "e-1", rbac.RoleEmployee, 20)

		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "own", msgs[0].ID)
	})

	t.Run("hr sees shared inbox merged newest first", func(t *testing.T) {
		msgs, err := svc.ListForCaller(context.Background(), "e-1", rbac.RoleHR, 20)

		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "hr", msgs[0].ID)
		assert.Equal(t, "own", msgs[1].ID)
	})

	t.Run("director without queue review sees own inbox only", func(t *testing.T) {
		msgs, err := svc.ListForCaller(context.Background(), "e-1", rbac.RoleDirector, 20)

		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "own", msgs[0].ID)
	})
}
