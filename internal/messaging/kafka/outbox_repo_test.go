package kafka

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)
	ctx := context.Background()

	event := OutboxEvent{
		ID:            "5f0e8c36-4f5b-4a4e-8a8b-0c9f6f3d0a11",
		RequestID:     "req-1",
		AggregateType: AggregateLeaveRequest,
		AggregateID:   "2b1c0d8e-3a55-4d61-9f0e-7c1f6a8b9d22",
		EventType:     "leave_submitted",
		Topic:         "hr.leave.notifications.v1",
		Payload:       []byte(`{"x":1}`),
		Status:        OutboxStatusPending,
	}

	t.Run("success within tx", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs(event.ID, event.RequestID, event.AggregateType, event.AggregateID,
				event.EventType, event.Topic, event.Payload, event.Status).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		require.NoError(t, repo.WithTx(tx).Create(ctx, event))
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative invalid event not written", func(t *testing.T) {
		bad := event
		bad.Payload = nil

		err := repo.Create(ctx, bad)

		assert.EqualError(t, err, "outbox payload is required")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative unknown aggregate not written", func(t *testing.T) {
		bad := event
		bad.AggregateType = "payroll"

		err := repo.Create(ctx, bad)

		assert.EqualError(t, err, `unknown outbox aggregate: "payroll"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative event must start pending", func(t *testing.T) {
		bad := event
		bad.Status = OutboxStatusSent

		err := repo.Create(ctx, bad)

		assert.EqualError(t, err, `new outbox events must be pending, got "sent"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ClaimPending(t *testing.T) {
	columns := []string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "created_at",
	}
	claimArgs := []driver.Value{
		OutboxStatusProcessing, OutboxStatusPending, OutboxStatusFailed,
		MaxOutboxRetries, claimTimeout.Seconds(), 10,
	}

	t.Run("success claims oldest first", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Now()
		rows := sqlmock.NewRows(columns).
			AddRow("o-2", "req-2", AggregateLeaveRequest, "a-1", "leave_approved",
				"hr.leave.notifications.v1", []byte(`{}`), OutboxStatusProcessing, 0, now).
			AddRow("o-1", "req-1", AggregateLeaveRequest, "a-1", "leave_submitted",
				"hr.leave.notifications.v1", []byte(`{}`), OutboxStatusProcessing, 0, now.Add(-time.Minute))

		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
			WithArgs(claimArgs...).
			WillReturnRows(rows)

		events, err := NewOutboxRepository(db).ClaimPending(context.Background(), 10)

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "leave_submitted", events[0].EventType)
		assert.Equal(t, "req-1", events[0].RequestID)
		assert.Equal(t, "leave_approved", events[1].EventType)
		assert.Equal(t, OutboxStatusProcessing, events[1].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success nothing due", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("UPDATE outbox_events AS o")).
			WithArgs(claimArgs...).
			WillReturnRows(sqlmock.NewRows(columns))

		events, err := NewOutboxRepository(db).ClaimPending(context.Background(), 10)

		require.NoError(t, err)
		assert.Empty(t, events)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative query error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("UPDATE outbox_events AS o")).
			WithArgs(claimArgs...).
			WillReturnError(errors.New("db down"))

		_, err = NewOutboxRepository(db).ClaimPending(context.Background(), 10)

		assert.EqualError(t, err, "db down")
	})
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("POWER(2, LEAST(retry_count, 6))")).
		WithArgs("o-1", OutboxStatusFailed, "broker down").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewOutboxRepository(db).MarkFailed(context.Background(), "o-1", "broker down")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
