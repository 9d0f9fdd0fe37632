package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()

		assert.NoError(t, err)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, 5, cfg.DBMaxRetries)
		assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
		assert.False(t, cfg.Leave.AllowCancelApproved)
		assert.Equal(t, []string{"pending"}, cfg.Leave.DeletableStatuses)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("negative missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := Load()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("leave policy overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("LEAVE_ALLOW_CANCEL_APPROVED", "true")
		t.Setenv("LEAVE_DELETABLE_STATUSES", "pending, Rejected,cancelled")

		cfg, err := Load()

		assert.NoError(t, err)
		assert.True(t, cfg.Leave.AllowCancelApproved)
		assert.Equal(t, []string{"pending", "rejected", "cancelled"}, cfg.Leave.DeletableStatuses)
	})

	t.Run("negative approved is never deletable", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("LEAVE_DELETABLE_STATUSES", "pending,approved")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("negative malformed duration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("OUTBOX_POLL_INTERVAL", "soon")

		_, err := Load()

		assert.Error(t, err)
	})
}
