package balance_test

import (
	"context"
	"regexp"
	"testing"

	"employee-portal/internal/balance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_DecrementIfSufficient(t *testing.T) {
	ctx := context.Background()
	empID := uuid.New()

	t.Run("guarded update inside caller tx", func(t *testing.T) {
		db, mock := newGormMock(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "employees" SET "paid_leave_balance"=paid_leave_balance - $1`)).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), empID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := sqlDB.Begin()
		require.NoError(t, err)

		affected, err := balance.NewRepository(db).WithTx(tx).
			DecrementIfSufficient(ctx, empID, balance.ColumnPaid, decimal.NewFromInt(2))

		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
		require.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_LockEmployee(t *testing.T) {
	db, mock := newGormMock(t)
	empID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(empID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "paid_leave_balance"}).
			AddRow(empID.String(), "Dana", "5.00"))

	empl, err := balance.NewRepository(db).LockEmployee(context.Background(), empID)

	require.NoError(t, err)
	assert.Equal(t, "5.00", empl.PaidLeaveBalance.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnFor(t *testing.T) {
	col, ok := balance.ColumnFor("paid")
	assert.True(t, ok)
	assert.Equal(t, balance.ColumnPaid, col)

	col, ok = balance.ColumnFor("sick")
	assert.True(t, ok)
	assert.Equal(t, balance.ColumnSick, col)

	for _, exempt := range []string{"unpaid", "compassionate", "study", "PAID", ""} {
		_, ok := balance.ColumnFor(exempt)
		assert.False(t, ok, exempt)
	}
}
