package leave_test

import (
	"context"
	"regexp"
	"testing"

	"employee-portal/internal/employee"
	"employee-portal/internal/leave"
	"employee-portal/internal/rbac"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
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

func TestRepository_UpdateIfStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("compare and set on previous status", func(t *testing.T) {
		db, mock := newGormMock(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "leave_requests" SET .*"status"=.* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := sqlDB.Begin()
		require.NoError(t, err)

		n, err := leave.NewRepository(db).WithTx(tx).UpdateIfStatus(ctx, id, leave.StatusManagerApproved,
			map[string]interface{}{"status": leave.StatusApproved})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative lost race", func(t *testing.T) {
		db, mock := newGormMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "leave_requests" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		n, err := leave.NewRepository(db).UpdateIfStatus(ctx, id, leave.StatusManagerApproved,
			map[string]interface{}{"status": leave.StatusApproved})
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestRepository_DeleteIfStatus(t *testing.T) {
	db, mock := newGormMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "leave_requests" WHERE id = $1 AND status = $2`)).
		WithArgs(id, leave.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := leave.NewRepository(db).DeleteIfStatus(context.Background(), id, leave.StatusPending)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	checker := newChecker(t)

	t.Run("empty visibility skips the query", func(t *testing.T) {
		db, mock := newGormMock(t)
		caller := employee.Employee{ID: uuid.New(), Role: rbac.RoleEmployee}

		leaves, err := leave.NewRepository(db).List(context.Background(), leave.ResolveVisibility(checker, caller, leave.ScopeAll))
		require.NoError(t, err)
		assert.Empty(t, leaves)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("manager default scope", func(t *testing.T) {
		db, mock := newGormMock(t)
		caller := employee.Employee{ID: uuid.New(), Role: rbac.RoleManager}

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "leave_requests" WHERE (employee_id = $1 OR (employee_id IN (SELECT id FROM employees WHERE manager_id = $2) AND status = $3)) ORDER BY created_at DESC`,
		)).
			WithArgs(caller.ID, caller.ID, leave.StatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		leaves, err := leave.NewRepository(db).List(context.Background(), leave.ResolveVisibility(checker, caller, leave.ScopeDefault))
		require.NoError(t, err)
		assert.Empty(t, leaves)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hr pending approval excludes own", func(t *testing.T) {
		db, mock := newGormMock(t)
		caller := employee.Employee{ID: uuid.New(), Role: rbac.RoleHR}

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "leave_requests" WHERE ((status = $1 AND employee_id <> $2)) ORDER BY start_date ASC`,
		)).
			WithArgs(leave.StatusManagerApproved, caller.ID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := leave.NewRepository(db).List(context.Background(), leave.ResolveVisibility(checker, caller, leave.ScopePendingApproval))
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
