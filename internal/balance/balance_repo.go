package balance

import (
	"context"
	"database/sql"

	"employee-portal/internal/employee"
	"employee-portal/internal/shared/connection"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockEmployee(ctx context.Context, employeeID uuid.UUID) (*employee.Employee, error)
	FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error)
	DecrementIfSufficient(ctx context.Context, employeeID uuid.UUID, column string, amount decimal.Decimal) (int64, error)
	Increment(ctx context.Context, employeeID uuid.UUID, column string, amount decimal.Decimal) error
	CreateEntry(ctx context.Context, entry *LeaveBalanceEntry) error
	ListEntries(ctx context.Context, employeeID string, limit int) ([]LeaveBalanceEntry, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.WithSQLTx(ctx, r.db, r.tx)
}

// LockEmployee takes a row lock held until the surrounding tx ends.
func (r *repository) LockEmployee(ctx context.Context, employeeID uuid.UUID) (*employee.Employee, error) {
	var empl employee.Employee
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&empl, "id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	var empl employee.Employee
	err := r.conn(ctx).First(&empl, "id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// DecrementIfSufficient is a conditional write: it affects zero rows when the
// balance is below amount, so the balance can never go negative.
func (r *repository) DecrementIfSufficient(ctx context.Context, employeeID uuid.UUID, column string, amount decimal.Decimal) (int64, error) {
	res := r.conn(ctx).
		Model(&employee.Employee{}).
		Where("id = ? AND "+column+" >= ?", employeeID, amount).
		Update(column, gorm.Expr(column+" - ?", amount))
	return res.RowsAffected, res.Error
}

func (r *repository) Increment(ctx context.Context, employeeID uuid.UUID, column string, amount decimal.Decimal) error {
	res := r.conn(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		Update(column, gorm.Expr(column+" + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateEntry(ctx context.Context, entry *LeaveBalanceEntry) error {
	return r.conn(ctx).Create(entry).Error
}

func (r *repository) ListEntries(ctx context.Context, employeeID string, limit int) ([]LeaveBalanceEntry, error) {
	var entries []LeaveBalanceEntry
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
