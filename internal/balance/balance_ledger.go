package balance

import (
	"context"
	"database/sql"
	"errors"

	balanceerrors "employee-portal/internal/balance/errors"
	"employee-portal/internal/employee"
	"employee-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const entriesLimit = 50

//go:generate mockgen -source=balance_ledger.go -destination=mock/ledger_mock.go -package=mock
type Ledger interface {
	// Debit draws days from the balance backing leaveType inside tx.
	// Exempt leave types return a nil entry and no error.
	Debit(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, leaveType string, days decimal.Decimal, requestID uuid.UUID) (*LeaveBalanceEntry, error)
	// Credit restores days previously debited for requestID.
	Credit(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, leaveType string, days decimal.Decimal, requestID uuid.UUID) (*LeaveBalanceEntry, error)
	GetBalances(ctx context.Context, employeeID string) (BalanceResponse, error)
	ListEntries(ctx context.Context, employeeID string) ([]EntryResponse, error)
}

type ledger struct {
	repo   Repository
	logger *zap.Logger
}

func NewLedger(repo Repository, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("balance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.ledger")
	}
	return &ledger{repo: repo, logger: l}
}

func balanceOf(empl *employee.Employee, column string) decimal.Decimal {
	if column == ColumnSick {
		return empl.SickLeaveBalance
	}
	return empl.PaidLeaveBalance
}

func (l *ledger) Debit(
	ctx context.Context,
	tx *sql.Tx,
	employeeID uuid.UUID,
	leaveType string,
	days decimal.Decimal,
	requestID uuid.UUID,
) (*LeaveBalanceEntry, error) {
	column, ok := ColumnFor(leaveType)
	if !ok {
		return nil, nil
	}
	if !days.IsPositive() {
		return nil, balanceerrors.ErrInvalidAmount
	}

	log := contextutil.GetLogger(ctx, l.logger)
	qtx := l.repo.WithTx(tx)

	empl, err := qtx.LockEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, balanceerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	available := balanceOf(empl, column)
	if available.LessThan(days) {
		log.Info("balance debit refused",
			zap.String("employee_id", employeeID.String()),
			zap.String("leave_request_id", requestID.String()),
			zap.String("available", available.StringFixed(2)),
			zap.String("required", days.StringFixed(2)),
		)
		return nil, &InsufficientBalanceError{LeaveType: leaveType, Available: available, Required: days}
	}

	affected, err := qtx.DecrementIfSufficient(ctx, employeeID, column, days)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, &InsufficientBalanceError{LeaveType: leaveType, Available: available, Required: days}
	}

	entry := &LeaveBalanceEntry{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		LeaveRequestID: requestID,
		LeaveType:      leaveType,
		Kind:           EntryDebit,
		Delta:          days.Neg(),
		BalanceAfter:   available.Sub(days),
	}
	if err := qtx.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	log.Info("balance debited",
		zap.String("employee_id", employeeID.String()),
		zap.String("leave_request_id", requestID.String()),
		zap.String("column", column),
		zap.String("balance_after", entry.BalanceAfter.StringFixed(2)),
	)
	return entry, nil
}

func (l *ledger) Credit(
	ctx context.Context,
	tx *sql.Tx,
	employeeID uuid.UUID,
	leaveType string,
	days decimal.Decimal,
	requestID uuid.UUID,
) (*LeaveBalanceEntry, error) {
	column, ok := ColumnFor(leaveType)
	if !ok {
		return nil, nil
	}
	if !days.IsPositive() {
		return nil, balanceerrors.ErrInvalidAmount
	}

	qtx := l.repo.WithTx(tx)

	empl, err := qtx.LockEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, balanceerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	if err := qtx.Increment(ctx, employeeID, column, days); err != nil {
		return nil, err
	}

	entry := &LeaveBalanceEntry{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		LeaveRequestID: requestID,
		LeaveType:      leaveType,
		Kind:           EntryCredit,
		Delta:          days,
		BalanceAfter:   balanceOf(empl, column).Add(days),
	}
	if err := qtx.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	l.logger.Info("balance credited",
		zap.String("employee_id", employeeID.String()),
		zap.String("leave_request_id", requestID.String()),
		zap.String("column", column),
	)
	return entry, nil
}

func (l *ledger) GetBalances(ctx context.Context, employeeID string) (BalanceResponse, error) {
	empl, err := l.repo.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrEmployeeNotFound
		}
		l.logger.Error("get balances failed", zap.String("employee_id", employeeID), zap.Error(err))
		return BalanceResponse{}, err
	}

	return BalanceResponse{
		EmployeeID:       empl.ID.String(),
		PaidLeaveBalance: empl.PaidLeaveBalance,
		SickLeaveBalance: empl.SickLeaveBalance,
	}, nil
}

func (l *ledger) ListEntries(ctx context.Context, employeeID string) ([]EntryResponse, error) {
	entries, err := l.repo.ListEntries(ctx, employeeID, entriesLimit)
	if err != nil {
		l.logger.Error("list balance entries failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = EntryResponse{
			ID:             e.ID.String(),
			LeaveRequestID: e.LeaveRequestID.String(),
			LeaveType:      e.LeaveType,
			Kind:           string(e.Kind),
			Delta:          e.Delta,
			BalanceAfter:   e.BalanceAfter,
			CreatedAt:      e.CreatedAt,
		}
	}
	return res, nil
}
