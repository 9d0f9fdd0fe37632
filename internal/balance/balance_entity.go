package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryKind string

const (
	EntryDebit  EntryKind = "debit"
	EntryCredit EntryKind = "credit"
)

// LeaveBalanceEntry is one append-only movement on an employee balance.
type LeaveBalanceEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_balance_entry_employee_created,priority:1"`
	LeaveRequestID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LeaveType      string          `gorm:"type:varchar(20);not null"`
	Kind           EntryKind       `gorm:"type:varchar(10);not null"`
	Delta          decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	BalanceAfter   decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	CreatedAt      time.Time       `gorm:"index:idx_balance_entry_employee_created,priority:2"`
}

func (LeaveBalanceEntry) TableName() string {
	return "leave_balance_entries"
}

const (
	ColumnPaid = "paid_leave_balance"
	ColumnSick = "sick_leave_balance"
)

// balanceColumns is the closed set of leave types that draw on a balance.
// Any type not listed is exempt.
var balanceColumns = map[string]string{
	"paid": ColumnPaid,
	"sick": ColumnSick,
}

func ColumnFor(leaveType string) (string, bool) {
	col, ok := balanceColumns[leaveType]
	return col, ok
}
