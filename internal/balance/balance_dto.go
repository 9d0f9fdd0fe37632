package balance

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceResponse struct {
	EmployeeID       string          `json:"employee_id"`
	PaidLeaveBalance decimal.Decimal `json:"paid_leave_balance"`
	SickLeaveBalance decimal.Decimal `json:"sick_leave_balance"`
}

type EntryResponse struct {
	ID             string          `json:"id"`
	LeaveRequestID string          `json:"leave_request_id"`
	LeaveType      string          `json:"leave_type"`
	Kind           string          `json:"kind"`
	Delta          decimal.Decimal `json:"delta"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	CreatedAt      time.Time       `json:"created_at"`
}

type MyBalanceResponse struct {
	BalanceResponse
	Entries []EntryResponse `json:"entries"`
}
