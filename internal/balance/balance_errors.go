package balance

import (
	"fmt"

	balanceerrors "employee-portal/internal/balance/errors"

	"github.com/shopspring/decimal"
)

// InsufficientBalanceError reports the amounts involved in a failed debit.
// It unwraps to balanceerrors.ErrInsufficientBalance carrying both amounts as
// details, so HTTP mapping exposes them to clients.
type InsufficientBalanceError struct {
	LeaveType string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: available %s, required %s",
		e.LeaveType, e.Available.StringFixed(2), e.Required.StringFixed(2))
}

func (e *InsufficientBalanceError) Unwrap() error {
	return balanceerrors.ErrInsufficientBalance.WithDetails(map[string]string{
		"leave_type": e.LeaveType,
		"available":  e.Available.StringFixed(2),
		"required":   e.Required.StringFixed(2),
	})
}
