package leaveerrors

import (
	"net/http"

	"employee-portal/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be on or after start_date",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required when rejecting a leave request",
		http.StatusBadRequest,
	)
	ErrCallerNotEmployee = apperror.New(
		apperror.CodeUnauthorized,
		"authenticated user has no employee record",
		http.StatusUnauthorized,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to perform this action on the leave request",
		http.StatusForbidden,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not in a state that allows this action",
		http.StatusBadRequest,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave requests can be edited",
		http.StatusBadRequest,
	)
	ErrNotDeletable = apperror.New(
		apperror.CodeInvalidState,
		"leave request cannot be deleted in its current state",
		http.StatusBadRequest,
	)
)
