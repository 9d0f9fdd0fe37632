package employee

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	FullName         string          `json:"full_name" binding:"required,max=150"`
	Email            string          `json:"email" binding:"required,email"`
	Role             string          `json:"role" binding:"required,oneof=employee manager admin hr director"`
	ManagerID        *string         `json:"manager_id" binding:"omitempty,uuid"`
	PaidLeaveBalance decimal.Decimal `json:"paid_leave_balance"`
	SickLeaveBalance decimal.Decimal `json:"sick_leave_balance"`
}

// AssignManagerRequest sets or clears (null manager_id) the direct manager.
type AssignManagerRequest struct {
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID               string          `json:"id"`
	FullName         string          `json:"full_name"`
	Email            string          `json:"email"`
	Role             string          `json:"role"`
	RoleDisplay      string          `json:"role_display"`
	ManagerID        string          `json:"manager_id,omitempty"`
	PaidLeaveBalance decimal.Decimal `json:"paid_leave_balance"`
	SickLeaveBalance decimal.Decimal `json:"sick_leave_balance"`
}

type EmployeeOptionResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
