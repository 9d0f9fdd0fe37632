package leave

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=paid sick unpaid compassionate study"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"max=2000"`
}

// UpdateLeaveRequest has no status field; a status sent by the client is
// dropped during binding.
type UpdateLeaveRequest struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Reason    *string `json:"reason" binding:"omitempty,max=2000"`
}

type ActionRequest struct {
	Reason string `json:"reason"`
}

type EmployeeSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type LeaveResponse struct {
	ID                       string           `json:"id"`
	EmployeeID               string           `json:"employee_id"`
	Employee                 *EmployeeSummary `json:"employee,omitempty"`
	LeaveType                string           `json:"leave_type"`
	LeaveTypeDisplay         string           `json:"leave_type_display"`
	StartDate                string           `json:"start_date"`
	EndDate                  string           `json:"end_date"`
	DurationDays             int              `json:"duration_days"`
	Reason                   string           `json:"reason"`
	Status                   string           `json:"status"`
	StatusDisplay            string           `json:"status_display"`
	ApprovedByManagerID      *string          `json:"approved_by_manager,omitempty"`
	ApprovedByManagerName    string           `json:"approved_by_manager_name,omitempty"`
	ManagerApprovalTimestamp *string          `json:"manager_approval_timestamp,omitempty"`
	ApprovedByHRID           *string          `json:"approved_by_hr,omitempty"`
	ApprovedByHRName         string           `json:"approved_by_hr_name,omitempty"`
	HRApprovalTimestamp      *string          `json:"hr_approval_timestamp,omitempty"`
	RejectionReason          string           `json:"rejection_reason,omitempty"`
	CreatedAt                string           `json:"created_at"`
	UpdatedAt                string           `json:"updated_at"`
}
