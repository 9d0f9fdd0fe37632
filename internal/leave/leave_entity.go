package leave

import (
	"time"

	"employee-portal/internal/employee"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type Status string

const (
	StatusPending         Status = "pending"
	StatusManagerApproved Status = "manager_approved"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusCancelled       Status = "cancelled"
)

var statusDisplay = map[Status]string{
	StatusPending:         "Pending Manager Approval",
	StatusManagerApproved: "Pending HR Approval",
	StatusApproved:        "Approved",
	StatusRejected:        "Rejected",
	StatusCancelled:       "Cancelled",
}

func (s Status) Display() string {
	if d, ok := statusDisplay[s]; ok {
		return d
	}
	return string(s)
}

func ParseStatus(v string) (Status, bool) {
	s := Status(v)
	_, ok := statusDisplay[s]
	return s, ok
}

type LeaveType string

const (
	LeaveTypePaid          LeaveType = "paid"
	LeaveTypeSick          LeaveType = "sick"
	LeaveTypeUnpaid        LeaveType = "unpaid"
	LeaveTypeCompassionate LeaveType = "compassionate"
	LeaveTypeStudy         LeaveType = "study"
)

var leaveTypeDisplay = map[LeaveType]string{
	LeaveTypePaid:          "Paid Leave",
	LeaveTypeSick:          "Sick Leave",
	LeaveTypeUnpaid:        "Unpaid Leave",
	LeaveTypeCompassionate: "Compassionate Leave",
	LeaveTypeStudy:         "Study Leave",
}

func (t LeaveType) Display() string {
	if d, ok := leaveTypeDisplay[t]; ok {
		return d
	}
	return string(t)
}

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_created"`

	LeaveType LeaveType `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text;not null;default:''"`

	Status                   Status     `gorm:"type:varchar(20);not null;default:pending;index:idx_leave_requests_status_start"`
	ApprovedByManagerID      *uuid.UUID `gorm:"type:uuid"`
	ApprovedByHRID           *uuid.UUID `gorm:"column:approved_by_hr_id;type:uuid"`
	ManagerApprovalTimestamp *time.Time
	HRApprovalTimestamp      *time.Time `gorm:"column:hr_approval_timestamp"`
	RejectionReason          string     `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time `gorm:"index:idx_leave_requests_employee_created"`
	UpdatedAt time.Time

	Employee        *employee.Employee `gorm:"foreignKey:EmployeeID"`
	ManagerApprover *employee.Employee `gorm:"foreignKey:ApprovedByManagerID"`
	HRApprover      *employee.Employee `gorm:"foreignKey:ApprovedByHRID"`
}

// DurationDays is the inclusive day count of the request.
func (l LeaveRequest) DurationDays() int {
	return durationDays(l.StartDate, l.EndDate)
}

func durationDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func (l LeaveRequest) Days() decimal.Decimal {
	return decimal.NewFromInt(int64(l.DurationDays()))
}
