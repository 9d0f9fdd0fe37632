package events

const LeaveNotificationTopic = "hr.leave.notifications.v1"

// Event types carried on LeaveNotificationTopic, one per workflow transition.
const (
	LeaveSubmitted         = "leave_submitted"
	LeaveDirectorSubmitted = "leave_director_submitted"
	LeaveManagerApproved   = "leave_manager_approved"
	LeaveManagerRejected   = "leave_manager_rejected"
	LeaveHRApproved        = "leave_hr_approved"
	LeaveHRRejected        = "leave_hr_rejected"
	LeaveCancelled         = "leave_cancelled"
)
