package notification

import (
	"fmt"
	"time"

	"employee-portal/internal/events"

	"github.com/google/uuid"
)

// Leave carries the request fields a notification refers to.
type Leave struct {
	ID         string
	StartDate  string
	EndDate    string
	FromStatus string
	ToStatus   string
}

func base(eventType string, l Leave, actor Party) Message {
	return Message{
		ID:             uuid.NewString(),
		EventType:      eventType,
		LeaveRequestID: l.ID,
		ActorID:        actor.ID,
		ActorName:      actor.Name,
		ActorRole:      actor.Role,
		FromStatus:     l.FromStatus,
		ToStatus:       l.ToStatus,
		StartDate:      l.StartDate,
		EndDate:        l.EndDate,
		OccurredAt:     time.Now().UTC(),
	}
}

func toRequester(m Message, requester Party) Message {
	m.RecipientID = requester.ID
	m.RecipientEmail = requester.Email
	m.Audience = AudienceEmployee
	m.Category = CategoryStatusUpdate
	return m
}

func (l Leave) span() string {
	return fmt.Sprintf("(%s to %s)", l.StartDate, l.EndDate)
}

// Submitted asks the requester's manager to act on a new request.
func Submitted(l Leave, requester, manager Party) Message {
	m := base(events.LeaveSubmitted, l, requester)
	m.RecipientID = manager.ID
	m.RecipientEmail = manager.Email
	m.Audience = AudienceManager
	m.Category = CategoryApprovalRequired
	m.Subject = "Leave Request Submitted by " + requester.Name
	m.Body = fmt.Sprintf("%s has submitted a leave request %s for your approval.", requester.Name, l.span())
	return m
}

// DirectorSubmitted tells HR that a director's request skipped manager review.
func DirectorSubmitted(l Leave, director Party) Message {
	m := base(events.LeaveDirectorSubmitted, l, director)
	m.Audience = AudienceHR
	m.Category = CategoryApprovalRequired
	m.Subject = "Leave Request Submitted by Director " + director.Name
	m.Body = fmt.Sprintf("Director %s has submitted a leave request %s. Status set to: %s",
		director.Name, l.span(), l.ToStatus)
	return m
}

func ManagerApproved(l Leave, requester, approver Party) Message {
	m := toRequester(base(events.LeaveManagerApproved, l, approver), requester)
	m.Subject = "Leave Request Partially Approved"
	m.Body = fmt.Sprintf("Your leave request %s has been approved by %s (%s) and is now pending HR approval.",
		l.span(), approver.Name, approver.Role)
	return m
}

func ManagerRejected(l Leave, requester, approver Party, reason string) Message {
	m := toRequester(base(events.LeaveManagerRejected, l, approver), requester)
	m.Subject = "Leave Request Rejected"
	m.Body = fmt.Sprintf("Your leave request %s was rejected by %s (%s). Reason: %s",
		l.span(), approver.Name, approver.Role, reason)
	return m
}

func HRApproved(l Leave, requester, approver Party) Message {
	m := toRequester(base(events.LeaveHRApproved, l, approver), requester)
	m.Subject = "Leave Request Approved"
	m.Body = fmt.Sprintf("Your leave request %s has been approved by HR (%s).", l.span(), approver.Name)
	return m
}

func HRRejected(l Leave, requester, approver Party, reason string) Message {
	m := toRequester(base(events.LeaveHRRejected, l, approver), requester)
	m.Subject = "Leave Request Rejected"
	m.Body = fmt.Sprintf("Your leave request %s was rejected by HR (%s). Reason: %s", l.span(), approver.Name, reason)
	return m
}

func Cancelled(l Leave, requester Party) Message {
	m := toRequester(base(events.LeaveCancelled, l, requester), requester)
	m.Subject = "Leave Request Cancelled"
	m.Body = fmt.Sprintf("Your leave request %s has been cancelled.", l.span())
	return m
}
