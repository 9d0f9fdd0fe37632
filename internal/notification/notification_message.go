package notification

import "time"

type Audience string

const (
	AudienceEmployee Audience = "employee"
	AudienceManager  Audience = "manager"
	AudienceHR       Audience = "hr"
)

const (
	CategoryApprovalRequired = "approval_required"
	CategoryStatusUpdate     = "status_update"
)

// Party is a person named in a notification.
type Party struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Message is one notification produced by a committed workflow transition.
// HR-audience messages carry no RecipientID and go to the shared HR inbox.
type Message struct {
	ID             string    `json:"id"`
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveRequestID string    `json:"leave_request_id"`
	RecipientID    string    `json:"recipient_id,omitempty"`
	RecipientEmail string    `json:"recipient_email,omitempty"`
	Audience       Audience  `json:"audience"`
	Category       string    `json:"category"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	ActorID        string    `json:"actor_id"`
	ActorName      string    `json:"actor_name"`
	ActorRole      string    `json:"actor_role"`
	FromStatus     string    `json:"from_status,omitempty"`
	ToStatus       string    `json:"to_status"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}
