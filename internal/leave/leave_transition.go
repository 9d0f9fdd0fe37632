package leave

import (
	"slices"

	"employee-portal/internal/rbac"
)

// Transition is one edge of the approval state machine.
type Transition struct {
	Action         rbac.Action
	From           []Status
	To             Status
	ReasonRequired bool
}

func (t Transition) Allows(from Status) bool {
	return slices.Contains(t.From, from)
}

var transitions = map[rbac.Action]Transition{
	rbac.ActionApproveManager: {
		Action: rbac.ActionApproveManager,
		From:   []Status{StatusPending},
		To:     StatusManagerApproved,
	},
	rbac.ActionRejectManager: {
		Action:         rbac.ActionRejectManager,
		From:           []Status{StatusPending},
		To:             StatusRejected,
		ReasonRequired: true,
	},
	rbac.ActionApproveHR: {
		Action: rbac.ActionApproveHR,
		From:   []Status{StatusManagerApproved},
		To:     StatusApproved,
	},
	rbac.ActionRejectHR: {
		Action:         rbac.ActionRejectHR,
		From:           []Status{StatusManagerApproved},
		To:             StatusRejected,
		ReasonRequired: true,
	},
	rbac.ActionCancel: {
		Action: rbac.ActionCancel,
		From:   []Status{StatusPending, StatusManagerApproved},
		To:     StatusCancelled,
	},
}

// Policy holds the deployment-configurable parts of the workflow.
type Policy struct {
	AllowCancelApproved bool
	DeletableStatuses   []Status
}

func DefaultPolicy() Policy {
	return Policy{DeletableStatuses: []Status{StatusPending}}
}

// NewPolicy builds a Policy from configuration values, dropping unknown
// statuses. With nothing usable left the default deletable set applies.
func NewPolicy(allowCancelApproved bool, deletable []string) Policy {
	p := Policy{AllowCancelApproved: allowCancelApproved}
	for _, v := range deletable {
		if s, ok := ParseStatus(v); ok {
			p.DeletableStatuses = append(p.DeletableStatuses, s)
		}
	}
	if len(p.DeletableStatuses) == 0 {
		p.DeletableStatuses = DefaultPolicy().DeletableStatuses
	}
	return p
}

// Transition returns the edge for action under p.
func (p Policy) Transition(action rbac.Action) (Transition, bool) {
	t, ok := transitions[action]
	if !ok {
		return Transition{}, false
	}
	if action == rbac.ActionCancel && p.AllowCancelApproved {
		t.From = append(slices.Clone(t.From), StatusApproved)
	}
	return t, true
}

// CanDelete never allows approved requests, whatever is configured.
func (p Policy) CanDelete(s Status) bool {
	if s == StatusApproved {
		return false
	}
	return slices.Contains(p.DeletableStatuses, s)
}
