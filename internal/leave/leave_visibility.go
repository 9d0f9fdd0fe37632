package leave

import (
	"employee-portal/internal/employee"
	"employee-portal/internal/rbac"

	"github.com/google/uuid"
)

type Scope string

const (
	ScopeDefault         Scope = ""
	ScopeMy              Scope = "my"
	ScopePendingApproval Scope = "pending_approval"
	ScopeAll             Scope = "all"
)

const (
	orderNewest     = "created_at DESC"
	orderStartFirst = "start_date ASC"
)

// Visibility describes which requests a caller may list. The selected rows
// are the union of the enabled parts.
type Visibility struct {
	CallerID uuid.UUID
	All      bool
	Own      bool
	// TeamStatus selects direct reports' requests in this status.
	TeamStatus Status
	// QueueStatus selects every request in this status.
	QueueStatus Status
	// ExcludeOwn drops the caller's rows from the team and queue parts.
	ExcludeOwn bool
	Order      string
}

func (v Visibility) Empty() bool {
	return !v.All && !v.Own && v.TeamStatus == "" && v.QueueStatus == ""
}

// CapabilityChecker is the single permission function visibility consults.
type CapabilityChecker interface {
	Can(role rbac.Role, action rbac.Action, rel rbac.Relationship) bool
}

// ResolveVisibility maps a caller and scope to a listing filter. Unknown
// scopes and roles yield an empty filter, never an error.
func ResolveVisibility(checker CapabilityChecker, caller employee.Employee, scope Scope) Visibility {
	v := Visibility{CallerID: caller.ID, Order: orderNewest}
	if _, ok := rbac.ParseRole(string(caller.Role)); !ok {
		return v
	}

	team := checker.Can(caller.Role, rbac.ActionReviewTeam, rbac.RelManagerOf)
	queue := checker.Can(caller.Role, rbac.ActionReviewQueue, rbac.RelNone)

	switch scope {
	case ScopeMy:
		v.Own = true

	case ScopePendingApproval:
		v.Order = orderStartFirst
		v.ExcludeOwn = true
		if team {
			v.TeamStatus = StatusPending
		}
		if queue {
			v.QueueStatus = StatusManagerApproved
		}

	case ScopeAll:
		v.All = checker.Can(caller.Role, rbac.ActionViewAll, rbac.RelNone)

	case ScopeDefault:
		// Own requests plus one inbox: the team's when the caller has one,
		// otherwise the HR queue.
		v.Own = true
		switch {
		case team:
			v.TeamStatus = StatusPending
			v.ExcludeOwn = true
		case queue:
			v.QueueStatus = StatusManagerApproved
		}
	}
	return v
}

// relationship classifies caller against the request's owner. l.Employee
// must be loaded for manager_of to be detected.
func relationship(caller employee.Employee, l LeaveRequest) rbac.Relationship {
	if caller.ID == l.EmployeeID {
		return rbac.RelOwner
	}
	if l.Employee != nil && caller.IsManagerOf(*l.Employee) {
		return rbac.RelManagerOf
	}
	return rbac.RelNone
}

// CanView is the single-object rule: own request, a direct report's
// request, or view_all.
func CanView(checker CapabilityChecker, caller employee.Employee, l LeaveRequest) bool {
	rel := relationship(caller, l)
	if rel != rbac.RelNone {
		return true
	}
	return checker.Can(caller.Role, rbac.ActionViewAll, rel)
}
