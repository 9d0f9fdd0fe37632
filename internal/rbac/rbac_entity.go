package rbac

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleDirector Role = "director"
)

var AllRoles = []Role{RoleEmployee, RoleManager, RoleAdmin, RoleHR, RoleDirector}

func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

func (r Role) Display() string {
	switch r {
	case RoleEmployee:
		return "Employee"
	case RoleManager:
		return "Manager"
	case RoleAdmin:
		return "Administrator"
	case RoleHR:
		return "HR Staff"
	case RoleDirector:
		return "Director"
	default:
		return string(r)
	}
}

type Action string

const (
	ActionCreateLeave     Action = "create_leave"
	ActionViewAll         Action = "view_all"
	ActionReviewTeam      Action = "review_team"
	ActionReviewQueue     Action = "review_queue"
	ActionApproveManager  Action = "approve_manager"
	ActionRejectManager   Action = "reject_manager"
	ActionApproveHR       Action = "approve_hr"
	ActionRejectHR        Action = "reject_hr"
	ActionCancel          Action = "cancel"
	ActionUpdate          Action = "update"
	ActionDelete          Action = "delete"
	ActionManageEmployees Action = "manage_employees"
)

var AllActions = []Action{
	ActionCreateLeave,
	ActionViewAll,
	ActionReviewTeam,
	ActionReviewQueue,
	ActionApproveManager,
	ActionRejectManager,
	ActionApproveHR,
	ActionRejectHR,
	ActionCancel,
	ActionUpdate,
	ActionDelete,
	ActionManageEmployees,
}

// Relationship is the caller's relation to the employee who owns the target.
type Relationship string

const (
	RelOwner     Relationship = "owner"
	RelManagerOf Relationship = "manager_of"
	RelNone      Relationship = "none"
)

var AllRelationships = []Relationship{RelOwner, RelManagerOf, RelNone}
