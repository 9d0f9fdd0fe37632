package rbac

// relAny in a policy row matches every relationship.
const relAny = "*"

const modelText = `[request_definition]
r = sub, act, rel

[policy_definition]
p = sub, act, rel

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.act == p.act && (p.rel == "*" || r.rel == p.rel)
`

type policyRow struct {
	role   Role
	action Action
	rel    string
}

func defaultPolicy() []policyRow {
	var rows []policyRow
	add := func(action Action, rel string, roles ...Role) {
		for _, r := range roles {
			rows = append(rows, policyRow{role: r, action: action, rel: rel})
		}
	}

	// First-line approval belongs to whoever is the requester's manager,
	// provided they hold a supervisory role.
	add(ActionApproveManager, string(RelManagerOf), RoleManager, RoleAdmin, RoleDirector, RoleHR)
	add(ActionRejectManager, string(RelManagerOf), RoleManager, RoleAdmin, RoleDirector, RoleHR)

	add(ActionApproveHR, relAny, RoleHR, RoleAdmin, RoleDirector)
	add(ActionRejectHR, relAny, RoleHR, RoleAdmin, RoleDirector)

	add(ActionCancel, string(RelOwner), AllRoles...)
	add(ActionUpdate, string(RelOwner), AllRoles...)
	add(ActionDelete, string(RelOwner), AllRoles...)

	add(ActionCreateLeave, relAny, AllRoles...)

	// Read access beyond the caller's own requests and direct reports.
	add(ActionViewAll, relAny, RoleHR, RoleAdmin, RoleDirector)
	// Approval inboxes: pending requests of direct reports, and the
	// organisation-wide manager_approved queue.
	add(ActionReviewTeam, string(RelManagerOf), RoleManager, RoleAdmin, RoleDirector)
	add(ActionReviewQueue, relAny, RoleHR, RoleAdmin)

	add(ActionManageEmployees, relAny, RoleAdmin, RoleHR)

	return rows
}
