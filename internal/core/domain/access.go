package domain

// RedirectTarget names the page an unauthorised actor is sent to.
type RedirectTarget string

const (
	TargetSignIn          RedirectTarget = "sign-in"
	TargetAdminHome       RedirectTarget = "admin-home"
	TargetAgentHome       RedirectTarget = "agent-home"
	TargetPendingApproval RedirectTarget = "pending-approval"
)

// Decision is the outcome of an access check: either allowed, or a redirect
// to the page appropriate for the caller's role and status.
type Decision struct {
	Allowed  bool
	Redirect RedirectTarget
}

// Allow is the positive decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// RedirectTo builds a denial that sends the caller to target.
func RedirectTo(target RedirectTarget) Decision {
	return Decision{Redirect: target}
}

// Decide is the route guard. It is a pure total function over the small
// role/status space: every input combination maps to exactly one outcome.
//
// role is the empty string when there is no session. status is the empty
// string for administrators (status is not meaningful for that role).
// requiredStatuses == nil means the route imposes no status requirement.
func Decide(role Role, status AgentStatus, allowedRoles []Role, requiredStatuses []AgentStatus) Decision {
	if role == "" {
		return RedirectTo(TargetSignIn)
	}

	if !containsRole(allowedRoles, role) {
		switch {
		case role == RoleAdministrator:
			return RedirectTo(TargetAdminHome)
		case role == RoleAgent && status == StatusApproved:
			return RedirectTo(TargetAgentHome)
		case role == RoleAgent:
			return RedirectTo(TargetPendingApproval)
		default:
			return RedirectTo(TargetSignIn)
		}
	}

	if requiredStatuses != nil && !containsStatus(requiredStatuses, status) {
		switch {
		case role == RoleAgent && status == StatusPendingApproval:
			return RedirectTo(TargetPendingApproval)
		case role == RoleAgent && status == StatusApproved:
			return RedirectTo(TargetAgentHome)
		case role == RoleAdministrator:
			return RedirectTo(TargetAdminHome)
		default:
			return RedirectTo(TargetSignIn)
		}
	}

	return Allow()
}

func containsRole(roles []Role, r Role) bool {
	for _, candidate := range roles {
		if candidate == r {
			return true
		}
	}
	return false
}

func containsStatus(statuses []AgentStatus, s AgentStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
