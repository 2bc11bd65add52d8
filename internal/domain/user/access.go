package user

// View is a role-gated area of the dashboard.
type View string

const (
	ViewDashboard     View = "dashboard"
	ViewContributions View = "contributions"
	ViewQuery         View = "query"
	ViewMedia         View = "media"
	ViewDesign        View = "design"
	ViewTechLead      View = "techlead"
	ViewAdmin         View = "admin"
	ViewTechTeams     View = "techteams"
)

// IsAdmin reports whether the role/team pair administers events and members.
// Intellexa and Event team members other than the technical lead are admins.
func IsAdmin(role Role, team Team) bool {
	return (team == TeamIntellexa || team == TeamEvent) && role != RoleTechnicalLead
}

// IsTechLead reports whether the role/team pair is the club's technical lead.
func IsTechLead(role Role, team Team) bool {
	return team == TeamIntellexa && role == RoleTechnicalLead
}

// CanAccess checks a view against the caller's role and team. authenticated is
// false for anonymous callers, who only see the public views.
func CanAccess(authenticated bool, role Role, team Team, view View) error {
	switch view {
	case ViewDashboard, ViewContributions, ViewQuery:
		return nil
	}
	if !authenticated {
		return ErrAccessDenied
	}

	allowed := false
	switch view {
	case ViewMedia:
		allowed = team == TeamMedia
	case ViewDesign:
		allowed = team == TeamDesign
	case ViewTechLead:
		allowed = IsTechLead(role, team)
	case ViewAdmin:
		allowed = IsAdmin(role, team)
	case ViewTechTeams:
		allowed = true
	}
	if !allowed {
		return ErrAccessDenied
	}
	return nil
}
