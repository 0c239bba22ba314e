package service

import (
	domainauth "github.com/internlink/console/internal/domain/auth"
)

// Route names a navigable screen.
type Route string

// Navigable screens. RouteSignIn doubles as the fallback destination for
// unauthenticated or unrecognized navigations.
const (
	RouteSignIn             Route = "/"
	RouteRegister           Route = "/register"
	RouteDashboard          Route = "/dashboard"
	RouteCompanies          Route = "/companies"
	RouteStudents           Route = "/students"
	RouteInternships        Route = "/internships"
	RouteApplications       Route = "/applications"
	RouteEnrollments        Route = "/enrollments"
	RouteAdmins             Route = "/admins"
	RouteSettings           Route = "/settings"
	RouteCompanyInternships Route = "/company/internships"
)

// RoleSet is the set of roles permitted to render a guarded screen.
type RoleSet map[domainauth.Role]struct{}

// NewRoleSet builds a RoleSet from roles.
func NewRoleSet(roles ...domainauth.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether the role is permitted.
func (s RoleSet) Has(role domainauth.Role) bool {
	_, ok := s[role]
	return ok
}

// GuardRules maps each protected route to its permitted roles. Protected
// routes always map to a non-empty role set; routes absent from the table
// are public.
func GuardRules() map[Route]RoleSet {
	adminOnly := NewRoleSet(domainauth.RoleAdmin)
	return map[Route]RoleSet{
		RouteDashboard:          adminOnly,
		RouteCompanies:          adminOnly,
		RouteStudents:           adminOnly,
		RouteInternships:        adminOnly,
		RouteApplications:       adminOnly,
		RouteEnrollments:        adminOnly,
		RouteAdmins:             adminOnly,
		RouteSettings:           adminOnly,
		RouteCompanyInternships: NewRoleSet(domainauth.RoleCompany),
	}
}

// DefaultLandingFor returns the role's own landing screen. Unrecognized
// roles land on the sign-in entry point.
func DefaultLandingFor(role domainauth.Role) Route {
	switch role {
	case domainauth.RoleAdmin:
		return RouteDashboard
	case domainauth.RoleCompany:
		return RouteCompanyInternships
	default:
		return RouteSignIn
	}
}

// Outcome is a guard decision kind.
type Outcome int

const (
	// OutcomeLoading renders a neutral waiting indicator, never a redirect.
	OutcomeLoading Outcome = iota
	// OutcomeRender renders the guarded content.
	OutcomeRender
	// OutcomeRedirect navigates to Decision.Target instead of rendering.
	OutcomeRedirect
)

// Decision is the guard's verdict for a navigation.
type Decision struct {
	Outcome Outcome
	Target  Route // set only for OutcomeRedirect
}

// Decide gates a navigation. It is a pure function of the session snapshot
// and the required role set and must be re-evaluated on every session
// change, never cached:
//
//   - loading: wait, no redirect, regardless of identity or roles
//   - signed out: redirect to the sign-in entry point
//   - role not permitted: redirect to that role's own landing screen
//   - otherwise: render
func Decide(snap Snapshot, required RoleSet) Decision {
	if snap.Loading {
		return Decision{Outcome: OutcomeLoading}
	}

	role, ok := snap.Role()
	if !ok {
		return Decision{Outcome: OutcomeRedirect, Target: RouteSignIn}
	}

	if !required.Has(role) {
		return Decision{Outcome: OutcomeRedirect, Target: DefaultLandingFor(role)}
	}

	return Decision{Outcome: OutcomeRender}
}
