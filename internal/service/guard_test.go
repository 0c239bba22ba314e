package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/internlink/console/internal/domain/auth"
)

func identityWithRole(role domainauth.Role) *domainauth.Identity {
	return &domainauth.Identity{UID: "uid-1", Email: "user@example.com", Role: role}
}

func TestDecide_LoadingAlwaysWaits(t *testing.T) {
	rules := GuardRules()

	// Loading wins regardless of identity state.
	for name, snap := range map[string]Snapshot{
		"no identity":   {Loading: true},
		"with identity": {Loading: true, Identity: identityWithRole(domainauth.RoleStudent)},
	} {
		t.Run(name, func(t *testing.T) {
			d := Decide(snap, rules[RouteDashboard])
			assert.Equal(t, OutcomeLoading, d.Outcome)
			assert.Empty(t, d.Target)
		})
	}
}

func TestDecide_SignedOutRedirectsToSignIn(t *testing.T) {
	d := Decide(Snapshot{}, GuardRules()[RouteDashboard])
	assert.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, RouteSignIn, d.Target)
}

func TestDecide_PermittedRoleRenders(t *testing.T) {
	rules := GuardRules()

	d := Decide(Snapshot{Identity: identityWithRole(domainauth.RoleAdmin)}, rules[RouteDashboard])
	assert.Equal(t, OutcomeRender, d.Outcome)

	d = Decide(Snapshot{Identity: identityWithRole(domainauth.RoleCompany)}, rules[RouteCompanyInternships])
	assert.Equal(t, OutcomeRender, d.Outcome)
}

func TestDecide_WrongRoleRedirectsToOwnLanding(t *testing.T) {
	rules := GuardRules()

	// A company user probing an admin screen lands on the company area,
	// not on sign-in: they are authenticated, just not permitted.
	d := Decide(Snapshot{Identity: identityWithRole(domainauth.RoleCompany)}, rules[RouteStudents])
	assert.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, RouteCompanyInternships, d.Target)

	d = Decide(Snapshot{Identity: identityWithRole(domainauth.RoleAdmin)}, rules[RouteCompanyInternships])
	assert.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, RouteDashboard, d.Target)

	// Student role has no landing of its own in the console.
	d = Decide(Snapshot{Identity: identityWithRole(domainauth.RoleStudent)}, rules[RouteDashboard])
	assert.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, RouteSignIn, d.Target)
}

func TestGuardRules_ProtectedRoutesNonEmpty(t *testing.T) {
	for route, set := range GuardRules() {
		require.NotEmpty(t, set, "route %s has an empty role set", route)
	}
}

func TestDefaultLandingFor(t *testing.T) {
	assert.Equal(t, RouteDashboard, DefaultLandingFor(domainauth.RoleAdmin))
	assert.Equal(t, RouteCompanyInternships, DefaultLandingFor(domainauth.RoleCompany))
	assert.Equal(t, RouteSignIn, DefaultLandingFor(domainauth.RoleStudent))
	assert.Equal(t, RouteSignIn, DefaultLandingFor(domainauth.Role("unknown")))
}
