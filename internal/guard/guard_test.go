package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nishantpatil/placenet/pkg/domain"
)

func ident(role domain.Role) *domain.Identity {
	return &domain.Identity{ID: "u1", Name: "Test", Email: "t@campus.edu", Role: role}
}

func TestLoadingNeverRedirects(t *testing.T) {
	for path, route := range Routes {
		d := Decide(true, nil, route)
		assert.Equal(t, OutcomeLoading, d.Outcome, "route %s must wait while loading", path)
		assert.Empty(t, d.RedirectTo)
	}
}

func TestAnonymousRedirectsToLoginWithFrom(t *testing.T) {
	d := Decide(false, nil, Lookup("/recruiter/dashboard"))
	assert.Equal(t, OutcomeRedirectLogin, d.Outcome)
	assert.Equal(t, "/login", d.RedirectTo)
	assert.Equal(t, "/recruiter/dashboard", d.From, "requested path retained for post-login return")
}

func TestEmptyRoleSetRendersForAnyIdentity(t *testing.T) {
	roles := []domain.Role{domain.RoleStudent, domain.RoleRecruiter, domain.RoleAdmin, domain.RoleTPO}
	for _, r := range roles {
		d := Decide(false, ident(r), Lookup("/dashboard"))
		assert.Equal(t, OutcomeRender, d.Outcome, "role %s on open route", r)
	}
}

func TestForbiddenRedirectsToOwnRoleHome(t *testing.T) {
	tests := []struct {
		name string
		role domain.Role
		path string
		home string
	}{
		{"student on admin route", domain.RoleStudent, "/admin/dashboard", "/dashboard"},
		{"student on recruiter route", domain.RoleStudent, "/recruiter/dashboard", "/dashboard"},
		{"recruiter on student route", domain.RoleRecruiter, "/jobs", "/recruiter/dashboard"},
		{"recruiter on admin route", domain.RoleRecruiter, "/admin/dashboard", "/recruiter/dashboard"},
		{"admin on student route", domain.RoleAdmin, "/student/applications", "/admin/dashboard"},
		{"tpo on recruiter route", domain.RoleTPO, "/recruiter/dashboard", "/admin/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(false, ident(tt.role), Lookup(tt.path))
			assert.Equal(t, OutcomeRedirectHome, d.Outcome)
			assert.Equal(t, tt.home, d.RedirectTo, "must go to own home, never the requested route")
		})
	}
}

func TestAuthorizedRoleRenders(t *testing.T) {
	tests := []struct {
		role domain.Role
		path string
	}{
		{domain.RoleStudent, "/jobs"},
		{domain.RoleStudent, "/student/mock-interviews"},
		{domain.RoleRecruiter, "/recruiter/dashboard"},
		{domain.RoleAdmin, "/admin/dashboard"},
		{domain.RoleTPO, "/admin/dashboard"},
		{domain.RoleTPO, "/admin/interviews"},
	}
	for _, tt := range tests {
		d := Decide(false, ident(tt.role), Lookup(tt.path))
		assert.Equal(t, OutcomeRender, d.Outcome, "%s on %s", tt.role, tt.path)
	}
}

func TestUnknownPathRequiresAuthOnly(t *testing.T) {
	d := Decide(false, nil, Lookup("/nowhere"))
	assert.Equal(t, OutcomeRedirectLogin, d.Outcome)

	d = Decide(false, ident(domain.RoleRecruiter), Lookup("/nowhere"))
	assert.Equal(t, OutcomeRender, d.Outcome)
}
