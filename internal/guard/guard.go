// Package guard decides, per route, whether the current session may render
// the requested page or must be redirected. Decisions are pure functions of
// (loading flag, identity, route); no state is kept here.
package guard

import "github.com/nishantpatil/placenet/pkg/domain"

// Route declares a path and the roles allowed to enter it. An empty Roles
// set means any authenticated identity may render the page.
type Route struct {
	Path  string
	Roles []domain.Role
}

// Outcome is the result of evaluating a route against the session.
type Outcome int

const (
	// OutcomeLoading means the session check has not finished; render a
	// placeholder and make no redirect decision yet.
	OutcomeLoading Outcome = iota
	// OutcomeRender means the requested page may render.
	OutcomeRender
	// OutcomeRedirectLogin means there is no identity; go to the login
	// route, remembering where the user wanted to go.
	OutcomeRedirectLogin
	// OutcomeRedirectHome means the identity's role is not allowed here;
	// go to that role's own home, never a generic error page.
	OutcomeRedirectHome
)

// LoginRoute is where unauthenticated sessions are sent.
const LoginRoute = "/login"

// Decision is the guard's verdict for one render.
type Decision struct {
	Outcome Outcome
	// RedirectTo is set for the two redirect outcomes.
	RedirectTo string
	// From retains the originally requested path for post-login return.
	From string
}

// Decide evaluates the guard state machine for one route.
func Decide(loading bool, id *domain.Identity, route Route) Decision {
	if loading {
		return Decision{Outcome: OutcomeLoading}
	}
	if id == nil {
		return Decision{Outcome: OutcomeRedirectLogin, RedirectTo: LoginRoute, From: route.Path}
	}
	if len(route.Roles) == 0 {
		return Decision{Outcome: OutcomeRender}
	}
	for _, r := range route.Roles {
		if id.Role == r {
			return Decision{Outcome: OutcomeRender}
		}
	}
	return Decision{Outcome: OutcomeRedirectHome, RedirectTo: id.Role.HomeRoute()}
}

// Routes is the protected route table. Public routes (login, register,
// forgot-password, landing) are not listed; they render for anyone.
var Routes = map[string]Route{
	"/dashboard":               {Path: "/dashboard"},
	"/student/profile":         {Path: "/student/profile", Roles: []domain.Role{domain.RoleStudent}},
	"/jobs":                    {Path: "/jobs", Roles: []domain.Role{domain.RoleStudent}},
	"/student/applications":    {Path: "/student/applications", Roles: []domain.Role{domain.RoleStudent}},
	"/student/mock-interviews": {Path: "/student/mock-interviews", Roles: []domain.Role{domain.RoleStudent}},
	"/recruiter/dashboard":     {Path: "/recruiter/dashboard", Roles: []domain.Role{domain.RoleRecruiter}},
	"/admin/dashboard":         {Path: "/admin/dashboard", Roles: []domain.Role{domain.RoleAdmin, domain.RoleTPO}},
	"/admin/interviews":        {Path: "/admin/interviews", Roles: []domain.Role{domain.RoleAdmin, domain.RoleTPO}},
}

// Lookup returns the declared route for a path. Unknown paths are treated
// as requiring authentication only.
func Lookup(path string) Route {
	if r, ok := Routes[path]; ok {
		return r
	}
	return Route{Path: path}
}
