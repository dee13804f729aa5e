package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/internal/session"
	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

// newTestApp builds an app over an unreachable server. When id is non-nil
// the session is resolved and signed in; otherwise it is resolved logged out.
func newTestApp(t *testing.T, id *domain.Identity) App {
	t.Helper()
	c := client.New("http://127.0.0.1:1")
	s := session.NewStore(c, filepath.Join(t.TempDir(), "identity.json"))
	s.Initialize(context.Background())
	if id != nil {
		if err := s.CompleteExternalLogin(id); err != nil {
			t.Fatalf("CompleteExternalLogin: %v", err)
		}
	}
	a := NewApp(c, s, "http://127.0.0.1:1")
	a.width = 80
	a.height = 30
	return a
}

func student() *domain.Identity {
	return &domain.Identity{ID: "u1", Name: "Asha", Email: "asha@campus.edu", Role: domain.RoleStudent, Verified: true}
}

func TestLoadingShowsPlaceholder(t *testing.T) {
	c := client.New("http://127.0.0.1:1")
	s := session.NewStore(c, filepath.Join(t.TempDir(), "identity.json"))
	a := NewApp(c, s, "http://127.0.0.1:1")
	a.width = 80
	a.height = 30

	view := a.View()
	if !strings.Contains(view, "checking session") {
		t.Errorf("expected loading placeholder while session unresolved, got:\n%s", view)
	}
}

func TestAnonymousSessionLandsOnLogin(t *testing.T) {
	a := newTestApp(t, nil)
	model, _ := a.Update(sessionReadyMsg{id: nil})
	a = model.(App)

	if a.route != routeLogin {
		t.Fatalf("expected route %q, got %q", routeLogin, a.route)
	}
	if !strings.Contains(a.View(), "Sign in") {
		t.Errorf("expected sign-in page, got:\n%s", a.View())
	}
}

func TestResolvedStudentLandsOnDashboard(t *testing.T) {
	a := newTestApp(t, student())
	model, _ := a.Update(sessionReadyMsg{id: student()})
	a = model.(App)

	if a.route != "/dashboard" {
		t.Errorf("expected student home /dashboard, got %q", a.route)
	}
}

func TestStudentTabSwitching(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"2", "/jobs"},
		{"3", "/student/applications"},
		{"4", "/student/mock-interviews"},
		{"5", "/student/profile"},
		{"1", "/dashboard"},
	}

	a := newTestApp(t, student())
	app, _ := a.navigate("/dashboard")
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.key)})
			app = model.(App)
			if app.route != tc.want {
				t.Errorf("after key %q: expected route %q, got %q", tc.key, tc.want, app.route)
			}
		})
	}
}

func TestForbiddenRouteBouncesToOwnHome(t *testing.T) {
	a := newTestApp(t, student())
	app, _ := a.navigate("/admin/dashboard")

	if app.route != "/dashboard" {
		t.Errorf("student on an admin route must land on /dashboard, got %q", app.route)
	}
}

func TestPostLoginReturnsToRequestedPath(t *testing.T) {
	a := newTestApp(t, nil)
	app, _ := a.navigate("/jobs")
	if app.route != routeLogin {
		t.Fatalf("anonymous request for /jobs must redirect to login, got %q", app.route)
	}

	// Sign-in succeeds; the originally requested path wins over role home.
	id := student()
	if err := app.session.CompleteExternalLogin(id); err != nil {
		t.Fatalf("CompleteExternalLogin: %v", err)
	}
	model, _ := app.Update(loginResultMsg{id: id})
	app = model.(App)
	if app.route != "/jobs" {
		t.Errorf("expected post-login return to /jobs, got %q", app.route)
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	a := newTestApp(t, student())
	app, _ := a.navigate("/dashboard")

	app.session.Logout(context.Background())
	model, _ := app.Update(loggedOutMsg{})
	app = model.(App)
	if app.route != routeLogin {
		t.Errorf("expected login after logout, got %q", app.route)
	}
}

func TestAuthenticatedUserCannotSeeLogin(t *testing.T) {
	a := newTestApp(t, student())
	app, _ := a.navigate(routeLogin)

	if app.route != "/dashboard" {
		t.Errorf("signed-in student visiting login must bounce home, got %q", app.route)
	}
}

func TestEventPushShowsToast(t *testing.T) {
	a := newTestApp(t, student())
	app, _ := a.navigate("/dashboard")

	model, _ := app.Update(EventMsg{Event: domain.Event{
		Kind: domain.EventNotification, Severity: domain.SeverityError, Message: "interview cancelled",
	}})
	app = model.(App)
	if !strings.Contains(app.View(), "interview cancelled") {
		t.Errorf("expected toast with pushed message, got:\n%s", app.View())
	}
}

func TestNotificationOverlayOpenAndClose(t *testing.T) {
	a := newTestApp(t, student())
	app, _ := a.navigate("/dashboard")

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	app = model.(App)
	if !app.notifOpen {
		t.Fatal("expected notification overlay to open on ctrl+n")
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)
	if app.notifOpen {
		t.Error("expected notification overlay to close on esc")
	}
}

func TestGlobalQuitOnQ(t *testing.T) {
	a := newTestApp(t, student())
	app, _ := a.navigate("/dashboard")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
}
