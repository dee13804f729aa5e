package tui

import (
	"strings"
	"testing"

	"github.com/nishantpatil/placenet/pkg/domain"
)

func TestAdminRendersFullStatusLadder(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(adminLoadedMsg{analytics: &domain.Analytics{
		TotalStudents: 40,
		Placed:        10,
		ByStatus:      map[string]int{"Applied": 12, "Selected": 10},
	}})

	view := m.View()
	// Statuses with no data still chart at zero.
	for _, label := range []string{"Applied", "Shortlisted", "Interview Scheduled", "Selected", "Rejected"} {
		if !strings.Contains(view, label) {
			t.Errorf("expected status %q in chart, got:\n%s", label, view)
		}
	}
	if !strings.Contains(view, "25% placed") {
		t.Errorf("expected placement rate, got:\n%s", view)
	}
}

func TestAdminVerifyRemovesUserFromQueue(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(adminLoadedMsg{
		analytics: &domain.Analytics{},
		unverified: []domain.Identity{
			{ID: "u1", Name: "Pending One", Email: "p1@campus.edu", Role: domain.RoleStudent},
			{ID: "u2", Name: "Pending Two", Email: "p2@campus.edu", Role: domain.RoleRecruiter},
		},
	})
	m, _ = m.Update(userVerifiedMsg{userID: "u1"})

	view := m.View()
	if strings.Contains(view, "Pending One") {
		t.Errorf("verified user must leave the queue, got:\n%s", view)
	}
	if !strings.Contains(view, "Pending Two") {
		t.Errorf("other users must stay queued, got:\n%s", view)
	}
	if !strings.Contains(view, "account verified") {
		t.Errorf("expected confirmation, got:\n%s", view)
	}
}

func TestAdminEmptyQueue(t *testing.T) {
	m := newAdminModel(nil)
	m, _ = m.Update(adminLoadedMsg{analytics: &domain.Analytics{}})
	if !strings.Contains(m.View(), "nothing pending") {
		t.Errorf("expected empty queue message, got:\n%s", m.View())
	}
}
