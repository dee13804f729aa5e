package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/nishantpatil/placenet/pkg/domain"
)

func TestApplicationsRenderProgressLadder(t *testing.T) {
	tests := []struct {
		status domain.ApplicationStatus
		want   string
	}{
		{domain.StatusApplied, "25%"},
		{domain.StatusShortlisted, "50%"},
		{domain.StatusInterview, "75%"},
		{domain.StatusSelected, "100%"},
		{domain.StatusRejected, "100%"},
	}

	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			m := newApplicationsModel(nil)
			m, _ = m.Update(applicationsLoadedMsg{apps: []domain.Application{
				{ID: "a1", Job: domain.Job{Title: "Backend Engineer", Company: "Acme"}, Status: tc.status},
			}})

			view := m.View()
			if !strings.Contains(view, tc.want) {
				t.Errorf("expected %s for %s, got:\n%s", tc.want, tc.status, view)
			}
			if !strings.Contains(view, string(tc.status)) {
				t.Errorf("expected stage label %q, got:\n%s", tc.status, view)
			}
		})
	}
}

func TestApplicationsEmptyState(t *testing.T) {
	m := newApplicationsModel(nil)
	m, _ = m.Update(applicationsLoadedMsg{})
	if !strings.Contains(m.View(), "not applied") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}
}

func TestApplicationsLoadError(t *testing.T) {
	m := newApplicationsModel(nil)
	m, _ = m.Update(applicationsLoadedMsg{err: errors.New("boom")})
	if !strings.Contains(m.View(), "could not reach the server") {
		t.Errorf("expected friendly error, got:\n%s", m.View())
	}
}
