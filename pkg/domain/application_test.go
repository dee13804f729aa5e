package domain

import "testing"

func TestApplicationStatusStage(t *testing.T) {
	tests := []struct {
		status  ApplicationStatus
		stage   int
		percent int
	}{
		{StatusApplied, 1, 25},
		{StatusShortlisted, 2, 50},
		{StatusInterview, 3, 75},
		{StatusSelected, 4, 100},
		{StatusRejected, 4, 100},
		{ApplicationStatus("Unknown"), 1, 25},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Stage(); got != tt.stage {
				t.Errorf("Stage() = %d, want %d", got, tt.stage)
			}
			if got := tt.status.Percent(); got != tt.percent {
				t.Errorf("Percent() = %d, want %d", got, tt.percent)
			}
		})
	}
}

func TestApplicationStatusTerminal(t *testing.T) {
	if StatusApplied.Terminal() || StatusShortlisted.Terminal() || StatusInterview.Terminal() {
		t.Error("non-final statuses reported terminal")
	}
	if !StatusSelected.Terminal() || !StatusRejected.Terminal() {
		t.Error("final statuses not reported terminal")
	}
}

func TestEventVisibleTo(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		role    Role
		visible bool
	}{
		{"job broadcast to student", Event{Kind: EventJobPosted}, RoleStudent, true},
		{"job broadcast to recruiter", Event{Kind: EventJobPosted}, RoleRecruiter, false},
		{"job broadcast to admin", Event{Kind: EventJobPosted}, RoleAdmin, false},
		{"notification to anyone", Event{Kind: EventNotification}, RoleRecruiter, true},
		{"role-tagged match", Event{Kind: EventNotification, Role: RoleTPO}, RoleTPO, true},
		{"role-tagged mismatch", Event{Kind: EventNotification, Role: RoleTPO}, RoleStudent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.VisibleTo(tt.role); got != tt.visible {
				t.Errorf("VisibleTo(%s) = %v, want %v", tt.role, got, tt.visible)
			}
		})
	}
}
