package domain

// Severity tags a pushed notification for toast styling.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// NormalizeSeverity maps unknown severities to info, matching how the
// original toast handler treated anything it didn't recognize.
func NormalizeSeverity(s Severity) Severity {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning:
		return s
	}
	return SeverityInfo
}

// Event is a server-pushed realtime message.
type Event struct {
	Kind     string   `json:"event"`
	Severity Severity `json:"type,omitempty"`
	Message  string   `json:"message,omitempty"`
	Role     Role     `json:"role,omitempty"`
	JobID    string   `json:"jobId,omitempty"`
}

// Event kinds the client understands.
const (
	EventNotification = "notification"
	EventJobPosted    = "job:new"
)

// VisibleTo reports whether an event should surface for the given role.
// Notifications are room-scoped by the server and always visible; broadcast
// events carry a role filter (e.g. new-job broadcasts target students).
func (e Event) VisibleTo(r Role) bool {
	if e.Kind == EventJobPosted {
		return r == RoleStudent
	}
	if e.Role != "" {
		return e.Role == r
	}
	return true
}
