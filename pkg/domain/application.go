package domain

import "time"

// ApplicationStatus is the triage ladder for a job application.
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusShortlisted ApplicationStatus = "Shortlisted"
	StatusInterview   ApplicationStatus = "Interview Scheduled"
	StatusSelected    ApplicationStatus = "Selected"
	StatusRejected    ApplicationStatus = "Rejected"
)

// Application links a student to a job posting.
type Application struct {
	ID          string            `json:"_id"`
	Job         Job               `json:"job"`
	StudentID   string            `json:"student,omitempty"`
	StudentName string            `json:"studentName,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Stage returns the 1-4 progress stage for a status. Rejected is terminal
// and reported as stage 4 alongside Selected; the caller distinguishes the
// two by status.
func (s ApplicationStatus) Stage() int {
	switch s {
	case StatusShortlisted:
		return 2
	case StatusInterview:
		return 3
	case StatusSelected, StatusRejected:
		return 4
	default:
		return 1
	}
}

// Percent returns the progress-bar fill for a status (25/50/75/100).
func (s ApplicationStatus) Percent() int {
	return s.Stage() * 25
}

// Terminal returns true once an application can no longer advance.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusSelected || s == StatusRejected
}
