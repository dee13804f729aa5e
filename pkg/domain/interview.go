package domain

import "time"

// MockInterview is a practice interview slot requested by a student and
// scored by an admin.
type MockInterview struct {
	ID          string    `json:"_id"`
	StudentID   string    `json:"student,omitempty"`
	StudentName string    `json:"studentName,omitempty"`
	Topic       string    `json:"topic"`
	ScheduledAt time.Time `json:"scheduledAt,omitempty"`
	Status      string    `json:"status,omitempty"`
	Feedback    string    `json:"feedback,omitempty"`
	Score       int       `json:"score,omitempty"`
}
