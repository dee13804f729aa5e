package domain

import "time"

// Job is a posting on the job board.
type Job struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Package     string    `json:"package,omitempty"`
	Skills      []string  `json:"skills,omitempty"`
	Deadline    time.Time `json:"deadline,omitempty"`
	PostedBy    string    `json:"postedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Open returns true if the job is still accepting applications.
// A zero deadline means no deadline was set.
func (j Job) Open(now time.Time) bool {
	return j.Deadline.IsZero() || now.Before(j.Deadline)
}
