package domain

// StudentProfile is the student's placement profile.
type StudentProfile struct {
	ID        string   `json:"_id,omitempty"`
	Branch    string   `json:"branch,omitempty"`
	Degree    string   `json:"degree,omitempty"`
	GradYear  int      `json:"gradYear,omitempty"`
	CGPA      float64  `json:"cgpa,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	ResumeURL string   `json:"resumeUrl,omitempty"`
}
