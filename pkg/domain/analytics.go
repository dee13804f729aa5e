package domain

// Analytics is the admin dashboard summary returned by the server.
type Analytics struct {
	TotalStudents     int            `json:"totalStudents"`
	TotalRecruiters   int            `json:"totalRecruiters"`
	TotalJobs         int            `json:"totalJobs"`
	TotalApplications int            `json:"totalApplications"`
	Placed            int            `json:"placed"`
	ByStatus          map[string]int `json:"byStatus,omitempty"`
	ByBranch          map[string]int `json:"byBranch,omitempty"`
}

// SeriesPoint is one labeled value in a chart series.
type SeriesPoint struct {
	Label string
	Value int
}

// statusOrder fixes chart ordering for the application-status breakdown.
var statusOrder = []ApplicationStatus{
	StatusApplied, StatusShortlisted, StatusInterview, StatusSelected, StatusRejected,
}

// StatusSeries shapes the ByStatus map into a stable-ordered series for
// rendering. Statuses absent from the map appear with a zero value so the
// chart always shows the full ladder.
func (a Analytics) StatusSeries() []SeriesPoint {
	pts := make([]SeriesPoint, 0, len(statusOrder))
	for _, s := range statusOrder {
		pts = append(pts, SeriesPoint{Label: string(s), Value: a.ByStatus[string(s)]})
	}
	return pts
}

// PlacementRate returns placed/totalStudents as a 0-100 percentage,
// zero when no students exist.
func (a Analytics) PlacementRate() int {
	if a.TotalStudents == 0 {
		return 0
	}
	return a.Placed * 100 / a.TotalStudents
}
