package domain

import "testing"

func TestStatusSeriesStableOrder(t *testing.T) {
	a := Analytics{ByStatus: map[string]int{
		"Selected": 3,
		"Applied":  10,
	}}
	pts := a.StatusSeries()
	if len(pts) != 5 {
		t.Fatalf("got %d points, want 5 (full ladder)", len(pts))
	}
	if pts[0].Label != "Applied" || pts[0].Value != 10 {
		t.Errorf("pts[0] = %+v, want Applied/10", pts[0])
	}
	if pts[3].Label != "Selected" || pts[3].Value != 3 {
		t.Errorf("pts[3] = %+v, want Selected/3", pts[3])
	}
	// Missing statuses fill in with zero.
	if pts[1].Label != "Shortlisted" || pts[1].Value != 0 {
		t.Errorf("pts[1] = %+v, want Shortlisted/0", pts[1])
	}
}

func TestPlacementRate(t *testing.T) {
	tests := []struct {
		name     string
		students int
		placed   int
		want     int
	}{
		{"no students", 0, 0, 0},
		{"half placed", 200, 100, 50},
		{"all placed", 40, 40, 100},
		{"rounds down", 3, 1, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analytics{TotalStudents: tt.students, Placed: tt.placed}
			if got := a.PlacementRate(); got != tt.want {
				t.Errorf("PlacementRate() = %d, want %d", got, tt.want)
			}
		})
	}
}
