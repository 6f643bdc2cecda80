package viewport

import (
	"testing"

	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

var (
	hitPolicy = timeline.TurnTimePolicy{TwoTop: 90, FourTop: 120, SixTop: 150, Large: 180}
	hitWindow = timeline.ServiceWindow{StartHour: 10, EndHour: 23}
)

func hitLayout(t *testing.T) *timeline.Layout {
	t.Helper()
	sheet := timeline.DaySheet{
		Tables: []timeline.Table{
			{ID: 1, Key: "1"},
			{ID: 2, Key: "2"},
		},
		Reservations: []timeline.Reservation{
			{ID: "r1", StartTime: "10:00", Covers: 4, Status: timeline.StatusBooked, TableIDs: []int{1}},
			{ID: "r2", StartTime: "18:00", Covers: 2, Status: timeline.StatusBooked, TableIDs: []int{2}},
			{ID: "r3", StartTime: "18:30", Covers: 2, Status: timeline.StatusBooked, TableIDs: []int{2}},
		},
	}
	layout, dropped := timeline.Build(sheet, hitPolicy, hitWindow)
	if len(dropped) != 0 {
		t.Fatalf("dropped = %v", dropped)
	}
	return layout
}

// identity-ish transform: scale 1, no pan, no chrome, content 1000 wide.
func hitTransform(l *timeline.Layout) Transform {
	return NewTransform(0, 0, 1000, 800, 1000, l.TotalHeight())
}

func TestHitTestFindsBar(t *testing.T) {
	layout := hitLayout(t)
	ht := NewHitTester(layout, hitTransform(layout))

	// r1 starts at window start: StartPercent 0, lane 0, row 0.
	// Bar rect: x [0, width), y [RowPadding, RowPadding+BarHeight).
	hit, ok := ht.HitTest(1, timeline.RowPadding+1)
	if !ok {
		t.Fatal("HitTest missed bar r1")
	}
	if hit.ReservationID != "r1" || hit.RowIndex != 0 {
		t.Errorf("hit = %q row %d, want r1 row 0", hit.ReservationID, hit.RowIndex)
	}
}

func TestHitTestSecondLane(t *testing.T) {
	layout := hitLayout(t)
	ht := NewHitTester(layout, hitTransform(layout))

	// r2 and r3 overlap on table 2 (row 1): r3 sits in lane 1.
	row1Top := layout.Rows[0].Height
	laneY := row1Top + timeline.RowPadding + timeline.BarHeight + timeline.LaneGap + 1
	x := layout.Rows[1].Bars[1].StartPercent/100*1000 + 1

	hit, ok := ht.HitTest(x, laneY)
	if !ok {
		t.Fatal("HitTest missed lane-1 bar")
	}
	if hit.ReservationID != "r3" {
		t.Errorf("hit = %q, want r3", hit.ReservationID)
	}
	if hit.Bar.Lane != 1 {
		t.Errorf("Lane = %d, want 1", hit.Bar.Lane)
	}
}

func TestHitTestMisses(t *testing.T) {
	layout := hitLayout(t)
	tr := NewTransform(80, 40, 1000, 800, 1000, layout.TotalHeight())
	ht := NewHitTester(layout, tr)

	tests := []struct {
		name string
		x, y float64
	}{
		{"over label column", 40, 200},
		{"over header", 300, 20},
		{"below all rows", 300, 40 + layout.TotalHeight() + 10},
		{"empty time region", 80 + 990, 40 + timeline.RowPadding + 1}, // far right of row 0's only bar
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ht.HitTest(tt.x, tt.y); ok {
				t.Errorf("HitTest(%v,%v) hit, want miss", tt.x, tt.y)
			}
		})
	}
}

func TestHitTestRespectsTransform(t *testing.T) {
	layout := hitLayout(t)
	tr := hitTransform(layout).ZoomAt(0, 0, 2.0)
	ht := NewHitTester(layout, tr)

	// At scale 2 the lane-0 bar of row 0 covers y [2*RowPadding, ...).
	hit, ok := ht.HitTest(1, 2*timeline.RowPadding+2)
	if !ok {
		t.Fatal("HitTest missed bar under zoomed transform")
	}
	if hit.ReservationID != "r1" {
		t.Errorf("hit = %q, want r1", hit.ReservationID)
	}
}

func TestRowAtScreenY(t *testing.T) {
	layout := hitLayout(t)
	ht := NewHitTester(layout, hitTransform(layout))

	tests := []struct {
		name    string
		y       float64
		wantRow int
		wantOK  bool
	}{
		{"row zero", 1, 0, true},
		{"row one", layout.Rows[0].Height + 1, 1, true},
		{"unassigned row", layout.Rows[0].Height + layout.Rows[1].Height + 1, 2, true},
		{"past the end", layout.TotalHeight() + 5, 0, false},
		{"above content", -3, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ht.RowAtScreenY(tt.y)
			if ok != tt.wantOK {
				t.Fatalf("RowAtScreenY(%v) ok = %v, want %v", tt.y, ok, tt.wantOK)
			}
			if ok && got != tt.wantRow {
				t.Errorf("RowAtScreenY(%v) = %d, want %d", tt.y, got, tt.wantRow)
			}
		})
	}
}
