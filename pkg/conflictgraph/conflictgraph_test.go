package conflictgraph

import (
	"strings"
	"testing"

	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

func conflictLayout(t *testing.T) *timeline.Layout {
	t.Helper()
	sheet := timeline.DaySheet{
		Tables: []timeline.Table{
			{ID: 1, Key: "1"},
			{ID: 2, Key: "2"},
		},
		Reservations: []timeline.Reservation{
			{ID: "alpha", StartTime: "18:00", Covers: 2, Status: timeline.StatusBooked, TableIDs: []int{1}, ExpectedMinutes: 90},
			{ID: "bravo", StartTime: "19:00", Covers: 2, Status: timeline.StatusBooked, TableIDs: []int{1}, ExpectedMinutes: 90},
			{ID: "clean", StartTime: "12:00", Covers: 2, Status: timeline.StatusBooked, TableIDs: []int{2}},
		},
	}
	layout, dropped := timeline.Build(sheet,
		timeline.TurnTimePolicy{TwoTop: 90, FourTop: 120, SixTop: 150, Large: 180},
		timeline.ServiceWindow{StartHour: 10, EndHour: 23})
	if len(dropped) != 0 {
		t.Fatalf("dropped = %v", dropped)
	}
	return layout
}

func TestEdges(t *testing.T) {
	edges := Edges(conflictLayout(t))

	if len(edges) != 1 {
		t.Fatalf("Edges() = %v, want one edge", edges)
	}
	e := edges[0]
	if e.A != "alpha" || e.B != "bravo" || e.TableKey != "1" {
		t.Errorf("edge = %+v, want alpha--bravo on table 1", e)
	}
}

func TestEdgesEmptyWhenNoConflicts(t *testing.T) {
	sheet := timeline.DaySheet{
		Tables: []timeline.Table{{ID: 1, Key: "1"}},
		Reservations: []timeline.Reservation{
			{ID: "a", StartTime: "12:00", Covers: 2, Status: timeline.StatusBooked, TableIDs: []int{1}, ExpectedMinutes: 60},
			{ID: "b", StartTime: "13:00", Covers: 2, Status: timeline.StatusBooked, TableIDs: []int{1}, ExpectedMinutes: 60},
		},
	}
	layout, _ := timeline.Build(sheet,
		timeline.TurnTimePolicy{TwoTop: 90, FourTop: 120, SixTop: 150, Large: 180},
		timeline.ServiceWindow{StartHour: 10, EndHour: 23})

	if edges := Edges(layout); len(edges) != 0 {
		t.Errorf("Edges() = %v, want none", edges)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(conflictLayout(t))

	for _, want := range []string{
		"graph conflicts {",
		`"alpha"`,
		`"bravo"`,
		`"alpha" -- "bravo" [label="1"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"clean"`) {
		t.Error("DOT should not contain conflict-free reservations")
	}
}
