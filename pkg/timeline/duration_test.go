package timeline

import "testing"

var testPolicy = TurnTimePolicy{TwoTop: 90, FourTop: 120, SixTop: 150, Large: 180}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		res       Reservation
		wantStart int
		wantEnd   int
	}{
		{
			name:      "tier B party of four at 18:00",
			res:       Reservation{ID: "a", StartTime: "18:00", Covers: 4, Status: StatusBooked},
			wantStart: 1080,
			wantEnd:   1200,
		},
		{
			name:      "explicit duration wins over policy",
			res:       Reservation{ID: "a", StartTime: "18:00", Covers: 4, Status: StatusBooked, ExpectedMinutes: 45},
			wantStart: 1080,
			wantEnd:   1125,
		},
		{
			name:      "two top uses tier A",
			res:       Reservation{ID: "a", StartTime: "10:00", Covers: 2, Status: StatusConfirmed},
			wantStart: 600,
			wantEnd:   690,
		},
		{
			name:      "large party uses tier D",
			res:       Reservation{ID: "a", StartTime: "10:00", Covers: 9, Status: StatusBooked},
			wantStart: 600,
			wantEnd:   780,
		},
		{
			name:      "zero covers falls back to large tier",
			res:       Reservation{ID: "a", StartTime: "10:00", Covers: 0, Status: StatusBooked},
			wantStart: 600,
			wantEnd:   780,
		},
		{
			name:      "cancelled renders fixed short interval",
			res:       Reservation{ID: "a", StartTime: "12:00", Covers: 6, Status: StatusCancelled, ExpectedMinutes: 240},
			wantStart: 720,
			wantEnd:   735,
		},
		{
			name:      "no-show renders fixed short interval",
			res:       Reservation{ID: "a", StartTime: "12:00", Covers: 2, Status: StatusNoShow},
			wantStart: 720,
			wantEnd:   735,
		},
		{
			name:      "completed clamps to actual completion",
			res:       Reservation{ID: "a", StartTime: "18:00", Covers: 4, Status: StatusCompleted, CompletedAt: "2026-08-23T19:15:00Z"},
			wantStart: 1080,
			wantEnd:   1155,
		},
		{
			name:      "completed too early clamps to minimum",
			res:       Reservation{ID: "a", StartTime: "18:00", Covers: 4, Status: StatusCompleted, CompletedAt: "2026-08-23T18:02:00Z"},
			wantStart: 1080,
			wantEnd:   1090,
		},
		{
			name:      "completed past expected clamps to expected end",
			res:       Reservation{ID: "a", StartTime: "18:00", Covers: 4, Status: StatusCompleted, CompletedAt: "2026-08-23T23:30:00Z"},
			wantStart: 1080,
			wantEnd:   1200,
		},
		{
			name:      "completed with bad timestamp falls back to expected",
			res:       Reservation{ID: "a", StartTime: "18:00", Covers: 4, Status: StatusCompleted, CompletedAt: "not-a-time"},
			wantStart: 1080,
			wantEnd:   1200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := Resolve(tt.res, testPolicy)
			if !ok {
				t.Fatal("Resolve() ok = false, want true")
			}
			if span.Start != tt.wantStart {
				t.Errorf("Start = %d, want %d", span.Start, tt.wantStart)
			}
			if span.End != tt.wantEnd {
				t.Errorf("End = %d, want %d", span.End, tt.wantEnd)
			}
		})
	}
}

func TestResolveUnparsableStart(t *testing.T) {
	for _, start := range []string{"", "25:00", "noon", "18:60", "18"} {
		res := Reservation{ID: "a", StartTime: start, Covers: 2, Status: StatusBooked}
		if _, ok := Resolve(res, testPolicy); ok {
			t.Errorf("Resolve(start=%q) ok = true, want false", start)
		}
	}
}

func TestPolicyMinutes(t *testing.T) {
	tests := []struct {
		covers int
		want   int
	}{
		{1, 90},
		{2, 90},
		{3, 120},
		{4, 120},
		{5, 150},
		{6, 150},
		{7, 180},
		{12, 180},
		{0, 180},
		{-1, 180},
	}
	for _, tt := range tests {
		if got := testPolicy.Minutes(tt.covers); got != tt.want {
			t.Errorf("Minutes(%d) = %d, want %d", tt.covers, got, tt.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"10:00", 600, false},
		{"18:00", 1080, false},
		{"23:59", 1439, false},
		{" 18:30 ", 1110, false},
		{"24:00", 0, true},
		{"18:60", 0, true},
		{"-1:00", 0, true},
		{"1800", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
