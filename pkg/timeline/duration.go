package timeline

// Duration resolution constants.
const (
	// TerminalMinutes is the fixed bar length for cancelled and no-show
	// reservations. Terminal negative outcomes should not visually claim
	// a full turn.
	TerminalMinutes = 15

	// MinCompletedMinutes is the shortest interval a completed
	// reservation may render with. Guards against completion timestamps
	// that are implausibly early or from a different calendar day.
	MinCompletedMinutes = 10
)

// Span is a duration-resolved reservation interval.
type Span struct {
	ReservationID string
	Start         int // minutes since midnight
	End           int // minutes since midnight, End >= Start
}

// Resolve computes the rendered interval for a reservation.
//
// Priority order: an explicit expected duration wins; otherwise the
// turn-time policy tier for the party size applies. Cancelled and no-show
// reservations always render as a fixed short interval. Completed
// reservations with a known completion timestamp clamp the end to
// [start+MinCompletedMinutes, expected end].
//
// A reservation whose start time cannot be parsed returns ok=false and
// must be excluded from layout by the caller. This is a warning, never a
// fatal condition.
func Resolve(r Reservation, policy TurnTimePolicy) (span Span, ok bool) {
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return Span{}, false
	}

	expected := r.ExpectedMinutes
	if expected <= 0 {
		expected = policy.Minutes(r.Covers)
	}
	end := start + expected

	switch {
	case r.Status.IsTerminalNegative():
		end = start + TerminalMinutes
	case r.Status == StatusCompleted && r.CompletedAt != "":
		if actual, err := minuteOfDay(r.CompletedAt); err == nil {
			end = clampInt(actual, start+MinCompletedMinutes, start+expected)
		}
	}

	if end < start {
		end = start
	}
	return Span{ReservationID: r.ID, Start: start, End: end}, true
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
