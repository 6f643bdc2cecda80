package timeline

// overlaps reports whether two half-open intervals intersect.
func overlaps(a, b Span) bool {
	return a.Start < b.End && b.Start < a.End
}

// Conflicts returns the IDs of reservations whose spans overlap at least
// one span of a different reservation in the same set. The input is the
// duration-resolved spans for a single table; a bucket can hold several
// spans of one reservation, which never conflict with each other.
//
// Pairwise O(n²) is fine here: a table rarely holds more than a handful
// of reservations per service.
func Conflicts(spans []Span) map[string]bool {
	conflicted := make(map[string]bool)
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if spans[i].ReservationID == spans[j].ReservationID {
				continue
			}
			if overlaps(spans[i], spans[j]) {
				conflicted[spans[i].ReservationID] = true
				conflicted[spans[j].ReservationID] = true
			}
		}
	}
	return conflicted
}
