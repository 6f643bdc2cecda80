package timeline

import "sort"

// packLanes assigns a lane index to every span using greedy first-fit
// interval coloring: spans are considered by start minute (ties by end
// minute), and each span takes the first lane whose last occupant has
// already ended, appending a new lane when none is free.
//
// Lanes are returned positionally, parallel to spans, so a bucket may
// hold several spans of the same reservation and each still gets its
// own lane.
//
// This is deliberately not lane-count-optimal. The greedy order is
// deterministic under stable sort, so re-running layout on unchanged
// input never reshuffles existing lane assignments; visual stability
// matters more here than a minimal lane count.
func packLanes(spans []Span) (laneOf []int, laneCount int) {
	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := spans[order[i]], spans[order[j]]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})

	laneOf = make([]int, len(spans))
	var laneEnds []int // laneEnds[i] is the end minute of lane i's last span
	for _, idx := range order {
		s := spans[idx]
		placed := false
		for i, end := range laneEnds {
			if end <= s.Start {
				laneOf[idx] = i
				laneEnds[i] = s.End
				placed = true
				break
			}
		}
		if !placed {
			laneOf[idx] = len(laneEnds)
			laneEnds = append(laneEnds, s.End)
		}
	}
	return laneOf, len(laneEnds)
}
