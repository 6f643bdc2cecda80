package viewport

import (
	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

// Rect is an axis-aligned rectangle in content units.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Hit identifies the bar a screen point landed on.
type Hit struct {
	ReservationID string
	RowIndex      int
	Bar           timeline.Bar
	Rect          Rect // bar geometry in content units
}

// HitTester resolves screen points against a layout snapshot. Build one
// per layout pass; row tops are precomputed as a prefix-sum array so
// repeated queries during a gesture stay cheap.
type HitTester struct {
	layout  *timeline.Layout
	tr      Transform
	rowTops []float64 // rowTops[i] is the content Y of row i's top edge
}

// NewHitTester pairs a layout with the transform snapshot taken at the
// same logical instant as the pointer event being tested.
func NewHitTester(l *timeline.Layout, tr Transform) *HitTester {
	tops := make([]float64, len(l.Rows)+1)
	for i, row := range l.Rows {
		tops[i+1] = tops[i] + row.Height
	}
	return &HitTester{layout: l, tr: tr, rowTops: tops}
}

// Transform returns the transform snapshot this tester was built with.
func (h *HitTester) Transform() Transform { return h.tr }

// RowAt returns the index of the row whose height range contains the
// content Y coordinate.
func (h *HitTester) RowAt(contentY float64) (int, bool) {
	if contentY < 0 {
		return 0, false
	}
	for i := 0; i < len(h.layout.Rows); i++ {
		if contentY < h.rowTops[i+1] {
			return i, true
		}
	}
	return 0, false
}

// RowAtScreenY resolves a screen Y coordinate to a row index, ignoring
// the X axis entirely. Drag targeting uses this: moving a reservation
// changes its table, never its time.
func (h *HitTester) RowAtScreenY(screenY float64) (int, bool) {
	_, cy := h.tr.ScreenToContent(0, screenY)
	return h.RowAt(cy)
}

// Row returns the row at the given index.
func (h *HitTester) Row(i int) timeline.Row {
	return h.layout.Rows[i]
}

// HitTest converts a screen point to content space and returns the bar
// it landed on, if any. Points over the label column or header miss.
func (h *HitTester) HitTest(screenX, screenY float64) (Hit, bool) {
	if screenX < h.tr.LabelWidth || screenY < h.tr.HeaderHeight {
		return Hit{}, false
	}
	cx, cy := h.tr.ScreenToContent(screenX, screenY)

	rowIdx, ok := h.RowAt(cy)
	if !ok {
		return Hit{}, false
	}

	row := h.layout.Rows[rowIdx]
	rowTop := h.rowTops[rowIdx]
	for _, bar := range row.Bars {
		rect := h.barRect(bar, rowTop)
		if rect.Contains(cx, cy) {
			return Hit{
				ReservationID: bar.ReservationID,
				RowIndex:      rowIdx,
				Bar:           bar,
				Rect:          rect,
			}, true
		}
	}
	return Hit{}, false
}

// barRect computes a bar's content-space rectangle from its percent
// position and lane index.
func (h *HitTester) barRect(bar timeline.Bar, rowTop float64) Rect {
	return Rect{
		X: bar.StartPercent / 100 * h.tr.ContentWidth,
		Y: rowTop + timeline.RowPadding + float64(bar.Lane)*(timeline.BarHeight+timeline.LaneGap),
		W: bar.WidthPercent / 100 * h.tr.ContentWidth,
		H: timeline.BarHeight,
	}
}
