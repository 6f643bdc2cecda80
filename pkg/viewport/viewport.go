// Package viewport maps timeline content coordinates to screen
// coordinates through a continuously zoomable, pannable transform, and
// inverts screen points back into the layout for hit testing.
//
// Content space puts x on a fixed-width time axis (bar percents scaled to
// ContentWidth units) and y on the stacked row heights from
// [timeline.Layout]. Screen space adds a fixed label column on the left
// and a fixed header on top; the transform clamps panning so neither is
// ever scrolled under content.
package viewport

// Scale bounds for the pinch/scroll zoom.
const (
	MinScale = 0.5
	MaxScale = 3.0
)

// Transform holds the continuous zoom/pan state of the timeline view.
// All fields are plain values; take a copy to snapshot the transform at a
// logical instant (hit tests must run against the snapshot that was
// current when the pointer event arrived).
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64

	// Fixed chrome, in screen units.
	LabelWidth   float64
	HeaderHeight float64

	// Screen viewport size, in screen units.
	ViewportWidth  float64
	ViewportHeight float64

	// Content extents, in content units.
	ContentWidth  float64
	ContentHeight float64
}

// NewTransform returns a transform at scale 1 with no pan.
func NewTransform(labelWidth, headerHeight, viewportW, viewportH, contentW, contentH float64) Transform {
	return Transform{
		Scale:          1,
		LabelWidth:     labelWidth,
		HeaderHeight:   headerHeight,
		ViewportWidth:  viewportW,
		ViewportHeight: viewportH,
		ContentWidth:   contentW,
		ContentHeight:  contentH,
	}
}

// ContentToScreen maps a content-space point to screen space: scale, then
// translate, then offset past the fixed label column and header.
func (t Transform) ContentToScreen(x, y float64) (sx, sy float64) {
	sx = x*t.Scale + t.TranslateX + t.LabelWidth
	sy = y*t.Scale + t.TranslateY + t.HeaderHeight
	return sx, sy
}

// ScreenToContent inverts ContentToScreen.
func (t Transform) ScreenToContent(sx, sy float64) (x, y float64) {
	x = (sx - t.TranslateX - t.LabelWidth) / t.Scale
	y = (sy - t.TranslateY - t.HeaderHeight) / t.Scale
	return x, y
}

// PanBy shifts the view and re-clamps.
func (t Transform) PanBy(dx, dy float64) Transform {
	t.TranslateX += dx
	t.TranslateY += dy
	return t.ClampPan()
}

// ZoomAt sets a new scale while keeping the content point under the
// screen focal point fixed, so a pinch zooms around the fingers rather
// than the origin.
func (t Transform) ZoomAt(focalX, focalY, scale float64) Transform {
	scale = clamp(scale, MinScale, MaxScale)
	cx, cy := t.ScreenToContent(focalX, focalY)
	t.Scale = scale
	t.TranslateX = focalX - t.LabelWidth - cx*scale
	t.TranslateY = focalY - t.HeaderHeight - cy*scale
	return t.ClampPan()
}

// ClampPan bounds the translation so the label column and header stay
// fully visible and content cannot be panned out of view at either
// extreme. Translations are always <= 0: content never slides rightwards
// under the label column or downwards under the header.
func (t Transform) ClampPan() Transform {
	visW := t.ViewportWidth - t.LabelWidth
	visH := t.ViewportHeight - t.HeaderHeight

	t.TranslateX = clamp(t.TranslateX, minTranslate(t.ContentWidth*t.Scale, visW), 0)
	t.TranslateY = clamp(t.TranslateY, minTranslate(t.ContentHeight*t.Scale, visH), 0)
	return t
}

// minTranslate returns the lowest allowed translation for one axis. When
// the scaled content fits inside the visible area it is pinned at 0.
func minTranslate(scaledContent, visible float64) float64 {
	if scaledContent <= visible {
		return 0
	}
	return visible - scaledContent
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
