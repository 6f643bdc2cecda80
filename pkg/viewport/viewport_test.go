package viewport

import (
	"math"
	"testing"
)

func testTransform() Transform {
	return NewTransform(80, 40, 880, 640, 1600, 1200)
}

func TestContentToScreenRoundTrip(t *testing.T) {
	transforms := []Transform{
		testTransform(),
		testTransform().PanBy(-200, -150),
		testTransform().ZoomAt(400, 300, 2.0),
		testTransform().ZoomAt(100, 500, 0.5),
		testTransform().ZoomAt(880, 640, 3.0).PanBy(-50, -999),
	}
	points := [][2]float64{
		{0, 0},
		{100, 100},
		{1599, 1199},
		{12.345, 678.9},
	}

	for ti, tr := range transforms {
		for _, p := range points {
			sx, sy := tr.ContentToScreen(p[0], p[1])
			bx, by := tr.ScreenToContent(sx, sy)
			if math.Abs(bx-p[0]) > 1e-9 || math.Abs(by-p[1]) > 1e-9 {
				t.Errorf("transform %d: round trip (%v,%v) -> (%v,%v)", ti, p[0], p[1], bx, by)
			}
		}
	}
}

func TestContentToScreenOffsets(t *testing.T) {
	tr := testTransform()
	sx, sy := tr.ContentToScreen(0, 0)
	if sx != 80 || sy != 40 {
		t.Errorf("origin maps to (%v,%v), want label/header offset (80,40)", sx, sy)
	}
}

func TestZoomAtKeepsFocalPointFixed(t *testing.T) {
	tr := testTransform().PanBy(-300, -200)

	focalX, focalY := 400.0, 300.0
	cx, cy := tr.ScreenToContent(focalX, focalY)

	zoomed := tr.ZoomAt(focalX, focalY, 2.0)
	zx, zy := zoomed.ScreenToContent(focalX, focalY)

	if math.Abs(zx-cx) > 1e-9 || math.Abs(zy-cy) > 1e-9 {
		t.Errorf("focal content point moved: (%v,%v) -> (%v,%v)", cx, cy, zx, zy)
	}
	if zoomed.Scale != 2.0 {
		t.Errorf("Scale = %v, want 2.0", zoomed.Scale)
	}
}

func TestZoomAtClampsScale(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.1, MinScale},
		{0.5, 0.5},
		{1.7, 1.7},
		{3.0, 3.0},
		{10, MaxScale},
	}
	for _, tt := range tests {
		got := testTransform().ZoomAt(400, 300, tt.in)
		if got.Scale != tt.want {
			t.Errorf("ZoomAt(scale=%v).Scale = %v, want %v", tt.in, got.Scale, tt.want)
		}
	}
}

// After any sequence of pans and zooms the translation stays within
// bounds: never positive (content under the label column/header) and
// never so negative that content leaves the visible area.
func TestClampPan(t *testing.T) {
	ops := []func(Transform) Transform{
		func(tr Transform) Transform { return tr.PanBy(500, 500) },
		func(tr Transform) Transform { return tr.PanBy(-1e6, -1e6) },
		func(tr Transform) Transform { return tr.ZoomAt(0, 0, 3.0) },
		func(tr Transform) Transform { return tr.PanBy(250, -80) },
		func(tr Transform) Transform { return tr.ZoomAt(880, 640, 0.5) },
		func(tr Transform) Transform { return tr.PanBy(-40, 9999) },
	}

	tr := testTransform()
	for i, op := range ops {
		tr = op(tr)

		if tr.TranslateX > 0 || tr.TranslateY > 0 {
			t.Fatalf("op %d: positive translation (%v,%v)", i, tr.TranslateX, tr.TranslateY)
		}
		visW := tr.ViewportWidth - tr.LabelWidth
		visH := tr.ViewportHeight - tr.HeaderHeight
		if minX := minTranslate(tr.ContentWidth*tr.Scale, visW); tr.TranslateX < minX {
			t.Fatalf("op %d: TranslateX = %v below bound %v", i, tr.TranslateX, minX)
		}
		if minY := minTranslate(tr.ContentHeight*tr.Scale, visH); tr.TranslateY < minY {
			t.Fatalf("op %d: TranslateY = %v below bound %v", i, tr.TranslateY, minY)
		}
	}
}

func TestClampPanSmallContentPinsAtZero(t *testing.T) {
	tr := NewTransform(80, 40, 880, 640, 100, 100)
	tr = tr.PanBy(-500, -500)
	if tr.TranslateX != 0 || tr.TranslateY != 0 {
		t.Errorf("translation = (%v,%v), want (0,0) when content fits", tr.TranslateX, tr.TranslateY)
	}
}
