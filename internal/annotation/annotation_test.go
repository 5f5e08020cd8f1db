package annotation

import (
	"testing"

	"mockup-annotator/pkg/geometry"
)

func TestPixelRectRoundTrip(t *testing.T) {
	sizes := []geometry.Size{
		geometry.NewSize(800, 600),
		geometry.NewSize(1920, 1080),
		geometry.NewSize(333, 777),
	}
	rects := []geometry.Rect{
		geometry.NewRect(100, 100, 200, 150),
		geometry.NewRect(0, 0, 10, 10),
		geometry.NewRect(123.5, 45.25, 17, 333),
	}

	for _, size := range sizes {
		for _, r := range rects {
			var a Annotation
			a.SetPixelRect(r, size)
			got := a.PixelRect(size)
			if !approx(got.X, r.X, 1e-6) || !approx(got.Y, r.Y, 1e-6) ||
				!approx(got.Width, r.Width, 1e-6) || !approx(got.Height, r.Height, 1e-6) {
				t.Errorf("size %v rect %v: round trip gave %v", size, r, got)
			}
		}
	}
}

func ratios(a Annotation) [4]float64 {
	return [4]float64{a.RatioX, a.RatioY, a.RatioWidth, a.RatioHeight}
}

func TestRescaleInvariance(t *testing.T) {
	var a Annotation
	a.SetPixelRect(geometry.NewRect(100, 100, 200, 150), geometry.NewSize(800, 600))
	before := ratios(a)

	// A size change only affects the rendered rect, never the stored ratios.
	small := a.PixelRect(geometry.NewSize(400, 300))
	if ratios(a) != before {
		t.Error("PixelRect must not mutate the annotation")
	}
	if !approx(small.X, 50, 1e-9) || !approx(small.Width, 100, 1e-9) {
		t.Errorf("expected rect scaled to (50,..,100,..), got %+v", small)
	}
}

func TestSetPixelRectEmptySizeIsNoop(t *testing.T) {
	var a Annotation
	a.SetPixelRect(geometry.NewRect(100, 100, 200, 150), geometry.NewSize(800, 600))
	before := ratios(a)

	a.SetPixelRect(geometry.NewRect(1, 2, 3, 4), geometry.Size{})
	if ratios(a) != before {
		t.Errorf("empty size must not change geometry: %+v", a)
	}
}

func TestHitTestFirstMatchWins(t *testing.T) {
	size := geometry.NewSize(800, 600)
	var a, b Annotation
	a.SetPixelRect(geometry.NewRect(100, 100, 200, 200), size)
	b.SetPixelRect(geometry.NewRect(150, 150, 200, 200), size)
	list := []Annotation{a, b}

	tests := []struct {
		p    geometry.Point2D
		want int
	}{
		{geometry.NewPoint2D(200, 200), 0}, // overlap: first-drawn wins
		{geometry.NewPoint2D(320, 320), 1}, // only in b
		{geometry.NewPoint2D(110, 110), 0}, // only in a
		{geometry.NewPoint2D(100, 100), 0}, // inclusive corner
		{geometry.NewPoint2D(700, 500), -1},
	}

	for _, tt := range tests {
		if got := HitTest(list, tt.p, size); got != tt.want {
			t.Errorf("HitTest(%v,%v): expected %d, got %d", tt.p.X, tt.p.Y, tt.want, got)
		}
	}
}

func TestHitTestZeroSize(t *testing.T) {
	var a Annotation
	a.SetPixelRect(geometry.NewRect(0, 0, 100, 100), geometry.NewSize(800, 600))
	list := []Annotation{a}

	for _, size := range []geometry.Size{{}, geometry.NewSize(0, 600), geometry.NewSize(800, 0)} {
		if got := HitTest(list, geometry.NewPoint2D(0, 0), size); got != -1 {
			t.Errorf("size %v: expected no hit, got %d", size, got)
		}
	}
}

func TestDelete(t *testing.T) {
	size := geometry.NewSize(800, 600)
	list := make([]Annotation, 3)
	for i := range list {
		list[i].ID = string(rune('a' + i))
		list[i].SetPixelRect(geometry.NewRect(float64(i)*100, 50, 80, 80), size)
	}

	out := Delete(list, 1)
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "c" {
		t.Errorf("expected order a,c got %s,%s", out[0].ID, out[1].ID)
	}
	if ratios(out[0]) != ratios(list[0]) || ratios(out[1]) != ratios(list[2]) {
		t.Error("surviving entries must keep their geometry unchanged")
	}
	if len(list) != 3 {
		t.Error("input list must not be mutated")
	}

	// Out-of-range indexes are ignored.
	if got := Delete(list, -1); len(got) != 3 {
		t.Errorf("expected unchanged list, got %d entries", len(got))
	}
	if got := Delete(list, 3); len(got) != 3 {
		t.Errorf("expected unchanged list, got %d entries", len(got))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	list := []Annotation{{ID: "a", RatioX: 0.1}}
	dup := Clone(list)
	dup[0].RatioX = 0.9
	if list[0].RatioX != 0.1 {
		t.Error("mutating the clone leaked into the source")
	}
}
