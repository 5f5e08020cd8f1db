package detect

import (
	"testing"

	"mockup-annotator/pkg/geometry"
)

func TestFilterBySize(t *testing.T) {
	opts := DefaultOptions()
	imageArea := 800.0 * 600.0

	rects := []geometry.RectInt{
		{X: 10, Y: 10, Width: 100, Height: 50},  // keep
		{X: 0, Y: 0, Width: 10, Height: 10},     // too small
		{X: 0, Y: 0, Width: 790, Height: 590},   // whole page
		{X: 0, Y: 0, Width: 780, Height: 2},     // sliver
		{X: 200, Y: 200, Width: 60, Height: 40}, // keep
	}

	kept := filterBySize(rects, imageArea, opts)
	if len(kept) != 2 {
		t.Fatalf("kept %d rects, want 2: %+v", len(kept), kept)
	}
	if kept[0].X != 10 || kept[1].X != 200 {
		t.Errorf("wrong rects kept: %+v", kept)
	}
}

func TestFilterOutliers(t *testing.T) {
	rects := []geometry.RectInt{
		{Width: 100, Height: 50},
		{Width: 110, Height: 55},
		{Width: 90, Height: 45},
		{Width: 105, Height: 50},
		{Width: 2000, Height: 2000}, // outlier
	}

	kept := filterOutliers(rects)
	for _, r := range kept {
		if r.Width == 2000 {
			t.Error("outlier survived filtering")
		}
	}
	if len(kept) != 4 {
		t.Errorf("kept %d rects, want 4", len(kept))
	}
}

func TestFilterOutliersSmallPopulation(t *testing.T) {
	rects := []geometry.RectInt{
		{Width: 10, Height: 10},
		{Width: 5000, Height: 5000},
	}
	if got := filterOutliers(rects); len(got) != 2 {
		t.Errorf("small populations must pass through, got %d rects", len(got))
	}
}

func TestMergeOverlapping(t *testing.T) {
	rects := []geometry.RectInt{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 50, Y: 50, Width: 100, Height: 100}, // overlaps first
		{X: 300, Y: 300, Width: 50, Height: 50}, // separate
	}

	merged := MergeOverlapping(rects)
	if len(merged) != 2 {
		t.Fatalf("merged to %d rects, want 2: %+v", len(merged), merged)
	}

	want := geometry.RectInt{X: 0, Y: 0, Width: 150, Height: 150}
	if merged[0] != want {
		t.Errorf("union = %+v, want %+v", merged[0], want)
	}
}

func TestMergeOverlappingChain(t *testing.T) {
	// a overlaps b, b overlaps c, a does not touch c directly.
	rects := []geometry.RectInt{
		{X: 0, Y: 0, Width: 60, Height: 60},
		{X: 50, Y: 0, Width: 60, Height: 60},
		{X: 100, Y: 0, Width: 60, Height: 60},
	}

	merged := MergeOverlapping(rects)
	if len(merged) != 1 {
		t.Fatalf("chain merged to %d rects, want 1", len(merged))
	}
	want := geometry.RectInt{X: 0, Y: 0, Width: 160, Height: 60}
	if merged[0] != want {
		t.Errorf("union = %+v, want %+v", merged[0], want)
	}
}

func TestFilterSortsLargestFirst(t *testing.T) {
	rects := []geometry.RectInt{
		{X: 0, Y: 0, Width: 50, Height: 40},
		{X: 200, Y: 0, Width: 120, Height: 80},
		{X: 0, Y: 200, Width: 80, Height: 60},
	}

	got := Filter(rects, 800*600, DefaultOptions())
	if len(got) != 3 {
		t.Fatalf("got %d rects, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Area() > got[i-1].Area() {
			t.Errorf("rects not sorted by area: %+v", got)
		}
	}
}
