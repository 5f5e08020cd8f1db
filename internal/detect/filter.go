package detect

import (
	"math"
	"sort"

	"mockup-annotator/pkg/geometry"

	"gonum.org/v1/gonum/stat"
)

// Filter runs the candidate rectangles through size, aspect and outlier
// filtering, merges overlapping survivors, and sorts the result largest
// first.
func Filter(rects []geometry.RectInt, imageArea float64, opts Options) []geometry.RectInt {
	kept := filterBySize(rects, imageArea, opts)
	kept = filterOutliers(kept)
	kept = MergeOverlapping(kept)

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Area() > kept[j].Area()
	})
	return kept
}

// filterBySize drops rects that are too small to annotate, large enough to
// be the page itself, or degenerate slivers.
func filterBySize(rects []geometry.RectInt, imageArea float64, opts Options) []geometry.RectInt {
	kept := make([]geometry.RectInt, 0, len(rects))
	for _, r := range rects {
		area := r.Area()
		if area < opts.MinRegionArea {
			continue
		}
		if imageArea > 0 && area > imageArea*opts.MaxRegionFraction {
			continue
		}
		if r.Width <= 0 || r.Height <= 0 {
			continue
		}
		aspect := float64(r.Width) / float64(r.Height)
		if aspect < 1 {
			aspect = 1 / aspect
		}
		if aspect > opts.MaxAspect {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// filterOutliers removes rects whose log-area sits far from the population
// mean. Edge noise tends to produce clusters of tiny contours that survive
// the absolute threshold on dense mockups.
func filterOutliers(rects []geometry.RectInt) []geometry.RectInt {
	if len(rects) < 4 {
		return rects
	}

	logAreas := make([]float64, len(rects))
	for i, r := range rects {
		logAreas[i] = math.Log(r.Area())
	}

	mean, std := stat.MeanStdDev(logAreas, nil)
	if std == 0 {
		return rects
	}

	kept := make([]geometry.RectInt, 0, len(rects))
	for i, r := range rects {
		if math.Abs(logAreas[i]-mean) <= 2.5*std {
			kept = append(kept, r)
		}
	}
	return kept
}

// MergeOverlapping unions rects that intersect each other until no two
// remaining rects overlap. A nested button inside a detected card collapses
// into the card.
func MergeOverlapping(rects []geometry.RectInt) []geometry.RectInt {
	merged := append([]geometry.RectInt(nil), rects...)

	for {
		changed := false
		for i := 0; i < len(merged) && !changed; i++ {
			for j := i + 1; j < len(merged); j++ {
				if merged[i].Intersects(merged[j]) {
					merged[i] = merged[i].Union(merged[j])
					merged = append(merged[:j], merged[j+1:]...)
					changed = true
					break
				}
			}
		}
		if !changed {
			return merged
		}
	}
}
