// Package detect suggests rectangular UI regions on a mockup image.
package detect

import (
	"image"

	"mockup-annotator/pkg/geometry"

	"gocv.io/x/gocv"
)

// Options configures region detection.
type Options struct {
	CannyLow          float32 // Lower hysteresis threshold for edge detection
	CannyHigh         float32 // Upper hysteresis threshold
	CleanupIterations int     // Morphological cleanup strength
	MinRegionArea     float64 // Minimum area to consider as a UI region
	MaxRegionFraction float64 // Regions covering more than this fraction of the image are dropped
	MaxAspect         float64 // Maximum width/height (or inverse) ratio
}

// DefaultOptions returns default detection options tuned for screen-sized
// mockups.
func DefaultOptions() Options {
	return Options{
		CannyLow:          50,
		CannyHigh:         150,
		CleanupIterations: 2,
		MinRegionArea:     400,
		MaxRegionFraction: 0.9,
		MaxAspect:         25,
	}
}

// DetectRegions runs the full suggestion pipeline on a mockup image and
// returns candidate annotation rectangles in image pixel coordinates,
// largest first.
func DetectRegions(img image.Image, opts Options) ([]geometry.RectInt, error) {
	mat, err := ImageToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	edges := EdgeMask(mat, opts)
	defer edges.Close()

	raw := boundingRects(edges)

	bounds := img.Bounds()
	imageArea := float64(bounds.Dx()) * float64(bounds.Dy())
	return Filter(raw, imageArea, opts), nil
}

// EdgeMask produces a binary mask of UI element outlines: grayscale, blur,
// Canny, then morphological closing so box borders become solid contours.
func EdgeMask(img gocv.Mat, opts Options) gocv.Mat {
	if img.Empty() {
		return gocv.NewMat()
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	gocv.Canny(blurred, &edges, opts.CannyLow, opts.CannyHigh)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 3, Y: 3})
	defer kernel.Close()

	// Close small gaps so partial borders still form a closed contour.
	for i := 0; i < opts.CleanupIterations; i++ {
		gocv.MorphologyEx(edges, &edges, gocv.MorphClose, kernel)
	}

	return edges
}

// boundingRects extracts bounding rectangles of external contours.
func boundingRects(mask gocv.Mat) []geometry.RectInt {
	if mask.Empty() {
		return nil
	}

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	rects := make([]geometry.RectInt, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		r := gocv.BoundingRect(contours.At(i))
		rects = append(rects, geometry.RectInt{
			X:      r.Min.X,
			Y:      r.Min.Y,
			Width:  r.Dx(),
			Height: r.Dy(),
		})
	}
	return rects
}

// ImageToMat converts a Go image.Image to a gocv.Mat in BGR format.
func ImageToMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}

	return mat, nil
}
