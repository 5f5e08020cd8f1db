// Package annotation provides the rectangle annotation model and the
// pointer-interaction engine that edits it. Geometry is stored as fractions
// of the displayed image size so annotations survive rescaling; all engine
// logic is UI-agnostic and deterministic to keep it unit-testable.
package annotation

import (
	"mockup-annotator/pkg/geometry"
)

// Param describes a single request parameter attached to an endpoint.
type Param struct {
	Name        string `json:"name"`
	In          string `json:"in"` // "query", "path", "header", "body"
	Type        string `json:"type,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
}

// APIDetails holds the API metadata attached to a region. The geometry
// engine treats it as opaque.
type APIDetails struct {
	Endpoint     string  `json:"endpoint"`
	Method       string  `json:"method"`
	Description  string  `json:"description,omitempty"`
	RequestBody  string  `json:"request_body,omitempty"`
	ResponseBody string  `json:"response_body,omitempty"`
	Params       []Param `json:"params,omitempty"`
}

// Annotation is a rectangular region over a mockup image. RatioX/Y/Width/
// Height are fractions of the image's displayed pixel size, nominally in
// [0,1].
type Annotation struct {
	ID          string     `json:"id"`
	RatioX      float64    `json:"ratio_x"`
	RatioY      float64    `json:"ratio_y"`
	RatioWidth  float64    `json:"ratio_width"`
	RatioHeight float64    `json:"ratio_height"`
	API         APIDetails `json:"api"`
}

// PixelRect returns the annotation's rectangle in pixels for the given
// displayed image size.
func (a Annotation) PixelRect(size geometry.Size) geometry.Rect {
	return geometry.Rect{
		X:      a.RatioX * size.Width,
		Y:      a.RatioY * size.Height,
		Width:  a.RatioWidth * size.Width,
		Height: a.RatioHeight * size.Height,
	}
}

// SetPixelRect stores the given pixel rectangle as ratios of the displayed
// image size. It is a no-op when the size is empty, so a stale event can
// never poison the stored geometry with NaN or Inf.
func (a *Annotation) SetPixelRect(r geometry.Rect, size geometry.Size) {
	if size.Empty() {
		return
	}
	a.RatioX = r.X / size.Width
	a.RatioY = r.Y / size.Height
	a.RatioWidth = r.Width / size.Width
	a.RatioHeight = r.Height / size.Height
}

// HitTest returns the index of the first annotation whose pixel rectangle
// contains p (inclusive bounds), or -1. List order decides ties: the
// first-drawn annotation wins. An empty image size never produces a hit.
func HitTest(list []Annotation, p geometry.Point2D, size geometry.Size) int {
	if size.Empty() {
		return -1
	}
	for i, a := range list {
		if a.PixelRect(size).Contains(p) {
			return i
		}
	}
	return -1
}

// Delete returns a copy of the list without entry i. The input slice is
// left untouched. Out-of-range indexes return the list unchanged.
func Delete(list []Annotation, i int) []Annotation {
	if i < 0 || i >= len(list) {
		return list
	}
	out := make([]Annotation, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out
}

// Clone returns a copy of the list. Mutating interactions work on a clone
// so callers only ever observe whole replacement lists.
func Clone(list []Annotation) []Annotation {
	out := make([]Annotation, len(list))
	copy(out, list)
	return out
}
