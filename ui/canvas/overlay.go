package canvas

import (
	"image"

	"mockup-annotator/internal/annotation"
	"mockup-annotator/pkg/colorutil"
	"mockup-annotator/pkg/geometry"
)

// handleDrawSize is the on-screen size of a resize handle square in pixels.
const handleDrawSize = 8

// drawAnnotations renders the annotation rectangles, the selection with its
// resize handles, and the live preview of an in-progress gesture.
func (ac *AnnotationCanvas) drawAnnotations(output *image.RGBA) {
	size := ac.state.ImageSize()
	if size.Empty() {
		return
	}

	anns := ac.state.Annotations()
	selected := ac.state.Selected()
	interaction := ac.engine.State()

	for i, a := range anns {
		rect := ac.toCanvasRect(a.PixelRect(size))
		col := colorutil.MethodColor(a.API.Method)

		if i == selected {
			fill := colorutil.WithAlpha(col, 60)
			ac.fillRect(output, rect, fill)
		}

		ac.strokeRect(output, rect, col, 2)

		if a.API.Method != "" {
			ac.drawLabel(output, a.API.Method, rect.X+4, rect.Y+4, colorutil.White)
		}
	}

	if selected >= 0 && selected < len(anns) {
		rect := ac.toCanvasRect(anns[selected].PixelRect(size))
		ac.drawHandles(output, rect)
	}

	if interaction.Phase == annotation.PhaseDrawing {
		ac.dashRect(output, ac.toCanvasRect(interaction.Preview), colorutil.Yellow)
	}
}

// toCanvasRect converts an image-space rect to canvas (zoomed) coordinates.
func (ac *AnnotationCanvas) toCanvasRect(r geometry.Rect) geometry.RectInt {
	return geometry.RectInt{
		X:      int(r.X * ac.zoom),
		Y:      int(r.Y * ac.zoom),
		Width:  int(r.Width * ac.zoom),
		Height: int(r.Height * ac.zoom),
	}
}

// drawHandles draws the 8 resize handle squares of the selected annotation.
func (ac *AnnotationCanvas) drawHandles(output *image.RGBA, rect geometry.RectInt) {
	midX := rect.X + rect.Width/2
	midY := rect.Y + rect.Height/2
	right := rect.X + rect.Width
	bottom := rect.Y + rect.Height

	positions := [8][2]int{
		{midX, rect.Y},    // n
		{right, rect.Y},   // ne
		{right, midY},     // e
		{right, bottom},   // se
		{midX, bottom},    // s
		{rect.X, bottom},  // sw
		{rect.X, midY},    // w
		{rect.X, rect.Y},  // nw
	}

	half := handleDrawSize / 2
	for _, p := range positions {
		square := geometry.RectInt{
			X:      p[0] - half,
			Y:      p[1] - half,
			Width:  handleDrawSize,
			Height: handleDrawSize,
		}
		ac.fillRect(output, square, colorutil.White)
		ac.strokeRect(output, square, colorutil.Black, 1)
	}
}
