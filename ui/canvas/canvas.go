// Package canvas provides the mockup canvas with zoom and annotation editing.
package canvas

import (
	"image"

	"mockup-annotator/internal/annotation"
	"mockup-annotator/internal/app"
	"mockup-annotator/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// AnnotationCanvas displays the current mockup and lets the user draw,
// move, and resize annotation rectangles on it.
type AnnotationCanvas struct {
	widget.BaseWidget

	state  *app.State
	engine *annotation.Engine

	raster *fynecanvas.Raster
	zoom   float64

	scroll  *zoomScroll
	content *interactiveContent
	imgSize fyne.Size

	fitToWindow    bool
	lastScrollSize fyne.Size

	onZoomChange func(zoom float64)
}

// NewAnnotationCanvas creates a canvas bound to the application state.
func NewAnnotationCanvas(state *app.State) *AnnotationCanvas {
	ac := &AnnotationCanvas{
		state:   state,
		engine:  annotation.NewEngine(state.EngineCallbacks()),
		zoom:    1.0,
		imgSize: fyne.NewSize(400, 300),
	}

	ac.raster = fynecanvas.NewRaster(ac.draw)
	ac.raster.ScaleMode = fynecanvas.ImageScalePixels
	ac.raster.SetMinSize(ac.imgSize)

	ac.content = newInteractiveContent(ac, ac.raster)
	ac.scroll = newZoomScroll(ac.content, ac)

	state.On(app.EventMockupChanged, func(interface{}) { ac.updateContentSize() })
	state.On(app.EventAnnotationsChanged, func(interface{}) { ac.Refresh() })
	state.On(app.EventSelectionChanged, func(interface{}) { ac.Refresh() })
	state.On(app.EventProjectLoaded, func(interface{}) { ac.updateContentSize() })

	ac.ExtendBaseWidget(ac)
	return ac
}

// Container returns the canvas container for embedding in layouts.
func (ac *AnnotationCanvas) Container() fyne.CanvasObject {
	return ac.scroll
}

// SetZoom sets the zoom level, clamped to the allowed range.
func (ac *AnnotationCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	ac.zoom = zoom
	ac.updateContentSize()

	if ac.onZoomChange != nil {
		ac.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (ac *AnnotationCanvas) Zoom() float64 {
	return ac.zoom
}

// ZoomIn increases the zoom level.
func (ac *AnnotationCanvas) ZoomIn() {
	ac.SetZoom(ac.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ac *AnnotationCanvas) ZoomOut() {
	ac.SetZoom(ac.zoom / zoomStep)
}

// FitToWindow adjusts zoom so the mockup fits the visible area.
func (ac *AnnotationCanvas) FitToWindow() {
	size := ac.state.ImageSize()
	if size.Empty() {
		return
	}

	viewSize := ac.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / size.Width
	zoomY := float64(viewSize.Height) / size.Height

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	ac.SetZoom(zoom * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (ac *AnnotationCanvas) SetFitToWindow(fit bool) {
	ac.fitToWindow = fit
	if fit {
		ac.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (ac *AnnotationCanvas) OnZoomChange(callback func(zoom float64)) {
	ac.onZoomChange = callback
}

// Refresh refreshes the canvas display.
func (ac *AnnotationCanvas) Refresh() {
	ac.raster.Refresh()
}

// CanvasToImage converts canvas (zoomed) coordinates to image coordinates.
func (ac *AnnotationCanvas) CanvasToImage(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x / ac.zoom, Y: y / ac.zoom}
}

// pointerDown feeds a press into the engine. The handle under the cursor is
// computed against the selected annotation's rectangle, since handles are
// only shown for the selection.
func (ac *AnnotationCanvas) pointerDown(pos geometry.Point2D) {
	handle := annotation.HandleNone
	if sel, ok := ac.state.SelectedAnnotation(); ok {
		size := ac.state.ImageSize()
		if !size.Empty() {
			// Grab zones have a fixed on-screen size, so widen them in
			// image space when zoomed out.
			grab := annotation.HandleGrabSize / ac.zoom
			handle = annotation.HandleAt(sel.PixelRect(size), pos, grab)
		}
	}
	ac.engine.PointerDown(pos, handle)
	ac.Refresh()
}

func (ac *AnnotationCanvas) pointerMove(pos geometry.Point2D) {
	ac.engine.PointerMove(pos)
	ac.Refresh()
}

func (ac *AnnotationCanvas) pointerUp() {
	ac.engine.PointerUp()
	ac.Refresh()
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *AnnotationCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *AnnotationCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// interactiveContent wraps the raster to handle mouse events. Presses go
// through MouseDown so the engine sees them before any drag starts, and
// DragEnd fires even when the pointer is released outside the widget, which
// keeps the interaction state from getting stuck mid-gesture.
type interactiveContent struct {
	widget.BaseWidget
	canvas *AnnotationCanvas
	raster *fynecanvas.Raster
}

var _ desktop.Mouseable = (*interactiveContent)(nil)
var _ fyne.Draggable = (*interactiveContent)(nil)

func newInteractiveContent(ac *AnnotationCanvas, raster *fynecanvas.Raster) *interactiveContent {
	ic := &interactiveContent{
		canvas: ac,
		raster: raster,
	}
	ic.ExtendBaseWidget(ic)
	return ic
}

func (ic *interactiveContent) CreateRenderer() fyne.WidgetRenderer {
	return &interactiveContentRenderer{content: ic}
}

func (ic *interactiveContent) MinSize() fyne.Size {
	return ic.raster.MinSize()
}

// imagePos converts an event position (viewport relative) to image
// coordinates, accounting for scroll offset and zoom.
func (ic *interactiveContent) imagePos(pos fyne.Position) geometry.Point2D {
	offset := ic.canvas.scroll.Offset()
	return ic.canvas.CanvasToImage(
		float64(pos.X+offset.X),
		float64(pos.Y+offset.Y),
	)
}

func (ic *interactiveContent) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	ic.canvas.pointerDown(ic.imagePos(ev.Position))
}

func (ic *interactiveContent) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	ic.canvas.pointerUp()
}

func (ic *interactiveContent) Dragged(ev *fyne.DragEvent) {
	ic.canvas.pointerMove(ic.imagePos(ev.Position))
}

func (ic *interactiveContent) DragEnd() {
	ic.canvas.pointerUp()
}

func (ic *interactiveContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		ic.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		ic.canvas.ZoomOut()
	}
}

type interactiveContentRenderer struct {
	content *interactiveContent
}

func (r *interactiveContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *interactiveContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *interactiveContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *interactiveContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *interactiveContentRenderer) Destroy() {}

// updateContentSize resizes the raster for the current mockup and zoom.
func (ac *AnnotationCanvas) updateContentSize() {
	size := ac.state.ImageSize()
	if size.Empty() {
		ac.imgSize = fyne.NewSize(400, 300)
	} else {
		ac.imgSize = fyne.NewSize(
			float32(size.Width*ac.zoom),
			float32(size.Height*ac.zoom),
		)
	}

	ac.raster.SetMinSize(ac.imgSize)
	ac.raster.Resize(ac.imgSize)
	if ac.content != nil {
		ac.content.Resize(ac.imgSize)
		ac.content.Refresh()
	}
	ac.raster.Refresh()
	if ac.scroll != nil {
		ac.scroll.Refresh()
	}
}

// CheckResize auto-fits when the scroll container was resized.
func (ac *AnnotationCanvas) CheckResize(size fyne.Size) {
	if !ac.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != ac.lastScrollSize {
		ac.lastScrollSize = size
		ac.FitToWindow()
	}
}

// draw is the raster drawing function.
func (ac *AnnotationCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// Dark background so annotation edges read against any mockup.
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}

	mockup := ac.state.CurrentMockup()
	if mockup == nil || mockup.Image == nil {
		return output
	}

	ac.drawMockup(output, mockup.Image, w, h)
	ac.drawAnnotations(output)

	return output
}

// drawMockup scales the mockup image onto the output by nearest neighbor.
func (ac *AnnotationCanvas) drawMockup(output *image.RGBA, src image.Image, w, h int) {
	srcBounds := src.Bounds()

	for y := 0; y < h; y++ {
		srcY := int(float64(y)/ac.zoom) + srcBounds.Min.Y
		if srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
			continue
		}
		for x := 0; x < w; x++ {
			srcX := int(float64(x)/ac.zoom) + srcBounds.Min.X
			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X {
				continue
			}
			output.Set(x, y, src.At(srcX, srcY))
		}
	}
}

// CreateRenderer implements fyne.Widget.
func (ac *AnnotationCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &annotationCanvasRenderer{canvas: ac}
}

type annotationCanvasRenderer struct {
	canvas *AnnotationCanvas
}

func (r *annotationCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	}
	r.canvas.CheckResize(size)
}

func (r *annotationCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *annotationCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *annotationCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *annotationCanvasRenderer) Destroy() {}
