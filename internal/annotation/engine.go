package annotation

import (
	"math"

	"mockup-annotator/pkg/geometry"
)

// Tool is the active interaction tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolDraw
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Handle identifies one of the 8 resize handles on a selected annotation.
type Handle int

const (
	HandleNone Handle = iota
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
	HandleNW
)

var handleNames = map[Handle]string{
	HandleNone: "none",
	HandleN:    "n", HandleNE: "ne", HandleE: "e", HandleSE: "se",
	HandleS: "s", HandleSW: "sw", HandleW: "w", HandleNW: "nw",
}

func (h Handle) String() string {
	if name, ok := handleNames[h]; ok {
		return name
	}
	return "unknown"
}

// Phase is the interaction the engine is currently in. Exactly one phase is
// live at any instant.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDrawing
	PhaseDragging
	PhaseResizing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDrawing:
		return "drawing"
	case PhaseDragging:
		return "dragging"
	case PhaseResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

const (
	// MinCommitSize is the pixel threshold a drawn rectangle must exceed in
	// both dimensions to be committed on release.
	MinCommitSize = 5.0

	// MinBoxSize is the floor a resize can never push a side below.
	MinBoxSize = 10.0

	// HandleGrabSize is the side length of the square hit-zone centered on
	// each resize handle.
	HandleGrabSize = 8.0
)

// InteractionState is the engine's single live state. Fields beyond Phase
// are only meaningful for the phase that set them.
type InteractionState struct {
	Phase Phase

	// Drawing
	Start   geometry.Point2D
	Preview geometry.Rect

	// Dragging and Resizing
	Index      int
	GrabOffset geometry.Point2D // Dragging: pointer minus rect top-left

	// Resizing
	Handle     Handle
	AnchorRect geometry.Rect    // pixel rect captured at resize start
	AnchorPos  geometry.Point2D // pointer position at resize start
}

// Callbacks is the engine's boundary with the rest of the application. The
// engine never mutates the annotation list in place; every change goes out
// through Replace as a full replacement list.
type Callbacks struct {
	Annotations func() []Annotation
	Replace     func([]Annotation)
	Selected    func() int // -1 when nothing is selected
	Select      func(int)  // -1 clears the selection
	ImageSize   func() geometry.Size
	Tool        func() Tool
	NewID       func() string
}

// Engine owns the pointer-interaction state machine. All methods run
// synchronously on the UI event goroutine; there is no internal locking.
type Engine struct {
	cb    Callbacks
	state InteractionState
}

// NewEngine creates an engine wired to the given collaborators.
func NewEngine(cb Callbacks) *Engine {
	return &Engine{cb: cb, state: InteractionState{Index: -1}}
}

// State returns the current interaction state for rendering decorations.
func (e *Engine) State() InteractionState {
	return e.state
}

func (e *Engine) annotations() []Annotation {
	if e.cb.Annotations == nil {
		return nil
	}
	return e.cb.Annotations()
}

func (e *Engine) imageSize() geometry.Size {
	if e.cb.ImageSize == nil {
		return geometry.Size{}
	}
	return e.cb.ImageSize()
}

func (e *Engine) selected() int {
	if e.cb.Selected == nil {
		return -1
	}
	return e.cb.Selected()
}

func (e *Engine) setSelected(i int) {
	if e.cb.Select != nil {
		e.cb.Select(i)
	}
}

func (e *Engine) replace(list []Annotation) {
	if e.cb.Replace != nil {
		e.cb.Replace(list)
	}
}

func (e *Engine) tool() Tool {
	if e.cb.Tool == nil {
		return ToolSelect
	}
	return e.cb.Tool()
}

func (e *Engine) newID() string {
	if e.cb.NewID == nil {
		return ""
	}
	return e.cb.NewID()
}

// PointerDown dispatches a pointer-press at the given image-local position.
// handle is the resize handle under the pointer, or HandleNone. Priority
// order: handle grab on the selected annotation, then hit-test select+drag,
// then draw start, then deselect. A handle grab never falls through to the
// hit test, so it cannot steal or clear the selection.
func (e *Engine) PointerDown(pos geometry.Point2D, handle Handle) {
	size := e.imageSize()
	if size.Empty() {
		return
	}
	list := e.annotations()

	if handle != HandleNone {
		if sel := e.selected(); sel >= 0 && sel < len(list) {
			e.state = InteractionState{
				Phase:      PhaseResizing,
				Index:      sel,
				Handle:     handle,
				AnchorRect: list[sel].PixelRect(size),
				AnchorPos:  pos,
			}
			return
		}
	}

	hit := HitTest(list, pos, size)
	tool := e.tool()

	switch {
	case hit >= 0 && tool == ToolSelect:
		e.setSelected(hit)
		e.state = InteractionState{
			Phase:      PhaseDragging,
			Index:      hit,
			GrabOffset: pos.Sub(list[hit].PixelRect(size).TopLeft()),
		}
	case tool == ToolDraw:
		e.setSelected(-1)
		e.state = InteractionState{
			Phase:   PhaseDrawing,
			Start:   pos,
			Preview: geometry.Rect{X: pos.X, Y: pos.Y},
		}
	case tool == ToolSelect:
		e.setSelected(-1)
		e.state = InteractionState{Phase: PhaseIdle, Index: -1}
	}
}

// PointerMove advances the live interaction. Drawing only updates the
// preview; dragging and resizing write the annotation immediately so the
// user manipulates persisted state directly.
func (e *Engine) PointerMove(pos geometry.Point2D) {
	switch e.state.Phase {
	case PhaseDrawing:
		e.state.Preview = geometry.Rect{
			X:      math.Min(e.state.Start.X, pos.X),
			Y:      math.Min(e.state.Start.Y, pos.Y),
			Width:  math.Abs(pos.X - e.state.Start.X),
			Height: math.Abs(pos.Y - e.state.Start.Y),
		}
	case PhaseDragging:
		e.moveSelected(pos)
	case PhaseResizing:
		e.resizeSelected(pos)
	}
}

// moveSelected repositions the dragged annotation, keeping its size and
// clamping it fully inside the image.
func (e *Engine) moveSelected(pos geometry.Point2D) {
	size := e.imageSize()
	if size.Empty() {
		return
	}
	list := e.annotations()
	if e.state.Index < 0 || e.state.Index >= len(list) {
		return
	}

	r := list[e.state.Index].PixelRect(size)
	r.X = clamp(pos.X-e.state.GrabOffset.X, 0, size.Width-r.Width)
	r.Y = clamp(pos.Y-e.state.GrabOffset.Y, 0, size.Height-r.Height)

	out := Clone(list)
	out[e.state.Index].RatioX = r.X / size.Width
	out[e.state.Index].RatioY = r.Y / size.Height
	e.replace(out)
}

// resizeSelected applies the handle transform to the rect captured at
// resize start. Deltas are always taken from the start anchor, never the
// previous move event, so repeated moves cannot compound rounding drift.
func (e *Engine) resizeSelected(pos geometry.Point2D) {
	size := e.imageSize()
	if size.Empty() {
		return
	}
	list := e.annotations()
	if e.state.Index < 0 || e.state.Index >= len(list) {
		return
	}

	dx := pos.X - e.state.AnchorPos.X
	dy := pos.Y - e.state.AnchorPos.Y
	r := resizeRect(e.state.AnchorRect, e.state.Handle, dx, dy)

	r.Width = math.Max(r.Width, MinBoxSize)
	r.Height = math.Max(r.Height, MinBoxSize)
	r.X = clamp(r.X, 0, size.Width-r.Width)
	r.Y = clamp(r.Y, 0, size.Height-r.Height)

	out := Clone(list)
	out[e.state.Index].SetPixelRect(r, size)
	e.replace(out)
}

// resizeRect applies a handle's edge transforms to the anchor rect.
func resizeRect(r geometry.Rect, h Handle, dx, dy float64) geometry.Rect {
	switch h {
	case HandleN, HandleNE, HandleNW:
		r.Height -= dy
		r.Y += dy
	case HandleS, HandleSE, HandleSW:
		r.Height += dy
	}
	switch h {
	case HandleE, HandleNE, HandleSE:
		r.Width += dx
	case HandleW, HandleNW, HandleSW:
		r.Width -= dx
		r.X += dx
	}
	return r
}

// PointerUp ends the live interaction. A drawing that exceeds the commit
// threshold in both dimensions becomes a new annotation with empty metadata
// and is selected; anything smaller is discarded. The engine always returns
// to idle, whatever phase was live.
func (e *Engine) PointerUp() {
	if e.state.Phase == PhaseDrawing {
		size := e.imageSize()
		r := e.state.Preview
		if !size.Empty() && r.Width > MinCommitSize && r.Height > MinCommitSize {
			list := Clone(e.annotations())
			a := Annotation{ID: e.newID()}
			a.SetPixelRect(r, size)
			list = append(list, a)
			e.replace(list)
			e.setSelected(len(list) - 1)
		}
	}
	e.state = InteractionState{Phase: PhaseIdle, Index: -1}
}

// HandleAt returns the resize handle whose hit-zone on rect r contains p,
// or HandleNone. Zones are squares of side grab centered on the corners and
// edge midpoints, matching the rendered handle decorations.
func HandleAt(r geometry.Rect, p geometry.Point2D, grab float64) Handle {
	half := grab / 2
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2

	zones := []struct {
		h    Handle
		x, y float64
	}{
		{HandleNW, r.X, r.Y},
		{HandleN, cx, r.Y},
		{HandleNE, r.X + r.Width, r.Y},
		{HandleE, r.X + r.Width, cy},
		{HandleSE, r.X + r.Width, r.Y + r.Height},
		{HandleS, cx, r.Y + r.Height},
		{HandleSW, r.X, r.Y + r.Height},
		{HandleW, r.X, cy},
	}
	for _, z := range zones {
		if p.X >= z.x-half && p.X <= z.x+half && p.Y >= z.y-half && p.Y <= z.y+half {
			return z.h
		}
	}
	return HandleNone
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		// Rect larger than the image: pin to origin.
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
