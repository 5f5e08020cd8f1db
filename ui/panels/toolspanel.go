package panels

import (
	"fmt"
	"log"

	"mockup-annotator/internal/annotation"
	"mockup-annotator/internal/app"
	"mockup-annotator/internal/detect"
	"mockup-annotator/internal/ocr"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/google/uuid"
)

// ToolsPanel holds the tool switcher and the automatic annotation helpers.
type ToolsPanel struct {
	state  *app.State
	box    *fyne.Container
	tools  *widget.RadioGroup
	status *widget.Label
}

// NewToolsPanel creates the tools panel.
func NewToolsPanel(state *app.State) *ToolsPanel {
	tp := &ToolsPanel{state: state}

	tp.tools = widget.NewRadioGroup([]string{"Select", "Draw"}, func(value string) {
		switch value {
		case "Draw":
			state.SetTool(annotation.ToolDraw)
		default:
			state.SetTool(annotation.ToolSelect)
		}
	})
	tp.tools.SetSelected("Select")

	suggestBtn := widget.NewButton("Suggest Regions", tp.suggestRegions)
	ocrBtn := widget.NewButton("Prefill from Text", tp.prefillFromText)
	tp.status = widget.NewLabel("")
	tp.status.Wrapping = fyne.TextWrapWord

	tp.box = container.NewVBox(
		widget.NewLabel("Tool"),
		tp.tools,
		widget.NewSeparator(),
		suggestBtn,
		ocrBtn,
		tp.status,
	)

	state.On(app.EventToolChanged, func(data interface{}) {
		if tool, ok := data.(annotation.Tool); ok {
			switch tool {
			case annotation.ToolDraw:
				tp.tools.SetSelected("Draw")
			default:
				tp.tools.SetSelected("Select")
			}
		}
	})

	return tp
}

// Container returns the panel's root container.
func (tp *ToolsPanel) Container() fyne.CanvasObject {
	return tp.box
}

// suggestRegions runs edge detection on the current mockup and appends an
// unfilled annotation for each suggested rectangle.
func (tp *ToolsPanel) suggestRegions() {
	mockup := tp.state.CurrentMockup()
	if mockup == nil {
		tp.status.SetText("No mockup loaded")
		return
	}

	rects, err := detect.DetectRegions(mockup.Image, detect.DefaultOptions())
	if err != nil {
		log.Printf("region detection failed: %v", err)
		tp.status.SetText("Detection failed: " + err.Error())
		return
	}
	if len(rects) == 0 {
		tp.status.SetText("No regions found")
		return
	}

	size := tp.state.ImageSize()
	anns := annotation.Clone(tp.state.Annotations())
	for _, r := range rects {
		a := annotation.Annotation{ID: uuid.NewString()}
		a.SetPixelRect(r.ToFloat(), size)
		anns = append(anns, a)
	}
	tp.state.ReplaceAnnotations(anns)
	tp.status.SetText(fmt.Sprintf("Added %d suggested regions", len(rects)))
}

// prefillFromText runs OCR over the selected annotation's region and fills
// in endpoint and method guesses where the form is still empty.
func (tp *ToolsPanel) prefillFromText() {
	mockup := tp.state.CurrentMockup()
	if mockup == nil {
		tp.status.SetText("No mockup loaded")
		return
	}
	ann, ok := tp.state.SelectedAnnotation()
	if !ok {
		tp.status.SetText("Select an annotation first")
		return
	}

	engine, err := ocr.NewEngine()
	if err != nil {
		log.Printf("OCR engine unavailable: %v", err)
		tp.status.SetText("OCR unavailable: " + err.Error())
		return
	}
	defer engine.Close()

	mat, err := detect.ImageToMat(mockup.Image)
	if err != nil {
		tp.status.SetText("OCR failed: " + err.Error())
		return
	}
	defer mat.Close()

	region := ann.PixelRect(tp.state.ImageSize()).ToInt()
	text, err := engine.ReadRegion(mat, region)
	if err != nil {
		log.Printf("OCR failed: %v", err)
		tp.status.SetText("OCR failed: " + err.Error())
		return
	}
	if text == "" {
		tp.status.SetText("No text found in region")
		return
	}

	api := ann.API
	if api.Endpoint == "" {
		api.Endpoint = ocr.SuggestEndpoint(text)
	}
	if api.Method == "" {
		api.Method = ocr.SuggestMethod(text)
	}
	if api.Description == "" {
		api.Description = text
	}
	tp.state.UpdateSelectedAPI(api)
	tp.status.SetText("Read: " + text)
}
