package panels

import (
	"fmt"

	"mockup-annotator/internal/annotation"
	"mockup-annotator/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var httpMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

var paramLocations = []string{"query", "path", "header", "body"}

// APIPanel edits the API details of the selected annotation.
type APIPanel struct {
	state *app.State
	box   *fyne.Container

	endpoint *widget.Entry
	method   *widget.Select
	desc     *widget.Entry
	request  *widget.Entry
	response *widget.Entry

	paramList *widget.List
	params    []annotation.Param

	paramName     *widget.Entry
	paramLocation *widget.Select
	paramType     *widget.Entry
	paramRequired *widget.Check

	deleteBtn *widget.Button

	// Guards against writing back to state while loading a selection
	// into the form.
	loading bool

	// Guards against reloading the form from the annotation-change event
	// that apply itself raises, which would reset the cursor mid-edit.
	applying bool
}

// NewAPIPanel creates the annotation details panel.
func NewAPIPanel(state *app.State) *APIPanel {
	ap := &APIPanel{state: state}

	ap.endpoint = widget.NewEntry()
	ap.endpoint.SetPlaceHolder("/users/{id}")
	ap.method = widget.NewSelect(httpMethods, nil)
	ap.desc = widget.NewMultiLineEntry()
	ap.desc.SetPlaceHolder("What this element calls")
	ap.request = widget.NewMultiLineEntry()
	ap.request.SetPlaceHolder("Request body example (JSON)")
	ap.response = widget.NewMultiLineEntry()
	ap.response.SetPlaceHolder("Response body example (JSON)")

	onChange := func(string) { ap.apply() }
	ap.endpoint.OnChanged = onChange
	ap.desc.OnChanged = onChange
	ap.request.OnChanged = onChange
	ap.response.OnChanged = onChange
	ap.method.OnChanged = func(string) { ap.apply() }

	ap.paramList = widget.NewList(
		func() int { return len(ap.params) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewButton("x", nil),
				widget.NewLabel("param"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ap.params) {
				return
			}
			p := ap.params[id]
			row := obj.(*fyne.Container)

			label := row.Objects[0].(*widget.Label)
			text := fmt.Sprintf("%s (%s, %s)", p.Name, p.In, p.Type)
			if p.Required {
				text += " *"
			}
			label.SetText(text)

			remove := row.Objects[1].(*widget.Button)
			remove.OnTapped = func() { ap.removeParam(id) }
		},
	)

	ap.paramName = widget.NewEntry()
	ap.paramName.SetPlaceHolder("name")
	ap.paramLocation = widget.NewSelect(paramLocations, nil)
	ap.paramLocation.SetSelected("query")
	ap.paramType = widget.NewEntry()
	ap.paramType.SetPlaceHolder("string")
	ap.paramRequired = widget.NewCheck("required", nil)
	addParam := widget.NewButton("Add Parameter", ap.addParam)

	ap.deleteBtn = widget.NewButton("Delete Annotation", func() {
		state.DeleteSelected()
	})

	form := widget.NewForm(
		widget.NewFormItem("Endpoint", ap.endpoint),
		widget.NewFormItem("Method", ap.method),
		widget.NewFormItem("Description", ap.desc),
	)

	paramEditor := container.NewVBox(
		container.NewGridWithColumns(2, ap.paramName, ap.paramLocation),
		container.NewGridWithColumns(2, ap.paramType, ap.paramRequired),
		addParam,
	)

	paramScroll := container.NewVScroll(ap.paramList)
	paramScroll.SetMinSize(fyne.NewSize(0, 120))

	ap.box = container.NewVBox(
		form,
		widget.NewSeparator(),
		widget.NewLabel("Parameters"),
		paramScroll,
		paramEditor,
		widget.NewSeparator(),
		widget.NewLabel("Request"),
		ap.request,
		widget.NewLabel("Response"),
		ap.response,
		widget.NewSeparator(),
		ap.deleteBtn,
	)

	state.On(app.EventSelectionChanged, func(interface{}) { ap.reload() })
	state.On(app.EventMockupChanged, func(interface{}) { ap.reload() })
	state.On(app.EventAnnotationsChanged, func(interface{}) { ap.reload() })

	ap.reload()
	return ap
}

// Container returns the panel's root container.
func (ap *APIPanel) Container() fyne.CanvasObject {
	return container.NewVScroll(ap.box)
}

// reload populates the form from the selected annotation.
func (ap *APIPanel) reload() {
	if ap.applying {
		return
	}
	ap.loading = true
	defer func() { ap.loading = false }()

	ann, ok := ap.state.SelectedAnnotation()
	if !ok {
		ap.setEnabled(false)
		ap.endpoint.SetText("")
		ap.method.ClearSelected()
		ap.desc.SetText("")
		ap.request.SetText("")
		ap.response.SetText("")
		ap.params = nil
		ap.paramList.Refresh()
		return
	}

	ap.setEnabled(true)
	ap.endpoint.SetText(ann.API.Endpoint)
	// SetSelected ignores values outside Options, so an unset method has
	// to be cleared explicitly or the previous selection sticks.
	if ann.API.Method == "" {
		ap.method.ClearSelected()
	} else {
		ap.method.SetSelected(ann.API.Method)
	}
	ap.desc.SetText(ann.API.Description)
	ap.request.SetText(ann.API.RequestBody)
	ap.response.SetText(ann.API.ResponseBody)
	ap.params = append([]annotation.Param(nil), ann.API.Params...)
	ap.paramList.Refresh()
}

func (ap *APIPanel) setEnabled(enabled bool) {
	widgets := []fyne.Disableable{
		ap.endpoint, ap.method, ap.desc, ap.request, ap.response,
		ap.paramName, ap.paramLocation, ap.paramType, ap.paramRequired,
		ap.deleteBtn,
	}
	for _, w := range widgets {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
}

// apply writes the form contents back into the selected annotation.
func (ap *APIPanel) apply() {
	if ap.loading {
		return
	}
	if _, ok := ap.state.SelectedAnnotation(); !ok {
		return
	}

	ap.applying = true
	defer func() { ap.applying = false }()

	ap.state.UpdateSelectedAPI(annotation.APIDetails{
		Endpoint:     ap.endpoint.Text,
		Method:       ap.method.Selected,
		Description:  ap.desc.Text,
		RequestBody:  ap.request.Text,
		ResponseBody: ap.response.Text,
		Params:       append([]annotation.Param(nil), ap.params...),
	})
}

func (ap *APIPanel) addParam() {
	name := ap.paramName.Text
	if name == "" {
		return
	}
	typ := ap.paramType.Text
	if typ == "" {
		typ = "string"
	}

	ap.params = append(ap.params, annotation.Param{
		Name:     name,
		In:       ap.paramLocation.Selected,
		Type:     typ,
		Required: ap.paramRequired.Checked,
	})
	ap.paramList.Refresh()
	ap.apply()

	ap.paramName.SetText("")
	ap.paramType.SetText("")
	ap.paramRequired.SetChecked(false)
}

func (ap *APIPanel) removeParam(index int) {
	if index < 0 || index >= len(ap.params) {
		return
	}
	ap.params = append(ap.params[:index], ap.params[index+1:]...)
	ap.paramList.Refresh()
	ap.apply()
}
