// Package panels provides the side panel widgets of the main window.
package panels

import (
	"fmt"

	"mockup-annotator/internal/app"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MockupPanel lists the project's mockup images and switches between them.
type MockupPanel struct {
	state *app.State
	list  *widget.List
	box   *fyne.Container

	onAddMockup func()
}

// NewMockupPanel creates the mockup list panel.
func NewMockupPanel(state *app.State) *MockupPanel {
	mp := &MockupPanel{state: state}

	mp.list = widget.NewList(
		func() int {
			return len(state.Project.Images)
		},
		func() fyne.CanvasObject {
			thumb := fynecanvas.NewImageFromImage(nil)
			thumb.FillMode = fynecanvas.ImageFillContain
			thumb.SetMinSize(fyne.NewSize(48, 48))
			return container.NewHBox(thumb, widget.NewLabel("mockup"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(state.Project.Images) {
				return
			}
			entry := state.Project.Images[id]
			row := obj.(*fyne.Container)

			label := row.Objects[1].(*widget.Label)
			count := len(entry.Annotations)
			label.SetText(fmt.Sprintf("%s (%d)", entry.Name, count))

			thumb := row.Objects[0].(*fynecanvas.Image)
			if m := state.LoadedMockup(id); m != nil {
				thumb.Image = m.Thumbnail()
				thumb.Refresh()
			}
		},
	)

	mp.list.OnSelected = func(id widget.ListItemID) {
		state.SetCurrent(id)
	}

	addBtn := widget.NewButton("Add Mockup...", func() {
		if mp.onAddMockup != nil {
			mp.onAddMockup()
		}
	})

	mp.box = container.NewBorder(nil, addBtn, nil, nil, mp.list)

	state.On(app.EventMockupAdded, func(interface{}) { mp.list.Refresh() })
	state.On(app.EventProjectLoaded, func(interface{}) { mp.list.Refresh() })
	state.On(app.EventAnnotationsChanged, func(interface{}) { mp.list.Refresh() })
	state.On(app.EventMockupChanged, func(data interface{}) {
		if idx, ok := data.(int); ok {
			mp.list.Select(idx)
		}
	})

	return mp
}

// OnAddMockup sets the callback for the add button.
func (mp *MockupPanel) OnAddMockup(callback func()) {
	mp.onAddMockup = callback
}

// Container returns the panel's root container.
func (mp *MockupPanel) Container() fyne.CanvasObject {
	return mp.box
}
