package panels

import (
	"mockup-annotator/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel combines the mockup list, tools, and API form into a tabbed
// panel for the left side of the main window.
type SidePanel struct {
	Mockups *MockupPanel
	Tools   *ToolsPanel
	API     *APIPanel

	tabs *container.AppTabs
}

// NewSidePanel creates the side panel.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{
		Mockups: NewMockupPanel(state),
		Tools:   NewToolsPanel(state),
		API:     NewAPIPanel(state),
	}

	sp.tabs = container.NewAppTabs(
		container.NewTabItem("Mockups", sp.Mockups.Container()),
		container.NewTabItem("Tools", sp.Tools.Container()),
		container.NewTabItem("API", sp.API.Container()),
	)

	// Jump to the form when the user picks an annotation to edit.
	state.On(app.EventSelectionChanged, func(data interface{}) {
		if idx, ok := data.(int); ok && idx >= 0 {
			sp.tabs.SelectIndex(2)
		}
	})

	return sp
}

// Container returns the panel's root container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.tabs
}
