package panels

import (
	goimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"mockup-annotator/internal/annotation"
	"mockup-annotator/internal/app"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, goimage.NewRGBA(goimage.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return path
}

// newPanelState returns a state with one mockup and two annotations, the
// first with a method set and the second with none.
func newPanelState(t *testing.T) *app.State {
	t.Helper()
	s := app.NewState()
	path := writeTestPNG(t, t.TempDir(), "checkout.png", 800, 600)
	if err := s.AddMockup(path); err != nil {
		t.Fatalf("AddMockup: %v", err)
	}
	s.ReplaceAnnotations([]annotation.Annotation{
		{
			ID: "a1", RatioX: 0.1, RatioY: 0.1, RatioWidth: 0.2, RatioHeight: 0.1,
			API: annotation.APIDetails{Endpoint: "/cart", Method: "GET"},
		},
		{
			ID: "a2", RatioX: 0.5, RatioY: 0.5, RatioWidth: 0.2, RatioHeight: 0.1,
		},
	})
	return s
}

func TestReloadClearsUnsetMethod(t *testing.T) {
	test.NewApp()
	s := newPanelState(t)
	ap := NewAPIPanel(s)

	s.Select(0)
	if ap.method.Selected != "GET" {
		t.Fatalf("method = %q, want GET", ap.method.Selected)
	}

	s.Select(1)
	if ap.method.Selected != "" {
		t.Fatalf("method = %q, want empty after selecting unset annotation", ap.method.Selected)
	}

	// Editing a field must not write the previous annotation's method back.
	ap.desc.SetText("opens the cart")
	ann, ok := s.SelectedAnnotation()
	if !ok {
		t.Fatal("expected a selection")
	}
	if ann.API.Method != "" {
		t.Errorf("method = %q, want empty after edit", ann.API.Method)
	}
	if ann.API.Description != "opens the cart" {
		t.Errorf("description = %q", ann.API.Description)
	}
}

func TestReloadOnAnnotationChange(t *testing.T) {
	test.NewApp()
	s := newPanelState(t)
	ap := NewAPIPanel(s)

	s.Select(1)

	// Direct state updates, such as text recognition prefill, must show up
	// in the form without a selection change.
	s.UpdateSelectedAPI(annotation.APIDetails{
		Endpoint:    "/orders",
		Method:      "POST",
		Description: "submits the order",
	})

	if ap.endpoint.Text != "/orders" {
		t.Fatalf("endpoint = %q, want /orders", ap.endpoint.Text)
	}
	if ap.method.Selected != "POST" {
		t.Fatalf("method = %q, want POST", ap.method.Selected)
	}

	// A later edit starts from the reloaded contents, not stale ones.
	ap.request.SetText(`{"items": []}`)
	ann, _ := s.SelectedAnnotation()
	if ann.API.Endpoint != "/orders" || ann.API.Method != "POST" {
		t.Errorf("edit erased prefilled fields: %+v", ann.API)
	}
	if ann.API.RequestBody != `{"items": []}` {
		t.Errorf("request body = %q", ann.API.RequestBody)
	}
}

func TestEditKeepsFormContents(t *testing.T) {
	test.NewApp()
	s := newPanelState(t)
	ap := NewAPIPanel(s)

	s.Select(0)
	ap.endpoint.SetText("/cart/items")

	if ap.endpoint.Text != "/cart/items" {
		t.Fatalf("endpoint = %q, the write-back must not reload the form", ap.endpoint.Text)
	}
	ann, _ := s.SelectedAnnotation()
	if ann.API.Endpoint != "/cart/items" {
		t.Errorf("endpoint = %q in state", ann.API.Endpoint)
	}
}

func TestParamListHasVisibleHeight(t *testing.T) {
	test.NewApp()
	s := newPanelState(t)
	ap := NewAPIPanel(s)

	scroll, ok := ap.box.Objects[3].(*container.Scroll)
	if !ok {
		t.Fatalf("expected parameter list scroll, got %T", ap.box.Objects[3])
	}
	if scroll.MinSize().Height < 120 {
		t.Errorf("parameter list min height = %v, renders collapsed", scroll.MinSize().Height)
	}
}
