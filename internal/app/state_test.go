package app

import (
	goimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"mockup-annotator/internal/annotation"
	"mockup-annotator/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

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

func TestAddMockup(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "login.png", 800, 600)

	s := NewState()
	var added, changed bool
	s.On(EventMockupAdded, func(interface{}) { added = true })
	s.On(EventMockupChanged, func(interface{}) { changed = true })

	if err := s.AddMockup(path); err != nil {
		t.Fatalf("AddMockup: %v", err)
	}

	if s.Current() != 0 {
		t.Errorf("current = %d, want 0", s.Current())
	}
	if !added || !changed {
		t.Error("expected mockup events")
	}
	if size := s.ImageSize(); size.Width != 800 || size.Height != 600 {
		t.Errorf("image size = %+v", size)
	}
	if !s.Modified {
		t.Error("adding a mockup must mark the project modified")
	}
}

func TestAddMockupUnsupported(t *testing.T) {
	s := NewState()
	if err := s.AddMockup("mockup.pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestReplaceAnnotationsClampsSelection(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	if err := s.AddMockup(writeTestPNG(t, dir, "m.png", 100, 100)); err != nil {
		t.Fatal(err)
	}

	anns := []annotation.Annotation{
		{ID: "a", RatioWidth: 0.1, RatioHeight: 0.1},
		{ID: "b", RatioX: 0.5, RatioWidth: 0.1, RatioHeight: 0.1},
	}
	s.ReplaceAnnotations(anns)
	s.Select(1)

	s.ReplaceAnnotations(anns[:1])
	if s.Selected() != -1 {
		t.Errorf("selection = %d after shrink, want -1", s.Selected())
	}
}

func TestSelectOutOfRangeDeselects(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	if err := s.AddMockup(writeTestPNG(t, dir, "m.png", 100, 100)); err != nil {
		t.Fatal(err)
	}
	s.ReplaceAnnotations([]annotation.Annotation{{ID: "a"}})

	s.Select(0)
	if s.Selected() != 0 {
		t.Fatalf("selected = %d, want 0", s.Selected())
	}
	s.Select(5)
	if s.Selected() != -1 {
		t.Errorf("selected = %d, want -1", s.Selected())
	}
}

func TestDeleteSelected(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	if err := s.AddMockup(writeTestPNG(t, dir, "m.png", 100, 100)); err != nil {
		t.Fatal(err)
	}
	s.ReplaceAnnotations([]annotation.Annotation{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	s.Select(1)

	var events int
	s.On(EventAnnotationsChanged, func(interface{}) { events++ })
	s.DeleteSelected()

	anns := s.Annotations()
	if len(anns) != 2 || anns[0].ID != "a" || anns[1].ID != "c" {
		t.Errorf("annotations after delete: %+v", anns)
	}
	if s.Selected() != -1 {
		t.Errorf("selection = %d after delete, want -1", s.Selected())
	}
	if events != 1 {
		t.Errorf("got %d change events, want 1", events)
	}

	// Deleting with nothing selected is a no-op.
	s.DeleteSelected()
	if len(s.Annotations()) != 2 {
		t.Error("delete without selection must not remove anything")
	}
}

func TestUpdateSelectedAPI(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	if err := s.AddMockup(writeTestPNG(t, dir, "m.png", 100, 100)); err != nil {
		t.Fatal(err)
	}
	s.ReplaceAnnotations([]annotation.Annotation{{ID: "a"}})
	s.Select(0)

	s.UpdateSelectedAPI(annotation.APIDetails{Endpoint: "/login", Method: "POST"})

	got, ok := s.SelectedAnnotation()
	if !ok {
		t.Fatal("expected a selected annotation")
	}
	if got.API.Endpoint != "/login" || got.API.Method != "POST" {
		t.Errorf("API = %+v", got.API)
	}
}

func TestSwitchMockupClearsSelection(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	if err := s.AddMockup(writeTestPNG(t, dir, "a.png", 100, 100)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddMockup(writeTestPNG(t, dir, "b.png", 100, 100)); err != nil {
		t.Fatal(err)
	}

	s.SetCurrent(0)
	s.ReplaceAnnotations([]annotation.Annotation{{ID: "a"}})
	s.Select(0)

	s.SetCurrent(1)
	if s.Selected() != -1 {
		t.Errorf("selection = %d after mockup switch, want -1", s.Selected())
	}
	if len(s.Annotations()) != 0 {
		t.Error("annotations must be per mockup")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	imgPath := writeTestPNG(t, dir, "login.png", 640, 480)
	projPath := filepath.Join(dir, "shop.mockapi")

	s := NewState()
	s.NewProject("Shop")
	if err := s.AddMockup(imgPath); err != nil {
		t.Fatal(err)
	}
	s.ReplaceAnnotations([]annotation.Annotation{{
		ID:     "a",
		RatioX: 0.25, RatioY: 0.25, RatioWidth: 0.5, RatioHeight: 0.25,
		API: annotation.APIDetails{Endpoint: "/login", Method: "POST"},
	}})

	if err := s.SaveProject(projPath); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	if s.Modified {
		t.Error("save must clear the modified flag")
	}

	loaded := NewState()
	if err := loaded.LoadProject(projPath); err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if loaded.Current() != 0 {
		t.Errorf("current = %d after load, want 0", loaded.Current())
	}
	anns := loaded.Annotations()
	if len(anns) != 1 || anns[0].API.Endpoint != "/login" {
		t.Errorf("annotations after load: %+v", anns)
	}
	if size := loaded.ImageSize(); size.Width != 640 || size.Height != 480 {
		t.Errorf("image size after load = %+v", size)
	}
}

func TestSetTool(t *testing.T) {
	s := NewState()

	var events int
	s.On(EventToolChanged, func(interface{}) { events++ })

	s.SetTool(annotation.ToolDraw)
	s.SetTool(annotation.ToolDraw) // no-op
	s.SetTool(annotation.ToolSelect)

	if s.Tool() != annotation.ToolSelect {
		t.Errorf("tool = %v", s.Tool())
	}
	if events != 2 {
		t.Errorf("got %d tool events, want 2", events)
	}
}

func TestEngineCallbacksDriveState(t *testing.T) {
	dir := t.TempDir()
	s := NewState()
	if err := s.AddMockup(writeTestPNG(t, dir, "m.png", 800, 600)); err != nil {
		t.Fatal(err)
	}
	s.SetTool(annotation.ToolDraw)

	eng := annotation.NewEngine(s.EngineCallbacks())
	eng.PointerDown(pt(100, 100), annotation.HandleNone)
	eng.PointerMove(pt(300, 250))
	eng.PointerUp()

	anns := s.Annotations()
	if len(anns) != 1 {
		t.Fatalf("got %d annotations, want 1", len(anns))
	}
	if anns[0].ID == "" {
		t.Error("committed annotation must get a generated ID")
	}
	if s.Selected() != 0 {
		t.Errorf("selected = %d, want 0", s.Selected())
	}
}
