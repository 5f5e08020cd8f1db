package project

import (
	"os"
	"path/filepath"
	"testing"

	"mockup-annotator/internal/annotation"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shop"+Extension)

	proj := New("shop")
	proj.Images = []ImageEntry{
		{
			Path: "mockups/home.png",
			Name: "home.png",
			Annotations: []annotation.Annotation{
				{
					ID:          "a1",
					RatioX:      0.125,
					RatioY:      0.25,
					RatioWidth:  0.5,
					RatioHeight: 0.1,
					API: annotation.APIDetails{
						Endpoint:    "/api/products",
						Method:      "GET",
						Description: "Product grid",
						Params: []annotation.Param{
							{Name: "page", In: "query", Type: "int"},
						},
					},
				},
			},
		},
	}

	if err := proj.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Name != "shop" || loaded.Version != 1 {
		t.Errorf("unexpected header: name=%q version=%d", loaded.Name, loaded.Version)
	}
	if len(loaded.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(loaded.Images))
	}
	img := loaded.Images[0]
	if img.Path != "mockups/home.png" {
		t.Errorf("unexpected image path %q", img.Path)
	}
	if len(img.Annotations) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(img.Annotations))
	}
	a := img.Annotations[0]
	if a.ID != "a1" || a.RatioX != 0.125 || a.RatioHeight != 0.1 {
		t.Errorf("unexpected annotation geometry: %+v", a)
	}
	if a.API.Endpoint != "/api/products" || a.API.Method != "GET" {
		t.Errorf("unexpected api details: %+v", a.API)
	}
	if len(a.API.Params) != 1 || a.API.Params[0].Name != "page" {
		t.Errorf("unexpected params: %+v", a.API.Params)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.mockapi")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.mockapi")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestAddImageRelativizes(t *testing.T) {
	dir := t.TempDir()
	projPath := filepath.Join(dir, "p"+Extension)
	imgPath := filepath.Join(dir, "shots", "login.png")

	proj := New("p")
	proj.AddImage(projPath, imgPath)

	if len(proj.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(proj.Images))
	}
	if proj.Images[0].Path != filepath.Join("shots", "login.png") {
		t.Errorf("expected relative path, got %q", proj.Images[0].Path)
	}

	abs := proj.ResolveImagePath(projPath, proj.Images[0])
	if abs != imgPath {
		t.Errorf("expected %q, got %q", imgPath, abs)
	}
}
