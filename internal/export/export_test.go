package export

import (
	"strings"
	"testing"

	"mockup-annotator/internal/annotation"
	"mockup-annotator/internal/project"

	"gopkg.in/yaml.v3"
)

func sampleProject() *project.File {
	p := project.New("Shop Frontend")
	p.Description = "API surface inferred from checkout mockups."
	p.Images = []project.ImageEntry{
		{
			Path: "mockups/checkout.png",
			Name: "checkout",
			Annotations: []annotation.Annotation{
				{
					ID:     "ann-1",
					RatioX: 0.1, RatioY: 0.1, RatioWidth: 0.2, RatioHeight: 0.1,
					API: annotation.APIDetails{
						Endpoint:    "/orders",
						Method:      "POST",
						Description: "Create an order from the current cart.",
						RequestBody: `{"cart_id": "abc"}`,
						Params: []annotation.Param{
							{Name: "X-Idempotency-Key", In: "header", Type: "string", Required: true},
						},
					},
				},
				{
					ID:     "ann-2",
					RatioX: 0.5, RatioY: 0.5, RatioWidth: 0.2, RatioHeight: 0.1,
					// Drawn but not filled in yet.
				},
				{
					ID:     "ann-3",
					RatioX: 0.1, RatioY: 0.4, RatioWidth: 0.3, RatioHeight: 0.2,
					API: annotation.APIDetails{
						Endpoint:     "/cart",
						Method:       "GET",
						Description:  "Fetch the current cart.",
						ResponseBody: `{"items": []}`,
					},
				},
			},
		},
		{Path: "mockups/empty.png", Name: "empty"},
	}
	return p
}

func TestMarkdown(t *testing.T) {
	out := Markdown(sampleProject())

	for _, want := range []string{
		"# Shop Frontend",
		"## checkout",
		"### `GET /cart`",
		"### `POST /orders`",
		"X-Idempotency-Key",
		"```json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}

	if strings.Contains(out, "## empty") {
		t.Error("mockup without annotations must not get a section")
	}
	if strings.Contains(out, "ann-2") {
		t.Error("unfilled annotation must be skipped")
	}
	if strings.Index(out, "/cart") > strings.Index(out, "/orders") {
		t.Error("endpoints not sorted")
	}
}

func TestOpenAPI(t *testing.T) {
	out, err := OpenAPI(sampleProject())
	if err != nil {
		t.Fatalf("OpenAPI() error: %v", err)
	}

	var doc struct {
		OpenAPI string `yaml:"openapi"`
		Info    struct {
			Title string `yaml:"title"`
		} `yaml:"info"`
		Paths map[string]map[string]struct {
			Summary    string `yaml:"summary"`
			Parameters []struct {
				Name string `yaml:"name"`
				In   string `yaml:"in"`
			} `yaml:"parameters"`
			Responses map[string]struct {
				Description string `yaml:"description"`
			} `yaml:"responses"`
		} `yaml:"paths"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}

	if doc.OpenAPI != "3.0.3" {
		t.Errorf("openapi version = %q", doc.OpenAPI)
	}
	if doc.Info.Title != "Shop Frontend" {
		t.Errorf("title = %q", doc.Info.Title)
	}
	if len(doc.Paths) != 2 {
		t.Fatalf("got %d paths, want 2: %v", len(doc.Paths), doc.Paths)
	}

	post, ok := doc.Paths["/orders"]["post"]
	if !ok {
		t.Fatal("missing post /orders operation")
	}
	if len(post.Parameters) != 1 || post.Parameters[0].Name != "X-Idempotency-Key" {
		t.Errorf("parameters = %+v", post.Parameters)
	}
	if _, ok := post.Responses["200"]; !ok {
		t.Error("missing default 200 response")
	}
}

func TestOpenAPIMergesDuplicateEndpoints(t *testing.T) {
	p := project.New("dup")
	ann := annotation.Annotation{
		ID:  "a",
		API: annotation.APIDetails{Endpoint: "/users", Method: "GET", Description: "first"},
	}
	other := ann
	other.ID = "b"
	other.API.Description = "second"
	p.Images = []project.ImageEntry{
		{Name: "one", Annotations: []annotation.Annotation{ann}},
		{Name: "two", Annotations: []annotation.Annotation{other}},
	}

	out, err := OpenAPI(p)
	if err != nil {
		t.Fatalf("OpenAPI() error: %v", err)
	}
	if !strings.Contains(string(out), "first") || strings.Contains(string(out), "second") {
		t.Errorf("duplicate endpoint not merged first-wins:\n%s", out)
	}
}
