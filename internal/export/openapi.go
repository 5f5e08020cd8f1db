package export

import (
	"fmt"
	"strings"

	"mockup-annotator/internal/annotation"
	"mockup-annotator/internal/project"

	"gopkg.in/yaml.v3"
)

// openapiDoc is the subset of an OpenAPI 3 document that annotation data
// can populate. Bodies are emitted as descriptions, not schemas, since the
// annotations hold free-form example text.
type openapiDoc struct {
	OpenAPI string                         `yaml:"openapi"`
	Info    openapiInfo                    `yaml:"info"`
	Paths   map[string]map[string]openapiOp `yaml:"paths"`
}

type openapiInfo struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version"`
}

type openapiOp struct {
	Summary     string           `yaml:"summary,omitempty"`
	Parameters  []openapiParam   `yaml:"parameters,omitempty"`
	RequestBody *openapiBody     `yaml:"requestBody,omitempty"`
	Responses   map[string]openapiResponse `yaml:"responses"`
}

type openapiParam struct {
	Name        string        `yaml:"name"`
	In          string        `yaml:"in"`
	Required    bool          `yaml:"required,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Schema      openapiSchema `yaml:"schema"`
}

type openapiSchema struct {
	Type string `yaml:"type"`
}

type openapiBody struct {
	Description string `yaml:"description"`
}

type openapiResponse struct {
	Description string `yaml:"description"`
}

// OpenAPI renders the project's annotations as an OpenAPI 3.0 YAML stub.
// Annotations without an endpoint are skipped; annotations on different
// mockups that describe the same endpoint and method are merged, first
// one wins.
func OpenAPI(p *project.File) ([]byte, error) {
	doc := openapiDoc{
		OpenAPI: "3.0.3",
		Info: openapiInfo{
			Title:       p.Name,
			Description: p.Description,
			Version:     "0.1.0",
		},
		Paths: make(map[string]map[string]openapiOp),
	}

	for _, img := range p.Images {
		for _, a := range annotated(img.Annotations) {
			addOperation(doc.Paths, a.API)
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OpenAPI document: %w", err)
	}
	return out, nil
}

func addOperation(paths map[string]map[string]openapiOp, api annotation.APIDetails) {
	method := strings.ToLower(api.Method)
	if method == "" {
		method = "get"
	}

	ops, ok := paths[api.Endpoint]
	if !ok {
		ops = make(map[string]openapiOp)
		paths[api.Endpoint] = ops
	}
	if _, exists := ops[method]; exists {
		return
	}

	op := openapiOp{
		Summary:   api.Description,
		Responses: map[string]openapiResponse{"200": {Description: "OK"}},
	}
	if api.ResponseBody != "" {
		op.Responses["200"] = openapiResponse{Description: strings.TrimSpace(api.ResponseBody)}
	}
	if api.RequestBody != "" {
		op.RequestBody = &openapiBody{Description: strings.TrimSpace(api.RequestBody)}
	}

	for _, p := range api.Params {
		typ := p.Type
		if typ == "" {
			typ = "string"
		}
		op.Parameters = append(op.Parameters, openapiParam{
			Name:        p.Name,
			In:          p.In,
			Required:    p.Required,
			Description: p.Description,
			Schema:      openapiSchema{Type: typ},
		})
	}

	ops[method] = op
}
