// Package export renders project annotations as API documentation.
package export

import (
	"fmt"
	"sort"
	"strings"

	"mockup-annotator/internal/annotation"
	"mockup-annotator/internal/project"
)

// Markdown renders the project's annotations as a Markdown API reference,
// grouped by mockup image, endpoints sorted within each group.
func Markdown(p *project.File) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}

	for _, img := range p.Images {
		anns := annotated(img.Annotations)
		if len(anns) == 0 {
			continue
		}

		fmt.Fprintf(&b, "## %s\n\n", img.Name)
		for _, a := range anns {
			writeEndpoint(&b, a.API)
		}
	}

	return b.String()
}

func writeEndpoint(b *strings.Builder, api annotation.APIDetails) {
	fmt.Fprintf(b, "### `%s %s`\n\n", api.Method, api.Endpoint)
	if api.Description != "" {
		fmt.Fprintf(b, "%s\n\n", api.Description)
	}

	if len(api.Params) > 0 {
		b.WriteString("| Name | In | Type | Required | Description |\n")
		b.WriteString("|------|----|------|----------|-------------|\n")
		for _, p := range api.Params {
			fmt.Fprintf(b, "| %s | %s | %s | %v | %s |\n",
				p.Name, p.In, p.Type, p.Required, p.Description)
		}
		b.WriteString("\n")
	}

	if api.RequestBody != "" {
		b.WriteString("**Request body**\n\n```json\n")
		b.WriteString(strings.TrimSpace(api.RequestBody))
		b.WriteString("\n```\n\n")
	}
	if api.ResponseBody != "" {
		b.WriteString("**Response**\n\n```json\n")
		b.WriteString(strings.TrimSpace(api.ResponseBody))
		b.WriteString("\n```\n\n")
	}
}

// annotated filters out annotations with no endpoint set and sorts the
// rest by endpoint then method for stable output.
func annotated(anns []annotation.Annotation) []annotation.Annotation {
	kept := make([]annotation.Annotation, 0, len(anns))
	for _, a := range anns {
		if a.API.Endpoint != "" {
			kept = append(kept, a)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].API.Endpoint != kept[j].API.Endpoint {
			return kept[i].API.Endpoint < kept[j].API.Endpoint
		}
		return kept[i].API.Method < kept[j].API.Method
	})
	return kept
}
