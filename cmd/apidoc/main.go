// Command apidoc renders a project file as API documentation without
// opening the GUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"mockup-annotator/internal/export"
	"mockup-annotator/internal/project"
)

func main() {
	projectPath := flag.String("project", "", "Path to project file ("+project.Extension+")")
	format := flag.String("format", "markdown", "Output format: markdown or openapi")
	output := flag.String("out", "", "Output file (default stdout)")
	flag.Parse()

	if *projectPath == "" {
		fmt.Println("Usage: apidoc -project <path> [-format markdown|openapi] [-out file]")
		os.Exit(1)
	}

	proj, err := project.Load(*projectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load project: %v\n", err)
		os.Exit(1)
	}

	var data []byte
	switch *format {
	case "markdown":
		data = []byte(export.Markdown(proj))
	case "openapi":
		data, err = export.OpenAPI(proj)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render OpenAPI: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *format)
		os.Exit(1)
	}

	if *output == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", *output)
}
