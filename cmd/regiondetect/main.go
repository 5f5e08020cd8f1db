// Command regiondetect runs region suggestion on a mockup image and prints
// the detected rectangles.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"mockup-annotator/internal/detect"
	"mockup-annotator/internal/image"
)

func main() {
	imagePath := flag.String("image", "", "Path to mockup image (PNG, JPEG, WebP, TIFF, BMP)")
	minArea := flag.Float64("min-area", 400, "Minimum region area in pixels")
	asJSON := flag.Bool("json", false, "Output regions as JSON")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: regiondetect -image <path> [-min-area 400] [-json]")
		os.Exit(1)
	}

	mockup, err := image.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Loaded %s: %dx%d pixels\n",
		mockup.Name, mockup.Width(), mockup.Height())

	opts := detect.DefaultOptions()
	opts.MinRegionArea = *minArea

	rects, err := detect.DetectRegions(mockup.Image, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rects); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode regions: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Found %d regions:\n", len(rects))
	for i, r := range rects {
		fmt.Printf("  %2d: x=%-5d y=%-5d w=%-5d h=%-5d area=%.0f\n",
			i, r.X, r.Y, r.Width, r.Height, r.Area())
	}
}
