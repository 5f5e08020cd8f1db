// Package image provides mockup image loading and thumbnails.
package image

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	_ "github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Mockup is a loaded design-mockup image.
type Mockup struct {
	Path  string      // Original file path
	Name  string      // Display name, defaults to the file base name
	Image image.Image // Decoded pixel data

	thumb image.Image // Cached side-panel thumbnail
}

// SupportedExtensions lists the image file extensions the loader accepts.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif", ".bmp", ".tiff", ".tif"}

// Supported reports whether the path has a loadable image extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load loads a mockup image from the specified path.
func Load(path string) (*Mockup, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &Mockup{
		Path:  path,
		Name:  filepath.Base(path),
		Image: img,
	}, nil
}

// Width returns the image width in pixels.
func (m *Mockup) Width() int {
	if m.Image == nil {
		return 0
	}
	return m.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (m *Mockup) Height() int {
	if m.Image == nil {
		return 0
	}
	return m.Image.Bounds().Dy()
}

// thumbnailSize is the bounding box for side-panel thumbnails.
const thumbnailSize = 96

// Thumbnail returns a cached thumbnail fitting inside thumbnailSize square.
func (m *Mockup) Thumbnail() image.Image {
	if m.thumb == nil && m.Image != nil {
		m.thumb = imaging.Fit(m.Image, thumbnailSize, thumbnailSize, imaging.Lanczos)
	}
	return m.thumb
}
