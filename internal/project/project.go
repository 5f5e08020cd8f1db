// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mockup-annotator/internal/annotation"
)

// Extension is the project file extension.
const Extension = ".mockapi"

// File represents an annotator project file (.mockapi).
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Description string    `json:"description,omitempty"`

	// Mockup images with their annotations. Image paths are stored
	// relative to the project file so the project directory can move.
	Images []ImageEntry `json:"images"`
}

// ImageEntry is one mockup image and its annotation list.
type ImageEntry struct {
	Path        string                  `json:"path"`
	Name        string                  `json:"name,omitempty"`
	Annotations []annotation.Annotation `json:"annotations,omitempty"`
}

// New creates a new project file with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
	}
}

// Load loads a project from a .mockapi file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}

	return &proj, nil
}

// Save saves the project to a file, updating its modified timestamp.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AddImage appends an image entry, storing its path relative to the
// project file when possible.
func (p *File) AddImage(projectPath, imagePath string) {
	entry := ImageEntry{
		Path: imagePath,
		Name: filepath.Base(imagePath),
	}
	if projectPath != "" {
		if rel, err := filepath.Rel(filepath.Dir(projectPath), imagePath); err == nil {
			entry.Path = rel
		}
	}
	p.Images = append(p.Images, entry)
	p.Modified = time.Now()
}

// ResolveImagePath returns the absolute path of an image entry relative to
// the project file location.
func (p *File) ResolveImagePath(projectPath string, entry ImageEntry) string {
	if filepath.IsAbs(entry.Path) || projectPath == "" {
		return entry.Path
	}
	return filepath.Join(filepath.Dir(projectPath), entry.Path)
}
