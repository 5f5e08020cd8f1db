// Package app provides application lifecycle management, state, and events.
package app

import (
	"fmt"
	"sync"

	"mockup-annotator/internal/annotation"
	"mockup-annotator/internal/image"
	"mockup-annotator/internal/project"
	"mockup-annotator/pkg/geometry"

	"github.com/google/uuid"
)

// State holds the application state: the open project, loaded mockup
// images, and the current editing context.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	Project     *project.File
	Modified    bool

	// Loaded mockups, keyed by index into Project.Images. Images are
	// loaded on first access and kept for the life of the project.
	mockups map[int]*image.Mockup

	// Editing context
	current  int // index into Project.Images, -1 when none
	selected int // index into current mockup's annotations, -1 when none
	tool     annotation.Tool

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventMockupAdded
	EventMockupChanged
	EventAnnotationsChanged
	EventSelectionChanged
	EventToolChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with an empty untitled project.
func NewState() *State {
	return &State{
		Project:   project.New("Untitled"),
		mockups:   make(map[int]*image.Mockup),
		current:   -1,
		selected:  -1,
		tool:      annotation.ToolSelect,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// NewProject replaces the current project with an empty one.
func (s *State) NewProject(name string) {
	s.mu.Lock()
	s.Project = project.New(name)
	s.ProjectPath = ""
	s.Modified = false
	s.mockups = make(map[int]*image.Mockup)
	s.current = -1
	s.selected = -1
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, "")
}

// LoadProject loads a project from the specified path. Mockup images are
// not loaded here; they are resolved lazily when first shown.
func (s *State) LoadProject(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Project = proj
	s.ProjectPath = path
	s.Modified = false
	s.mockups = make(map[int]*image.Mockup)
	s.selected = -1
	s.current = -1
	if len(proj.Images) > 0 {
		s.current = 0
	}
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, path)
	return nil
}

// SaveProject saves the project to the specified path.
func (s *State) SaveProject(path string) error {
	s.mu.RLock()
	proj := s.Project
	s.mu.RUnlock()

	if err := proj.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}

// AddMockup imports a mockup image into the project and makes it current.
func (s *State) AddMockup(path string) error {
	if !image.Supported(path) {
		return fmt.Errorf("unsupported image format: %s", path)
	}

	m, err := image.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Project.AddImage(s.ProjectPath, path)
	idx := len(s.Project.Images) - 1
	s.mockups[idx] = m
	s.current = idx
	s.selected = -1
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventMockupAdded, idx)
	s.Emit(EventMockupChanged, idx)
	return nil
}

// SetCurrent switches the editing context to another mockup. Selection is
// cleared since annotation indices do not carry across images.
func (s *State) SetCurrent(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.Project.Images) {
		s.mu.Unlock()
		return
	}
	s.current = index
	s.selected = -1
	s.mu.Unlock()

	s.Emit(EventMockupChanged, index)
	s.Emit(EventSelectionChanged, -1)
}

// Current returns the index of the current mockup, -1 when none.
func (s *State) Current() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentMockup returns the loaded image for the current mockup, loading it
// from disk on first access. Returns nil when no mockup is current or the
// file cannot be read.
func (s *State) CurrentMockup() *image.Mockup {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current < 0 || s.current >= len(s.Project.Images) {
		return nil
	}
	if m, ok := s.mockups[s.current]; ok {
		return m
	}

	path := s.Project.ResolveImagePath(s.ProjectPath, s.Project.Images[s.current])
	m, err := image.Load(path)
	if err != nil {
		return nil
	}
	s.mockups[s.current] = m
	return m
}

// LoadedMockup returns the cached image for any mockup index without
// touching disk. Returns nil when that mockup has not been shown yet.
func (s *State) LoadedMockup(index int) *image.Mockup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mockups[index]
}

// ImageSize returns the pixel dimensions of the current mockup, or the
// zero size when no mockup is loaded.
func (s *State) ImageSize() geometry.Size {
	m := s.CurrentMockup()
	if m == nil {
		return geometry.Size{}
	}
	return geometry.Size{Width: float64(m.Width()), Height: float64(m.Height())}
}

// Annotations returns the annotation list of the current mockup.
func (s *State) Annotations() []annotation.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current < 0 || s.current >= len(s.Project.Images) {
		return nil
	}
	return s.Project.Images[s.current].Annotations
}

// ReplaceAnnotations swaps in a new annotation list for the current mockup.
// The selected index is clamped to the new list.
func (s *State) ReplaceAnnotations(anns []annotation.Annotation) {
	s.mu.Lock()
	if s.current < 0 || s.current >= len(s.Project.Images) {
		s.mu.Unlock()
		return
	}
	s.Project.Images[s.current].Annotations = anns
	if s.selected >= len(anns) {
		s.selected = -1
	}
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventAnnotationsChanged, anns)
}

// Selected returns the index of the selected annotation, -1 when none.
func (s *State) Selected() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Select changes the selected annotation. Out-of-range indices deselect.
func (s *State) Select(index int) {
	s.mu.Lock()
	anns := []annotation.Annotation(nil)
	if s.current >= 0 && s.current < len(s.Project.Images) {
		anns = s.Project.Images[s.current].Annotations
	}
	if index < 0 || index >= len(anns) {
		index = -1
	}
	changed := index != s.selected
	s.selected = index
	s.mu.Unlock()

	if changed {
		s.Emit(EventSelectionChanged, index)
	}
}

// SelectedAnnotation returns a copy of the selected annotation, or false
// when nothing is selected.
func (s *State) SelectedAnnotation() (annotation.Annotation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current < 0 || s.current >= len(s.Project.Images) {
		return annotation.Annotation{}, false
	}
	anns := s.Project.Images[s.current].Annotations
	if s.selected < 0 || s.selected >= len(anns) {
		return annotation.Annotation{}, false
	}
	return anns[s.selected], true
}

// DeleteSelected removes the selected annotation and clears the selection.
func (s *State) DeleteSelected() {
	s.mu.Lock()
	if s.current < 0 || s.current >= len(s.Project.Images) || s.selected < 0 {
		s.mu.Unlock()
		return
	}
	entry := &s.Project.Images[s.current]
	entry.Annotations = annotation.Delete(entry.Annotations, s.selected)
	s.selected = -1
	anns := entry.Annotations
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventAnnotationsChanged, anns)
	s.Emit(EventSelectionChanged, -1)
}

// UpdateSelectedAPI writes new API details into the selected annotation.
func (s *State) UpdateSelectedAPI(api annotation.APIDetails) {
	s.mu.Lock()
	if s.current < 0 || s.current >= len(s.Project.Images) {
		s.mu.Unlock()
		return
	}
	anns := s.Project.Images[s.current].Annotations
	if s.selected < 0 || s.selected >= len(anns) {
		s.mu.Unlock()
		return
	}
	anns[s.selected].API = api
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventAnnotationsChanged, anns)
}

// Tool returns the active editing tool.
func (s *State) Tool() annotation.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tool
}

// SetTool changes the active editing tool.
func (s *State) SetTool(tool annotation.Tool) {
	s.mu.Lock()
	changed := tool != s.tool
	s.tool = tool
	s.mu.Unlock()

	if changed {
		s.Emit(EventToolChanged, tool)
	}
}

// EngineCallbacks wires this state into an annotation engine.
func (s *State) EngineCallbacks() annotation.Callbacks {
	return annotation.Callbacks{
		Annotations: s.Annotations,
		Replace:     s.ReplaceAnnotations,
		Selected:    s.Selected,
		Select:      s.Select,
		ImageSize:   s.ImageSize,
		Tool:        s.Tool,
		NewID:       func() string { return uuid.NewString() },
	}
}
