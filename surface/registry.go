// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"sort"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encoder writes the current state of a canvas to w.
type Encoder func(w io.Writer, c *Canvas) error

// RegistryEntry represents a registered output format.
type RegistryEntry struct {
	// Name is the unique identifier for this format, e.g. "png".
	Name string

	// Priority orders List (higher first).
	Priority int

	// Encode writes the canvas.
	Encode Encoder
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages canvas output formats.
//
// Example registration:
//
//	func init() {
//	    surface.Register("svg", 20, encodeSVG)
//	}
//
// Example usage:
//
//	err := surface.Encode("png", w, canvas)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Encode.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a format to the global registry.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, enc Encoder) {
	globalRegistry.Register(name, priority, enc)
}

// Unregister removes a format from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered format names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Get returns information about a specific format.
func Get(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// Encode writes the canvas to w in the named format.
func Encode(name string, w io.Writer, c *Canvas) error {
	return globalRegistry.Encode(name, w, c)
}

// Register adds a format to this registry.
func (r *Registry) Register(name string, priority int, enc Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}
	r.entries[name] = &RegistryEntry{
		Name:     name,
		Priority: priority,
		Encode:   enc,
	}
}

// Unregister removes a format from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered format names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames()
}

// Get returns information about a specific format.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent modification
	entryCopy := *entry
	return &entryCopy, true
}

// Encode writes the canvas to w in the named format.
func (r *Registry) Encode(name string, w io.Writer, c *Canvas) error {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return &FormatNotFoundError{Name: name}
	}
	if err := entry.Encode(w, c); err != nil {
		return fmt.Errorf("surface: encode %s: %w", name, err)
	}
	return nil
}

// sortedNames returns format names sorted by priority (highest first), then
// by name. Must be called with lock held.
func (r *Registry) sortedNames() []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Errors.
var (
	// ErrEmptyCanvas is returned by encoders that need at least one segment.
	ErrEmptyCanvas = errors.New("surface: nothing to encode")
)

// FormatNotFoundError indicates a named format is not registered.
type FormatNotFoundError struct {
	Name string
}

func (e *FormatNotFoundError) Error() string {
	return "surface: format not found: " + e.Name
}

// Preview size used by the "text" format.
const (
	textCols = 80
	textRows = 12
)

// init registers the built-in formats.
func init() {
	Register("png", 30, func(w io.Writer, c *Canvas) error {
		return png.Encode(w, c.Render())
	})
	Register("tiff", 20, func(w io.Writer, c *Canvas) error {
		return tiff.Encode(w, c.Render(), &tiff.Options{Compression: tiff.Deflate})
	})
	Register("bmp", 10, func(w io.Writer, c *Canvas) error {
		return bmp.Encode(w, c.Render())
	})
	Register("text", 0, func(w io.Writer, c *Canvas) error {
		if len(c.Strokes()) == 0 {
			return ErrEmptyCanvas
		}
		_, err := io.WriteString(w, c.Preview(textCols, textRows)+"\n")
		return err
	})
}
