package glyph

import (
	"context"
	"fmt"
	"sync"

	"github.com/gogpu/handwrite"
)

// Entry names a font file to load into a Library.
type Entry struct {
	// Name is the key the font is selected by.
	Name string

	// Path is the font file. An empty path selects the embedded Go font.
	Path string

	// Label is the display name. Defaults to Name.
	Label string
}

// Status reports the load result of one library entry.
type Status struct {
	Name   string
	Label  string
	Path   string
	Family string
	Err    error
}

// Loaded reports whether the entry is usable.
func (s Status) Loaded() bool { return s.Err == nil }

// A Library is a collection of fonts selectable by name. It implements
// handwrite.FontResolver.
//
// Fonts that failed to load stay in the library as failed entries: Lookup
// reports them as unavailable and Available omits them. The first font that
// loaded is the default, returned for the empty name.
//
// Library is safe for concurrent use.
type Library struct {
	mu      sync.RWMutex
	entries []*libEntry
	byName  map[string]*libEntry
}

type libEntry struct {
	status Status
	src    *Source
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{byName: make(map[string]*libEntry)}
}

// LoadLibrary loads every entry concurrently and returns the library in
// entry order. Failures are recorded, never returned: a library with no
// loadable font simply has no default.
func LoadLibrary(ctx context.Context, entries []Entry) *Library {
	type result struct {
		src *Source
		err error
	}
	results := make([]result, len(entries))

	var wg sync.WaitGroup
	for i, e := range entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return
			}
			if e.Path == "" {
				results[i].src = Default()
				return
			}
			results[i].src, results[i].err = LoadFile(e.Path)
		}()
	}
	wg.Wait()

	lib := NewLibrary()
	for i, e := range entries {
		if err := results[i].err; err != nil {
			lib.fail(e, err)
			continue
		}
		lib.add(e, results[i].src)
	}
	return lib
}

// Add adds a loaded font under name, replacing any entry with that name.
func (l *Library) Add(name string, src *Source) {
	if src == nil {
		l.fail(Entry{Name: name}, ErrEmptyFontData)
		return
	}
	l.add(Entry{Name: name}, src)
}

func (l *Library) add(e Entry, src *Source) {
	st := newStatus(e)
	st.Family = src.Name()
	l.put(&libEntry{status: st, src: src})

	handwrite.Logger().Debug("glyph: font loaded",
		"name", e.Name, "family", st.Family, "path", e.Path)
}

func (l *Library) fail(e Entry, err error) {
	st := newStatus(e)
	st.Err = &LoadError{Name: e.Name, Path: e.Path, Err: err}
	l.put(&libEntry{status: st})

	handwrite.Logger().Warn("glyph: font failed to load",
		"name", e.Name, "path", e.Path, "err", err)
}

func newStatus(e Entry) Status {
	label := e.Label
	if label == "" {
		label = e.Name
	}
	return Status{Name: e.Name, Label: label, Path: e.Path}
}

func (l *Library) put(le *libEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	name := le.status.Name
	if old, ok := l.byName[name]; ok {
		for i, x := range l.entries {
			if x == old {
				l.entries[i] = le
				break
			}
		}
	} else {
		l.entries = append(l.entries, le)
	}
	l.byName[name] = le
}

// Lookup implements handwrite.FontResolver. The empty name selects the
// default font. Unknown and failed fonts return an error matching
// handwrite.ErrFontUnavailable, as do sizes rejected by
// handwrite.ValidFontSize.
func (l *Library) Lookup(name string, size float64) (handwrite.FontProvider, error) {
	if !handwrite.ValidFontSize(size) {
		return nil, fmt.Errorf("lookup %q: %w: %v: %w", name, ErrInvalidSize, size, handwrite.ErrFontUnavailable)
	}
	src, err := l.Source(name)
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

// Source returns the loaded font for name. The empty name selects the
// default font.
func (l *Library) Source(name string) (*Source, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if name == "" {
		for _, le := range l.entries {
			if le.src != nil {
				return le.src, nil
			}
		}
		return nil, fmt.Errorf("%w: no default font: %w", ErrUnknownFont, handwrite.ErrFontUnavailable)
	}

	le, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownFont, name, handwrite.ErrFontUnavailable)
	}
	if le.src == nil {
		return nil, le.status.Err
	}
	return le.src, nil
}

// Default returns the name of the default font, or "" when no font loaded.
func (l *Library) Default() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, le := range l.entries {
		if le.src != nil {
			return le.status.Name
		}
	}
	return ""
}

// Available returns the names of the fonts that loaded, in insertion order.
func (l *Library) Available() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var names []string
	for _, le := range l.entries {
		if le.src != nil {
			names = append(names, le.status.Name)
		}
	}
	return names
}

// Statuses returns the load status of every entry, in insertion order.
func (l *Library) Statuses() []Status {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Status, len(l.entries))
	for i, le := range l.entries {
		out[i] = le.status
	}
	return out
}

var _ handwrite.FontResolver = (*Library)(nil)
