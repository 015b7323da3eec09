package session

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/inkstone/internal/editor"
	"github.com/dshills/inkstone/internal/fileio"
	"github.com/dshills/inkstone/internal/outline"
)

// Tab is one open document in the session.
//
// The stored editor state is a snapshot: while the tab is active the
// live view holds the authoritative state, and the manager writes it
// back here when the tab loses focus. Cross-cutting view configuration
// is never part of the snapshot.
type Tab struct {
	// ID identifies the tab for the lifetime of the session.
	ID string

	// Path is the absolute file path, empty for untitled tabs.
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	// Encoding and LineEnding record how the file is written back.
	Encoding   fileio.Encoding
	LineEnding fileio.LineEnding

	// state is the stored document snapshot, guarded by the manager.
	state editor.State

	dirty atomic.Bool

	hmu      sync.Mutex
	headings []outline.Heading
}

// newTab creates a tab from a decoded document.
func newTab(path string, doc fileio.Document) *Tab {
	name := "Untitled"
	if path != "" {
		name = filepath.Base(path)
	}
	t := &Tab{
		ID:         uuid.NewString(),
		Path:       path,
		Name:       name,
		Encoding:   doc.Encoding,
		LineEnding: doc.LineEnding,
		state:      editor.NewState(doc.Content),
	}
	t.headings = outline.Extract(doc.Content)
	return t
}

// newUntitledTab creates an empty tab with no backing file.
func newUntitledTab() *Tab {
	return newTab("", fileio.Document{
		Encoding:   fileio.EncodingUTF8,
		LineEnding: fileio.LineEndingLF,
	})
}

// Untitled reports whether the tab has no backing file.
func (t *Tab) Untitled() bool {
	return t.Path == ""
}

// Dirty reports whether the tab has unsaved changes.
func (t *Tab) Dirty() bool {
	return t.dirty.Load()
}

// setDirty sets the unsaved-changes flag.
func (t *Tab) setDirty(dirty bool) {
	t.dirty.Store(dirty)
}

// Headings returns the cached outline for this tab.
func (t *Tab) Headings() []outline.Heading {
	t.hmu.Lock()
	defer t.hmu.Unlock()
	return t.headings
}

// setHeadings replaces the cached outline wholesale.
func (t *Tab) setHeadings(hs []outline.Heading) {
	t.hmu.Lock()
	t.headings = hs
	t.hmu.Unlock()
}

// SetCollapsed toggles the collapse flag of the heading at anchor.
// Unknown anchors are ignored.
func (t *Tab) SetCollapsed(anchor int, collapsed bool) {
	t.hmu.Lock()
	defer t.hmu.Unlock()
	for i := range t.headings {
		if t.headings[i].Anchor == anchor {
			t.headings[i].Collapsed = collapsed
			return
		}
	}
}
