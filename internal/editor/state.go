// Package editor models the editing widget consumed by the session
// layer: an immutable document State value (text, cursor, selection,
// undo history) and a View that owns exactly one live State at a time.
//
// The real rendering surface is outside this module; View is the
// in-process stand-in exposing the same capability set: load a state,
// read it back, dispatch effects, observe updates.
package editor

// Range is a half-open [Start, End) byte range.
type Range struct {
	Start int
	End   int
}

// Empty reports whether the range selects nothing.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// maxHistoryDepth bounds the undo stack per document state.
const maxHistoryDepth = 200

// revision is one undoable document version.
type revision struct {
	text   string
	cursor int
}

// State is an immutable snapshot of one document's editing state. All
// mutating methods return a new State; the receiver is never modified.
// Cross-cutting view configuration is deliberately not part of State:
// a stored snapshot must never resurrect stale settings.
type State struct {
	text      string
	cursor    int
	selection Range
	undo      []revision
	redo      []revision
}

// NewState creates a State holding text with the cursor at offset 0.
func NewState(text string) State {
	return State{text: text}
}

// Text returns the document text.
func (s State) Text() string { return s.text }

// Cursor returns the cursor byte offset.
func (s State) Cursor() int { return s.cursor }

// Selection returns the current selection (possibly empty).
func (s State) Selection() Range { return s.selection }

// Len returns the document length in bytes.
func (s State) Len() int { return len(s.text) }

// CanUndo reports whether an undo step exists.
func (s State) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether a redo step exists.
func (s State) CanRedo() bool { return len(s.redo) > 0 }

// WithCursor returns s with the cursor moved (clamped to the document)
// and the selection cleared. Cursor motion is not an undoable edit.
func (s State) WithCursor(offset int) State {
	s.cursor = clamp(offset, 0, len(s.text))
	s.selection = Range{}
	return s
}

// WithSelection returns s with the selection set (clamped) and the
// cursor at the selection head.
func (s State) WithSelection(r Range) State {
	r.Start = clamp(r.Start, 0, len(s.text))
	r.End = clamp(r.End, r.Start, len(s.text))
	s.selection = r
	s.cursor = r.End
	return s
}

// Insert returns s with text inserted at offset and the cursor placed
// after the insertion. The prior version is pushed onto the undo stack
// and the redo stack is cleared.
func (s State) Insert(offset int, text string) State {
	if text == "" {
		return s
	}
	offset = clamp(offset, 0, len(s.text))

	next := s.pushUndo()
	next.text = s.text[:offset] + text + s.text[offset:]
	next.cursor = offset + len(text)
	next.selection = Range{}
	return next
}

// Delete returns s with the range removed and the cursor at the cut
// point. Deleting an empty range is a no-op.
func (s State) Delete(r Range) State {
	r.Start = clamp(r.Start, 0, len(s.text))
	r.End = clamp(r.End, r.Start, len(s.text))
	if r.Empty() {
		return s
	}

	next := s.pushUndo()
	next.text = s.text[:r.Start] + s.text[r.End:]
	next.cursor = r.Start
	next.selection = Range{}
	return next
}

// Undo returns the previous document version, or s unchanged if the
// undo stack is empty.
func (s State) Undo() State {
	if len(s.undo) == 0 {
		return s
	}

	top := s.undo[len(s.undo)-1]
	next := s
	next.undo = s.undo[:len(s.undo)-1]
	next.redo = append(copyRevisions(s.redo), revision{text: s.text, cursor: s.cursor})
	next.text = top.text
	next.cursor = top.cursor
	next.selection = Range{}
	return next
}

// Redo reverses the most recent Undo, or returns s unchanged.
func (s State) Redo() State {
	if len(s.redo) == 0 {
		return s
	}

	top := s.redo[len(s.redo)-1]
	next := s
	next.redo = s.redo[:len(s.redo)-1]
	next.undo = append(copyRevisions(s.undo), revision{text: s.text, cursor: s.cursor})
	next.text = top.text
	next.cursor = top.cursor
	next.selection = Range{}
	return next
}

// pushUndo returns s with the current version pushed onto a copied undo
// stack and the redo stack cleared.
func (s State) pushUndo() State {
	undo := copyRevisions(s.undo)
	undo = append(undo, revision{text: s.text, cursor: s.cursor})
	if len(undo) > maxHistoryDepth {
		undo = undo[len(undo)-maxHistoryDepth:]
	}
	s.undo = undo
	s.redo = nil
	return s
}

// copyRevisions copies the stack so value-typed States never alias.
func copyRevisions(in []revision) []revision {
	if len(in) == 0 {
		return nil
	}
	out := make([]revision, len(in))
	copy(out, in)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
