package editor

import "sync"

// Update describes a view change delivered to OnUpdate listeners.
type Update struct {
	// State is the view's state after the change.
	State State

	// DocChanged is true when the document text changed (as opposed to
	// cursor motion, selection, or reconfiguration).
	DocChanged bool
}

// UpdateFunc receives view updates.
type UpdateFunc func(u Update)

// View is the single live editing surface. Exactly one State is loaded
// at a time; the session layer swaps states on tab activation and reads
// the current one back when a tab loses focus.
type View struct {
	mu        sync.Mutex
	state     State
	config    ViewConfig
	dims      []Range
	listeners map[int]UpdateFunc
	nextID    int
	focused   bool
}

// NewView creates an empty unfocused view.
func NewView() *View {
	return &View{listeners: make(map[int]UpdateFunc)}
}

// Load replaces the view's document state and configuration in one
// step. Spotlight dim ranges are cleared; they belong to the outgoing
// document.
func (v *View) Load(s State, cfg ViewConfig) {
	v.mu.Lock()
	v.state = s
	v.config = cfg
	v.dims = nil
	v.mu.Unlock()
}

// State returns the current document state snapshot.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Config returns the active configuration record.
func (v *View) Config() ViewConfig {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.config
}

// Configure swaps the configuration record without touching the
// document state. Applying an identical record is a harmless no-op.
func (v *View) Configure(cfg ViewConfig) {
	v.mu.Lock()
	v.config = cfg
	v.mu.Unlock()
}

// SetDimRanges replaces the spotlight de-emphasis ranges.
func (v *View) SetDimRanges(dims []Range) {
	v.mu.Lock()
	v.dims = dims
	v.mu.Unlock()
}

// DimRanges returns the active de-emphasis ranges.
func (v *View) DimRanges() []Range {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dims
}

// Focus marks the view focused. Focusing an already-focused view does
// nothing observable.
func (v *View) Focus() {
	v.mu.Lock()
	v.focused = true
	v.mu.Unlock()
}

// HasFocus reports whether the view is focused.
func (v *View) HasFocus() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.focused
}

// OnUpdate registers fn for subsequent updates and returns a removal
// function.
func (v *View) OnUpdate(fn UpdateFunc) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.listeners, id)
		v.mu.Unlock()
	}
}

// Insert inserts text at the cursor.
func (v *View) Insert(text string) {
	v.apply(func(s State) State { return s.Insert(s.Cursor(), text) }, true)
}

// Delete removes the given range.
func (v *View) Delete(r Range) {
	v.apply(func(s State) State { return s.Delete(r) }, true)
}

// SetCursor moves the cursor.
func (v *View) SetCursor(offset int) {
	v.apply(func(s State) State { return s.WithCursor(offset) }, false)
}

// Select sets the selection.
func (v *View) Select(r Range) {
	v.apply(func(s State) State { return s.WithSelection(r) }, false)
}

// Undo steps the document back one revision.
func (v *View) Undo() {
	v.apply(State.Undo, true)
}

// Redo reverses the last undo.
func (v *View) Redo() {
	v.apply(State.Redo, true)
}

// apply runs a state transition and notifies listeners outside the
// lock. docChanged is reported as false when the transition turned out
// to be a no-op.
func (v *View) apply(fn func(State) State, docChanged bool) {
	v.mu.Lock()
	before := v.state.text
	v.state = fn(v.state)
	changed := docChanged && v.state.text != before
	update := Update{State: v.state, DocChanged: changed}
	listeners := make([]UpdateFunc, 0, len(v.listeners))
	for _, l := range v.listeners {
		listeners = append(listeners, l)
	}
	v.mu.Unlock()

	for _, l := range listeners {
		l(update)
	}
}
