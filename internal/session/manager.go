// Package session owns the ordered set of open tabs and the single live
// editor view. Exactly one tab is active; activation captures the view's
// state back into the outgoing tab, then loads the incoming tab's stored
// snapshot composed with the current shared view configuration.
package session

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dshills/inkstone/internal/editor"
	"github.com/dshills/inkstone/internal/fileio"
	"github.com/dshills/inkstone/internal/outline"
)

// FileStore reads and writes document files. The default implementation
// is the encoding-aware disk store; tests substitute an in-memory fake.
type FileStore interface {
	Read(path string) (fileio.Document, error)
	Write(path, content string, enc fileio.Encoding, le fileio.LineEnding) error
}

// DiskStore is the on-disk FileStore.
type DiskStore struct{}

// Read loads and decodes the file at path.
func (DiskStore) Read(path string) (fileio.Document, error) {
	return fileio.Read(path)
}

// Write encodes and atomically replaces the file at path.
func (DiskStore) Write(path, content string, enc fileio.Encoding, le fileio.LineEnding) error {
	return fileio.Write(path, content, enc, le)
}

// Decision is the user's answer to a dirty-close confirmation.
type Decision int

const (
	// DecisionCancel keeps the tab open with its changes intact.
	DecisionCancel Decision = iota

	// DecisionDiscard closes the tab, losing unsaved changes.
	DecisionDiscard
)

// ConfirmFunc asks the user whether to discard a dirty tab.
type ConfirmFunc func(t *Tab) Decision

// PersistFunc receives the ordered open file paths after every
// state-affecting operation. Untitled tabs are excluded.
type PersistFunc func(paths []string)

// Logger is the subset of the application logger the session uses.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Option configures a Manager.
type Option func(*Manager)

// WithFileStore sets the file store.
func WithFileStore(fs FileStore) Option {
	return func(m *Manager) { m.files = fs }
}

// WithConfirm sets the dirty-close confirmation callback. Without one,
// closing a dirty tab is refused.
func WithConfirm(fn ConfirmFunc) Option {
	return func(m *Manager) { m.confirm = fn }
}

// WithPersist sets the session persistence callback.
func WithPersist(fn PersistFunc) Option {
	return func(m *Manager) { m.persist = fn }
}

// WithRender sets the re-render callback invoked after every
// state-affecting operation.
func WithRender(fn func()) Option {
	return func(m *Manager) { m.render = fn }
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// Manager coordinates tabs, the live view, and session persistence.
type Manager struct {
	mu     sync.Mutex
	tabs   []*Tab
	active int // index into tabs, -1 when empty
	view   *editor.View
	style  editor.ViewConfig

	files   FileStore
	confirm ConfirmFunc
	persist PersistFunc
	render  func()
	logger  Logger
}

// NewManager creates a manager over the given live view. The session
// starts empty; callers open files or create a blank tab next.
func NewManager(view *editor.View, opts ...Option) *Manager {
	m := &Manager{
		view:   view,
		active: -1,
		files:  DiskStore{},
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}

	// Document edits on the live view dirty the active tab.
	view.OnUpdate(func(u editor.Update) {
		if !u.DocChanged {
			return
		}
		m.mu.Lock()
		if m.active >= 0 {
			m.tabs[m.active].setDirty(true)
		}
		m.mu.Unlock()
	})

	return m
}

// View returns the live editor view.
func (m *Manager) View() *editor.View {
	return m.view
}

// Tabs returns the open tabs in order.
func (m *Manager) Tabs() []*Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Tab, len(m.tabs))
	copy(out, m.tabs)
	return out
}

// Active returns the active tab, or nil when the session is empty.
func (m *Manager) Active() *Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active < 0 {
		return nil
	}
	return m.tabs[m.active]
}

// Count returns the number of open tabs.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tabs)
}

// OpenOrSwitch opens the file at path in a new tab, or activates the
// existing tab when the file is already open. A read failure leaves the
// tab list unchanged.
func (m *Manager) OpenOrSwitch(path string) (*Tab, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	m.mu.Lock()
	for i, t := range m.tabs {
		if t.Path == abs {
			changed := m.activateLocked(i)
			m.mu.Unlock()
			// Opening the already-active file is a no-op.
			if changed {
				m.afterChange()
			}
			return t, nil
		}
	}
	m.mu.Unlock()

	doc, err := m.files.Read(abs)
	if err != nil {
		m.logger.Warn("open %s: %v", abs, err)
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}

	t := newTab(abs, doc)

	m.mu.Lock()
	m.tabs = append(m.tabs, t)
	m.activateLocked(len(m.tabs) - 1)
	m.mu.Unlock()

	m.logger.Info("opened %s", abs)
	m.afterChange()
	return t, nil
}

// CreateBlank appends a new untitled tab and activates it.
func (m *Manager) CreateBlank() *Tab {
	t := newUntitledTab()

	m.mu.Lock()
	m.tabs = append(m.tabs, t)
	m.activateLocked(len(m.tabs) - 1)
	m.mu.Unlock()

	m.afterChange()
	return t
}

// Activate makes t the active tab. Activating the already-active tab
// leaves the view untouched.
func (m *Manager) Activate(t *Tab) error {
	m.mu.Lock()
	i := m.indexLocked(t)
	if i < 0 {
		m.mu.Unlock()
		return ErrTabNotFound
	}
	changed := m.activateLocked(i)
	m.mu.Unlock()

	if changed {
		m.afterChange()
	}
	return nil
}

// Cycle activates the neighbor of the active tab, wrapping at the ends.
// delta is +1 for the next tab and -1 for the previous.
func (m *Manager) Cycle(delta int) {
	m.mu.Lock()
	if len(m.tabs) < 2 || m.active < 0 {
		m.mu.Unlock()
		return
	}
	n := len(m.tabs)
	i := ((m.active+delta)%n + n) % n
	m.activateLocked(i)
	m.mu.Unlock()

	m.afterChange()
}

// Close removes t from the session. Dirty tabs require confirmation;
// a declined confirmation returns ErrCancelled with nothing changed.
// Closing the active tab activates its left neighbor; closing the last
// tab leaves a fresh blank one.
func (m *Manager) Close(t *Tab) error {
	if t.Dirty() {
		if m.confirm == nil || m.confirm(t) != DecisionDiscard {
			return ErrCancelled
		}
	}

	m.mu.Lock()
	i := m.indexLocked(t)
	if i < 0 {
		m.mu.Unlock()
		return ErrTabNotFound
	}

	wasActive := i == m.active
	m.tabs = append(m.tabs[:i], m.tabs[i+1:]...)

	switch {
	case len(m.tabs) == 0:
		m.active = -1
		blank := newUntitledTab()
		m.tabs = append(m.tabs, blank)
		m.loadLocked(0)
	case wasActive:
		next := i - 1
		if next < 0 {
			next = 0
		}
		m.loadLocked(next)
	case i < m.active:
		m.active--
	}
	m.mu.Unlock()

	m.afterChange()
	return nil
}

// Save writes t's current content to its file. For the active tab the
// live view state is captured first. Untitled tabs return ErrNoPath.
func (m *Manager) Save(t *Tab) error {
	if t.Untitled() {
		return ErrNoPath
	}
	return m.saveTo(t, t.Path)
}

// SaveAs writes t's current content to path and rebinds the tab to it.
func (m *Manager) SaveAs(t *Tab, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return m.saveTo(t, abs)
}

func (m *Manager) saveTo(t *Tab, path string) error {
	m.mu.Lock()
	i := m.indexLocked(t)
	if i < 0 {
		m.mu.Unlock()
		return ErrTabNotFound
	}
	if i == m.active {
		t.state = m.view.State()
	}
	content := t.state.Text()
	m.mu.Unlock()

	if err := m.files.Write(path, content, t.Encoding, t.LineEnding); err != nil {
		m.logger.Error("save %s: %v", path, err)
		return fmt.Errorf("save %s: %w", path, err)
	}

	m.mu.Lock()
	t.Path = path
	t.Name = filepath.Base(path)
	m.mu.Unlock()

	t.setDirty(false)
	t.setHeadings(outline.Reconcile(t.Headings(), outline.Extract(content)))

	m.logger.Info("saved %s", path)
	m.afterChange()
	return nil
}

// SetViewConfig replaces the shared cross-cutting view configuration.
// It applies to the live view immediately and, because tab snapshots
// never carry configuration, to every other tab on its next activation.
func (m *Manager) SetViewConfig(cfg editor.ViewConfig) {
	m.mu.Lock()
	m.style = cfg
	m.mu.Unlock()
	m.view.Configure(cfg)
}

// ViewConfig returns the shared view configuration.
func (m *Manager) ViewConfig() editor.ViewConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.style
}

// RefreshOutline re-extracts the active tab's headings from the live
// view, carrying collapse state forward, and replaces the cache.
func (m *Manager) RefreshOutline() {
	t := m.Active()
	if t == nil {
		return
	}
	next := outline.Extract(m.view.State().Text())
	t.setHeadings(outline.Reconcile(t.Headings(), next))
}

// SessionPaths returns the ordered open file paths, untitled excluded.
func (m *Manager) SessionPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionPathsLocked()
}

func (m *Manager) sessionPathsLocked() []string {
	var paths []string
	for _, t := range m.tabs {
		if !t.Untitled() {
			paths = append(paths, t.Path)
		}
	}
	return paths
}

// indexLocked returns t's position, or -1.
func (m *Manager) indexLocked(t *Tab) int {
	for i, tab := range m.tabs {
		if tab == t {
			return i
		}
	}
	return -1
}

// activateLocked switches the active tab to index i, capturing the
// outgoing view state first. Returns false when i is already active.
func (m *Manager) activateLocked(i int) bool {
	if i == m.active {
		return false
	}
	if m.active >= 0 {
		m.tabs[m.active].state = m.view.State()
	}
	m.loadLocked(i)
	return true
}

// loadLocked makes index i active without capturing the outgoing state.
func (m *Manager) loadLocked(i int) {
	m.active = i
	m.view.Load(m.tabs[i].state, m.style)
}

// afterChange persists the session and triggers a re-render. Called
// without the lock held.
func (m *Manager) afterChange() {
	if m.persist != nil {
		m.persist(m.SessionPaths())
	}
	if m.render != nil {
		m.render()
	}
}
