package app

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/inkstone/internal/audio"
	"github.com/dshills/inkstone/internal/editor"
	"github.com/dshills/inkstone/internal/event"
	"github.com/dshills/inkstone/internal/outline"
	"github.com/dshills/inkstone/internal/session"
	"github.com/dshills/inkstone/internal/settings"
	"github.com/dshills/inkstone/internal/theme"
)

// Sound effect names used with the effect player.
const (
	EffectTyping = "typing"
	EffectUI     = "ui"
)

// SoundEffects plays short UI sounds. *audio.EffectSet satisfies it.
type SoundEffects interface {
	Play(name string)
	SetEnabled(name string, on bool)
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the application logger.
func WithLogger(l *Logger) Option {
	return func(a *Application) { a.logger = l }
}

// WithStore sets the settings store.
func WithStore(s *settings.Store) Option {
	return func(a *Application) { a.store = s }
}

// WithBus sets the event bus.
func WithBus(b event.Bus) Option {
	return func(a *Application) { a.bus = b }
}

// WithAudio sets the background audio manager. Without one, audio
// settings still persist but nothing plays.
func WithAudio(m *audio.Manager) Option {
	return func(a *Application) { a.audio = m }
}

// WithEffects sets the UI sound effect player.
func WithEffects(e SoundEffects) Option {
	return func(a *Application) { a.effects = e }
}

// WithConfirm sets the dirty-close confirmation callback.
func WithConfirm(fn session.ConfirmFunc) Option {
	return func(a *Application) { a.confirm = fn }
}

// WithRender sets the re-render callback.
func WithRender(fn func()) Option {
	return func(a *Application) { a.render = fn }
}

// WithFileStore sets the session file store.
func WithFileStore(fs session.FileStore) Option {
	return func(a *Application) { a.fileStore = fs }
}

// Application owns the live view, the session, the settings store, the
// event bus, and the audio subsystem, and runs the task loop that
// serializes every state mutation.
type Application struct {
	logger  *Logger
	bus     event.Bus
	store   *settings.Store
	view    *editor.View
	session *session.Manager
	audio   *audio.Manager
	effects SoundEffects

	confirm   session.ConfirmFunc
	render    func()
	fileStore session.FileStore

	tasks   chan func()
	quit    chan struct{}
	running atomic.Bool

	// outlinePending coalesces view updates into one deferred refresh.
	outlinePending atomic.Bool

	spotlightOn atomic.Bool

	mu           sync.Mutex
	background   string // background image path, "" for none
	notice       string // pending user-facing notice, "" for none
	lastSnapshot settings.Settings

	bridge *settings.Watcher
}

// New creates an Application. The session starts empty; call Bootstrap
// to restore the previous session.
func New(opts ...Option) *Application {
	a := &Application{
		logger: NewLogger(LogLevelInfo, nil),
		tasks:  make(chan func(), 128),
		quit:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.bus == nil {
		a.bus = event.NewBus()
	}
	if a.store == nil {
		a.store = settings.NewMemory()
	}

	a.view = editor.NewView()

	sessOpts := []session.Option{
		session.WithLogger(a.logger.WithComponent("session")),
		session.WithPersist(a.persistSession),
		session.WithRender(a.requestRender),
	}
	if a.confirm != nil {
		sessOpts = append(sessOpts, session.WithConfirm(a.confirm))
	}
	if a.fileStore != nil {
		sessOpts = append(sessOpts, session.WithFileStore(a.fileStore))
	}
	a.session = session.NewManager(a.view, sessOpts...)

	// Every view update schedules one deferred outline/spotlight refresh.
	a.view.OnUpdate(func(u editor.Update) {
		if u.DocChanged && a.effects != nil {
			a.effects.Play(EffectTyping)
		}
		a.scheduleRefresh()
	})

	a.subscribeSettings()
	a.applyAppearance()

	a.mu.Lock()
	a.lastSnapshot = a.store.Snapshot()
	a.mu.Unlock()

	return a
}

// Session returns the tab/session manager.
func (a *Application) Session() *session.Manager {
	return a.session
}

// View returns the live editor view.
func (a *Application) View() *editor.View {
	return a.view
}

// Bus returns the event bus.
func (a *Application) Bus() event.Bus {
	return a.bus
}

// Store returns the settings store.
func (a *Application) Store() *settings.Store {
	return a.store
}

// Background returns the active background image path ("" for none).
func (a *Application) Background() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.background
}

// Bootstrap restores the previous session from the settings record and
// guarantees at least one open tab.
func (a *Application) Bootstrap() {
	for _, path := range a.store.Snapshot().SessionPaths {
		if _, err := a.session.OpenOrSwitch(path); err != nil {
			// The file may have moved since last session; skip it.
			a.logger.Warn("restore %s: %v", path, err)
		}
	}
	if a.session.Count() == 0 {
		a.session.CreateBlank()
	}
}

// SpotlightEnabled reports whether focus dimming is on.
func (a *Application) SpotlightEnabled() bool {
	return a.spotlightOn.Load()
}

// ToggleSpotlight flips focus dimming and refreshes the dim ranges.
func (a *Application) ToggleSpotlight() {
	on := !a.spotlightOn.Load()
	a.spotlightOn.Store(on)
	a.refreshSpotlight()
	a.requestRender()
}

// ToggleAudio starts or pauses the background track.
func (a *Application) ToggleAudio() {
	if a.audio == nil {
		return
	}
	if err := a.audio.Toggle(); err != nil {
		a.logger.Warn("audio toggle: %v", err)
	}
}

// CycleFont advances the built-in font cycle and persists the index.
// An explicit user font family, if set, still wins; the cycle becomes
// visible once that override is cleared.
func (a *Application) CycleFont() {
	rec := a.store.Snapshot()
	next := (rec.FontIndex + 1) % len(theme.Families())
	if err := a.store.Set(settings.KeyFontIndex, next); err != nil {
		a.logger.Warn("cycle font: %v", err)
		return
	}
	a.saveStore()
	a.applyAppearance()
	a.requestRender()
}

// persistSession records the open paths in the settings store.
func (a *Application) persistSession(paths []string) {
	if err := a.store.Set(settings.KeySessionPaths, paths); err != nil {
		a.logger.Warn("persist session: %v", err)
		return
	}
	a.saveStore()
	a.bus.PublishFrom("session", TopicSessionChanged, paths)
}

func (a *Application) saveStore() {
	if err := a.store.Save(); err != nil {
		a.logger.Warn("save settings: %v", err)
	}
	a.mu.Lock()
	a.lastSnapshot = a.store.Snapshot()
	a.mu.Unlock()
}

// applyAppearance rebuilds the shared view configuration from the
// current settings record and applies it in one step.
func (a *Application) applyAppearance() {
	rec := a.store.Snapshot()
	family := theme.Resolve(rec.FontFamily, rec.FontIndex)

	a.session.SetViewConfig(editor.ViewConfig{
		Dark:       rec.DarkMode,
		FontFamily: family.Name,
		FontSize:   rec.FontSize,
		WrapWidth:  rec.WrapWidth,
		LineHeight: rec.LineHeight,
		LineBreak:  rec.LineBreak,
		WordBreak:  rec.WordBreak,
		Highlight:  true,
		Spotlight:  a.spotlightOn.Load(),
	})

	a.mu.Lock()
	if rec.BackgroundImagePath != nil {
		a.background = *rec.BackgroundImagePath
	} else {
		a.background = ""
	}
	a.mu.Unlock()
}

// refreshSpotlight recomputes the dim ranges for the live view.
func (a *Application) refreshSpotlight() {
	if !a.spotlightOn.Load() {
		a.view.SetDimRanges(nil)
		return
	}
	s := a.view.State()
	ranges := outline.Spotlight(s.Text(), s.Cursor())
	dims := make([]editor.Range, len(ranges))
	for i, r := range ranges {
		dims[i] = editor.Range{Start: r.Start, End: r.End}
	}
	a.view.SetDimRanges(dims)
}

func (a *Application) requestRender() {
	if a.render != nil {
		a.render()
	}
}

// Close releases long-lived resources.
func (a *Application) Close() {
	if a.bridge != nil {
		_ = a.bridge.Close()
	}
	if a.audio != nil {
		_ = a.audio.Close()
	}
}
