package audio

import "sync"

// PlayState is the manager's lifecycle state.
type PlayState int

const (
	// StateUnloaded means no source has been loaded yet.
	StateUnloaded PlayState = iota

	// StateLoaded means a source is prepared but has never played.
	StateLoaded

	// StatePlaying means the background track is audible.
	StatePlaying

	// StatePaused means playback is halted and Toggle resumes it.
	StatePaused
)

// String returns the state name.
func (s PlayState) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Manager drives the background track through the selected backend.
// Loading is lazy: nothing touches the audio device until the first
// Toggle.
type Manager struct {
	mu            sync.Mutex
	backend       Backend
	state         PlayState
	defaultSource string
	source        string // resolved source, loaded or pending
}

// NewManager creates a manager over the chosen backend. defaultSource
// is the built-in track used when no user override is set.
func NewManager(b Backend, defaultSource string) *Manager {
	return &Manager{
		backend:       b,
		state:         StateUnloaded,
		defaultSource: defaultSource,
		source:        defaultSource,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() PlayState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Source returns the resolved source path.
func (m *Manager) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

// Toggle loads on first use, then flips Playing and Paused.
func (m *Manager) Toggle() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateUnloaded:
		if err := m.backend.Load(m.source); err != nil {
			return err
		}
		if err := m.backend.Play(); err != nil {
			return err
		}
		m.state = StatePlaying
	case StateLoaded, StatePaused:
		if err := m.backend.Play(); err != nil {
			return err
		}
		m.state = StatePlaying
	case StatePlaying:
		if err := m.backend.Pause(); err != nil {
			return err
		}
		m.state = StatePaused
	}
	return nil
}

// SwapSource switches the background track to path, or back to the
// built-in default when path is empty. If the resolved source equals
// the one already in use, playback continues untouched: repeated
// settings applies must never restart audio that did not change.
// A source that cannot be loaded falls back to the built-in default,
// keeping the prior play state; the load error is still returned so
// the caller can report it.
func (m *Manager) SwapSource(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	resolved := path
	if resolved == "" {
		resolved = m.defaultSource
	}
	if resolved == m.source {
		return nil
	}

	m.source = resolved
	if m.state == StateUnloaded {
		// Nothing loaded yet; the new source is picked up lazily.
		return nil
	}

	wasPlaying := m.state == StatePlaying
	err := m.backend.Load(resolved)
	if err != nil {
		// The previous source is already torn down. Fall back to the
		// built-in track so a bad settings value does not kill playback;
		// the caller still sees the load error.
		m.source = m.defaultSource
		if resolved == m.defaultSource || m.backend.Load(m.defaultSource) != nil {
			m.state = StateUnloaded
			return err
		}
	}
	if wasPlaying {
		if perr := m.backend.Play(); perr != nil {
			m.state = StateLoaded
			if err != nil {
				return err
			}
			return perr
		}
		m.state = StatePlaying
	} else {
		m.state = StateLoaded
	}
	return err
}

// Close releases the backend.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateUnloaded
	return m.backend.Close()
}
