package audio

import (
	"errors"
	"testing"
)

// stubBackend records the call sequence so tests can assert which
// operations a manager transition performed.
type stubBackend struct {
	calls   []string
	source  string
	playing bool
	failOn  map[string]bool
}

func (s *stubBackend) Load(path string) error {
	s.calls = append(s.calls, "load:"+path)
	if s.failOn[path] {
		s.source = ""
		s.playing = false
		return errors.New("load " + path + ": no such file")
	}
	s.source = path
	s.playing = false
	return nil
}

func (s *stubBackend) Play() error {
	s.calls = append(s.calls, "play")
	s.playing = true
	return nil
}

func (s *stubBackend) Pause() error {
	s.calls = append(s.calls, "pause")
	s.playing = false
	return nil
}

func (s *stubBackend) Playing() bool { return s.playing }
func (s *stubBackend) Source() string {
	return s.source
}

func (s *stubBackend) Close() error {
	s.calls = append(s.calls, "close")
	return nil
}

func TestToggleLifecycle(t *testing.T) {
	b := &stubBackend{}
	m := NewManager(b, "default.mp3")

	if got := m.State(); got != StateUnloaded {
		t.Fatalf("initial state = %v, want unloaded", got)
	}

	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if got := m.State(); got != StatePlaying {
		t.Fatalf("after first toggle = %v, want playing", got)
	}

	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if got := m.State(); got != StatePaused {
		t.Fatalf("after second toggle = %v, want paused", got)
	}

	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if got := m.State(); got != StatePlaying {
		t.Fatalf("after third toggle = %v, want playing", got)
	}

	want := []string{"load:default.mp3", "play", "pause", "play"}
	if len(b.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", b.calls, want)
	}
	for i := range want {
		if b.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", b.calls, want)
		}
	}
}

func TestLoadIsLazy(t *testing.T) {
	b := &stubBackend{}
	m := NewManager(b, "default.mp3")
	if err := m.SwapSource("other.mp3"); err != nil {
		t.Fatal(err)
	}
	if len(b.calls) != 0 {
		t.Fatalf("swap before first toggle touched backend: %v", b.calls)
	}
	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if b.calls[0] != "load:other.mp3" {
		t.Fatalf("first load = %q, want pending swap target", b.calls[0])
	}
}

func TestSwapSourceIdenticalIsNoOp(t *testing.T) {
	b := &stubBackend{}
	m := NewManager(b, "default.mp3")
	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	before := len(b.calls)

	// Re-applying the same resolved source must not interrupt playback.
	if err := m.SwapSource("default.mp3"); err != nil {
		t.Fatal(err)
	}
	if err := m.SwapSource(""); err != nil {
		t.Fatal(err)
	}

	if len(b.calls) != before {
		t.Fatalf("identical swap touched backend: %v", b.calls[before:])
	}
	if got := m.State(); got != StatePlaying {
		t.Fatalf("state = %v, want playing", got)
	}
}

func TestSwapSourceWhilePlayingReloadsAndResumes(t *testing.T) {
	b := &stubBackend{}
	m := NewManager(b, "default.mp3")
	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if err := m.SwapSource("rain.mp3"); err != nil {
		t.Fatal(err)
	}
	if got := m.State(); got != StatePlaying {
		t.Fatalf("state = %v, want playing", got)
	}
	tail := b.calls[len(b.calls)-2:]
	if tail[0] != "load:rain.mp3" || tail[1] != "play" {
		t.Fatalf("tail calls = %v, want load then play", tail)
	}
}

func TestSwapSourceWhilePausedStaysLoaded(t *testing.T) {
	b := &stubBackend{}
	m := NewManager(b, "default.mp3")
	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if err := m.SwapSource("rain.mp3"); err != nil {
		t.Fatal(err)
	}
	if got := m.State(); got != StateLoaded {
		t.Fatalf("state = %v, want loaded", got)
	}
	if b.calls[len(b.calls)-1] != "load:rain.mp3" {
		t.Fatalf("last call = %q, want load", b.calls[len(b.calls)-1])
	}
}

func TestSwapSourceEmptyResolvesToDefault(t *testing.T) {
	b := &stubBackend{}
	m := NewManager(b, "default.mp3")
	if err := m.SwapSource("rain.mp3"); err != nil {
		t.Fatal(err)
	}
	if err := m.SwapSource(""); err != nil {
		t.Fatal(err)
	}
	if got := m.Source(); got != "default.mp3" {
		t.Fatalf("source = %q, want default.mp3", got)
	}
}

func TestSwapSourceLoadFailureFallsBackToDefault(t *testing.T) {
	b := &stubBackend{failOn: map[string]bool{"missing.mp3": true}}
	m := NewManager(b, "default.mp3")
	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if err := m.SwapSource("rain.mp3"); err != nil {
		t.Fatal(err)
	}

	// The broken path is reported, but the built-in track takes over and
	// playback keeps going.
	if err := m.SwapSource("missing.mp3"); err == nil {
		t.Fatal("want load error")
	}
	if got := m.State(); got != StatePlaying {
		t.Fatalf("state after failed swap = %v, want playing", got)
	}
	if got := m.Source(); got != "default.mp3" {
		t.Fatalf("source = %q, want default.mp3", got)
	}
	if !b.playing || b.source != "default.mp3" {
		t.Fatalf("backend source = %q playing = %v, want default audible", b.source, b.playing)
	}

	tail := b.calls[len(b.calls)-3:]
	if tail[0] != "load:missing.mp3" || tail[1] != "load:default.mp3" || tail[2] != "play" {
		t.Fatalf("tail calls = %v, want failed load, default load, play", tail)
	}
}

func TestSwapSourceLoadFailurePausedStaysLoaded(t *testing.T) {
	b := &stubBackend{failOn: map[string]bool{"missing.mp3": true}}
	m := NewManager(b, "default.mp3")
	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}

	if err := m.SwapSource("missing.mp3"); err == nil {
		t.Fatal("want load error")
	}
	if got := m.State(); got != StateLoaded {
		t.Fatalf("state = %v, want loaded", got)
	}
	if b.playing {
		t.Fatal("paused swap must not start playback")
	}
}

func TestSwapSourceDefaultUnloadableUnloads(t *testing.T) {
	b := &stubBackend{failOn: map[string]bool{"missing.mp3": true, "default.mp3": true}}
	m := NewManager(b, "default.mp3")
	if err := m.SwapSource("rain.mp3"); err != nil {
		t.Fatal(err)
	}
	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}

	if err := m.SwapSource("missing.mp3"); err == nil {
		t.Fatal("want load error")
	}
	if got := m.State(); got != StateUnloaded {
		t.Fatalf("state = %v, want unloaded", got)
	}

	// Recovery: the next toggle retries the default from scratch.
	b.failOn = nil
	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if got := m.State(); got != StatePlaying {
		t.Fatalf("state = %v, want playing", got)
	}
	if got := m.Source(); got != "default.mp3" {
		t.Fatalf("source = %q, want default.mp3", got)
	}
}

func TestCloseResets(t *testing.T) {
	b := &stubBackend{}
	m := NewManager(b, "default.mp3")
	if err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if got := m.State(); got != StateUnloaded {
		t.Fatalf("state after close = %v, want unloaded", got)
	}
}
