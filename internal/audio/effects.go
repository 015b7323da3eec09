package audio

import (
	"fmt"
	"io"
	"os"
	"sync"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// NewContext creates the shared playback context. Call once per
// process; ebiten allows a single live context.
func NewContext() *eaudio.Context {
	return eaudio.NewContext(sampleRate)
}

// NewBackend selects a playback strategy. constrained chooses the
// decoded-buffer strategy for environments whose audio node cannot
// pause in place; everything else streams.
func NewBackend(ctx *eaudio.Context, constrained bool) Backend {
	if constrained {
		return NewBufferBackend(ctx)
	}
	return NewStreamBackend(ctx)
}

// EffectSet holds short, pre-decoded UI sounds. Each trigger plays a
// one-shot player over the shared PCM, so rapid typing overlaps
// naturally instead of cutting itself off.
type EffectSet struct {
	mu      sync.Mutex
	ctx     *eaudio.Context
	pcm     map[string][]byte
	enabled map[string]bool
}

// NewEffectSet creates an empty effect set on ctx.
func NewEffectSet(ctx *eaudio.Context) *EffectSet {
	return &EffectSet{
		ctx:     ctx,
		pcm:     make(map[string][]byte),
		enabled: make(map[string]bool),
	}
}

// Register decodes the file at path and stores it under name, enabled.
func (e *EffectSet) Register(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open effect %s: %w", name, err)
	}
	defer f.Close()

	stream, err := decode(path, f)
	if err != nil {
		return err
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("decode effect %s: %w", name, err)
	}

	e.mu.Lock()
	e.pcm[name] = pcm
	e.enabled[name] = true
	e.mu.Unlock()
	return nil
}

// SetEnabled toggles a registered effect without dropping its PCM.
func (e *EffectSet) SetEnabled(name string, on bool) {
	e.mu.Lock()
	if _, ok := e.pcm[name]; ok {
		e.enabled[name] = on
	}
	e.mu.Unlock()
}

// Play fires the named effect. Unknown or disabled effects are a
// silent no-op; a keystroke must never fail on sound trouble.
func (e *EffectSet) Play(name string) {
	e.mu.Lock()
	pcm, ok := e.pcm[name]
	on := e.enabled[name]
	e.mu.Unlock()
	if !ok || !on {
		return
	}
	e.ctx.NewPlayerFromBytes(pcm).Play()
}
