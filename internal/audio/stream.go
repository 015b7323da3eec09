package audio

import (
	"fmt"
	"os"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// StreamBackend decodes from the file as playback advances and keeps a
// single long-lived player whose Pause and Play act in place, resuming
// from the paused position.
type StreamBackend struct {
	ctx    *eaudio.Context
	file   *os.File
	player *eaudio.Player
	source string
}

// NewStreamBackend creates the streaming strategy on ctx.
func NewStreamBackend(ctx *eaudio.Context) *StreamBackend {
	return &StreamBackend{ctx: ctx}
}

// Load opens path and prepares a looping player over it.
func (b *StreamBackend) Load(path string) error {
	if err := b.teardown(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio source: %w", err)
	}
	stream, err := decode(path, f)
	if err != nil {
		f.Close()
		return err
	}
	loop := eaudio.NewInfiniteLoop(stream, stream.Length())
	player, err := b.ctx.NewPlayer(loop)
	if err != nil {
		f.Close()
		return fmt.Errorf("create audio player: %w", err)
	}

	b.file = f
	b.player = player
	b.source = path
	return nil
}

// Play starts or resumes the loop from the current position.
func (b *StreamBackend) Play() error {
	if b.player == nil {
		return ErrNotLoaded
	}
	b.player.Play()
	return nil
}

// Pause halts the loop, retaining the position.
func (b *StreamBackend) Pause() error {
	if b.player == nil {
		return ErrNotLoaded
	}
	b.player.Pause()
	return nil
}

// Playing reports whether the loop is audible.
func (b *StreamBackend) Playing() bool {
	return b.player != nil && b.player.IsPlaying()
}

// Source returns the loaded path.
func (b *StreamBackend) Source() string {
	return b.source
}

// Close releases the player and the underlying file.
func (b *StreamBackend) Close() error {
	return b.teardown()
}

func (b *StreamBackend) teardown() error {
	var err error
	if b.player != nil {
		err = b.player.Close()
		b.player = nil
	}
	if b.file != nil {
		if cerr := b.file.Close(); err == nil {
			err = cerr
		}
		b.file = nil
	}
	b.source = ""
	return err
}
