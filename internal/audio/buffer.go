package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// BufferBackend decodes the whole source into memory at load time.
// Its playback primitive cannot resume a halted node, so Pause closes
// the current player and Play builds a fresh looping node over the same
// decoded buffer, restarting from the top.
type BufferBackend struct {
	ctx    *eaudio.Context
	pcm    []byte
	player *eaudio.Player
	source string
}

// NewBufferBackend creates the decoded-buffer strategy on ctx.
func NewBufferBackend(ctx *eaudio.Context) *BufferBackend {
	return &BufferBackend{ctx: ctx}
}

// Load decodes the entire file at path into memory.
func (b *BufferBackend) Load(path string) error {
	if err := b.teardown(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio source: %w", err)
	}
	defer f.Close()

	stream, err := decode(path, f)
	if err != nil {
		return err
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("decode audio source: %w", err)
	}

	b.pcm = pcm
	b.source = path
	return nil
}

// Play builds a fresh looping node over the decoded buffer and starts
// it. Resuming after Pause restarts from the beginning of the track.
func (b *BufferBackend) Play() error {
	if b.pcm == nil {
		return ErrNotLoaded
	}
	if b.player != nil {
		if b.player.IsPlaying() {
			return nil
		}
		if err := b.player.Close(); err != nil {
			return err
		}
		b.player = nil
	}

	loop := eaudio.NewInfiniteLoop(bytes.NewReader(b.pcm), int64(len(b.pcm)))
	player, err := b.ctx.NewPlayer(loop)
	if err != nil {
		return fmt.Errorf("create audio player: %w", err)
	}
	b.player = player
	player.Play()
	return nil
}

// Pause tears down the active node. The decoded buffer stays resident.
func (b *BufferBackend) Pause() error {
	if b.pcm == nil {
		return ErrNotLoaded
	}
	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	return err
}

// Playing reports whether a node is currently running.
func (b *BufferBackend) Playing() bool {
	return b.player != nil && b.player.IsPlaying()
}

// Source returns the loaded path.
func (b *BufferBackend) Source() string {
	return b.source
}

// Close releases the node and drops the decoded buffer.
func (b *BufferBackend) Close() error {
	return b.teardown()
}

func (b *BufferBackend) teardown() error {
	var err error
	if b.player != nil {
		err = b.player.Close()
		b.player = nil
	}
	b.pcm = nil
	b.source = ""
	return err
}
