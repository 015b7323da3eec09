// Package audio plays the background track and short UI sound effects.
//
// Two playback strategies exist behind one Backend interface: a
// streaming backend whose single player pauses and resumes in place,
// and a decoded-buffer backend for platforms whose audio primitive
// cannot pause a playing source: it halts the current node and builds
// a fresh looping node from the same decoded buffer on every resume.
// The strategy is chosen once at startup and never switched.
package audio

import "errors"

// Errors returned by backend and manager operations.
var (
	// ErrNotLoaded indicates playback was requested with no source loaded.
	ErrNotLoaded = errors.New("no audio source loaded")

	// ErrUnsupportedFormat indicates the source file extension has no decoder.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Backend is one playback strategy.
type Backend interface {
	// Load prepares the source at path for looped playback, tearing
	// down any previously loaded source first.
	Load(path string) error

	// Play starts or resumes playback.
	Play() error

	// Pause halts playback. Whether the position is retained is
	// backend-specific; the decoded-buffer strategy restarts from the
	// top on the next Play.
	Pause() error

	// Playing reports whether audio is currently audible.
	Playing() bool

	// Source returns the path of the loaded source ("" when unloaded).
	Source() string

	// Close releases all playback resources.
	Close() error
}
