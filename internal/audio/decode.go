package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// sampleRate is the device sample rate shared by every player. All
// decoders resample to it so sources of different rates can coexist.
const sampleRate = 48000

// pcmStream is decoded PCM with a known total length, as produced by
// the mp3 and wav decoders.
type pcmStream interface {
	io.ReadSeeker
	Length() int64
}

// decode wraps r in a decoder picked by file extension.
func decode(path string, r io.Reader) (pcmStream, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("decode mp3 %s: %w", path, err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("decode wav %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}
