package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// overlayFile mirrors the optional TOML defaults file a distribution
// may ship alongside the binary. Every field is optional; zero values
// mean "keep the built-in default".
type overlayFile struct {
	DarkMode    *bool    `toml:"dark_mode"`
	FontSize    *int     `toml:"font_size"`
	WrapWidth   *int     `toml:"wrap_width"`
	LineHeight  *float64 `toml:"line_height"`
	LineBreak   *string  `toml:"line_break"`
	WordBreak   *string  `toml:"word_break"`
	TypingSound *bool    `toml:"typing_sound"`
	UISound     *bool    `toml:"ui_sound"`
}

// LoadDefaults returns the built-in defaults overlaid with the TOML
// file at path. A missing file is not an error; a malformed file is.
func LoadDefaults(path string) (Settings, error) {
	out := Default()
	if path == "" {
		return out, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return out, err
	}

	var file overlayFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return out, fmt.Errorf("parse defaults overlay %s: %w", path, err)
	}

	if file.DarkMode != nil {
		out.DarkMode = *file.DarkMode
	}
	if file.FontSize != nil {
		out.FontSize = *file.FontSize
	}
	if file.WrapWidth != nil {
		out.WrapWidth = *file.WrapWidth
	}
	if file.LineHeight != nil {
		out.LineHeight = *file.LineHeight
	}
	if file.LineBreak != nil {
		out.LineBreak = *file.LineBreak
	}
	if file.WordBreak != nil {
		out.WordBreak = *file.WordBreak
	}
	if file.TypingSound != nil {
		out.TypingSound = *file.TypingSound
	}
	if file.UISound != nil {
		out.UISound = *file.UISound
	}

	return out, nil
}
