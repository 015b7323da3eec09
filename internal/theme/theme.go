// Package theme resolves the editor's colors and fonts from settings.
package theme

// Color is a 24-bit RGB color, independent of any rendering backend.
type Color struct {
	R, G, B uint8
}

// Palette is the color set for one UI mode.
type Palette struct {
	Name string

	Background Color
	Foreground Color
	Accent     Color

	// Dim is the foreground used inside spotlight de-emphasis ranges.
	Dim Color

	// HeadingFg is the outline/heading foreground.
	HeadingFg Color

	// StatusBg and StatusFg style the status and tab lines.
	StatusBg Color
	StatusFg Color
}

// Dark returns the dark-mode palette.
func Dark() Palette {
	return Palette{
		Name:       "dark",
		Background: Color{30, 30, 30},
		Foreground: Color{212, 212, 212},
		Accent:     Color{97, 175, 239},
		Dim:        Color{100, 100, 100},
		HeadingFg:  Color{229, 192, 123},
		StatusBg:   Color{50, 50, 50},
		StatusFg:   Color{212, 212, 212},
	}
}

// Light returns the light-mode palette.
func Light() Palette {
	return Palette{
		Name:       "light",
		Background: Color{250, 250, 248},
		Foreground: Color{40, 40, 40},
		Accent:     Color{0, 90, 180},
		Dim:        Color{180, 180, 180},
		HeadingFg:  Color{150, 100, 20},
		StatusBg:   Color{230, 230, 226},
		StatusFg:   Color{40, 40, 40},
	}
}

// ForMode returns the palette for the dark-mode flag.
func ForMode(dark bool) Palette {
	if dark {
		return Dark()
	}
	return Light()
}
