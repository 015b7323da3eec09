package theme

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Family is one built-in editor font.
type Family struct {
	// Name is the display name shown in the settings surface.
	Name string

	// Mono reports fixed-pitch metrics.
	Mono bool

	// TTF is the embedded TrueType data.
	TTF []byte
}

// families is the built-in cycle, in cycle order.
var families = []Family{
	{Name: "Go Regular", TTF: goregular.TTF},
	{Name: "Go Medium", TTF: gomedium.TTF},
	{Name: "Go Italic", TTF: goitalic.TTF},
	{Name: "Go Bold", TTF: gobold.TTF},
	{Name: "Go Mono", Mono: true, TTF: gomono.TTF},
}

// Families returns the built-in font cycle in order.
func Families() []Family {
	out := make([]Family, len(families))
	copy(out, families)
	return out
}

// FamilyNames returns the display names in cycle order, for the
// settings surface's font picker.
func FamilyNames() []string {
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.Name
	}
	return names
}

// Resolve is the single indirection point between settings and the
// active editor font. An explicit user family name wins when it names a
// known family; otherwise the cycle index selects a built-in, wrapping
// on overflow. Every caller that derives a font goes through here, so
// clearing the user font (nil) transparently falls back to the current
// cycle selection.
func Resolve(userFamily *string, cycleIndex int) Family {
	if userFamily != nil {
		for _, f := range families {
			if f.Name == *userFamily {
				return f
			}
		}
		// Unknown name: configuration drift, fall through to the cycle.
	}

	n := len(families)
	i := cycleIndex % n
	if i < 0 {
		i += n
	}
	return families[i]
}
