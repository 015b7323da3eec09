// Package outline derives the navigable document outline from raw text:
// the ordered heading list, collapse-state reconciliation across
// re-extraction, the spotlight focus ranges, and the breadcrumb trail.
//
// Everything in this package is a pure function over values. Callers own
// the cached heading list and replace it wholesale; observers never see
// a partially updated list.
package outline

import "strings"

// Heading is a single outline entry.
type Heading struct {
	// Level is the nesting depth, equal to the marker count (1-based).
	Level int

	// Text is the display text with markers and surrounding space removed.
	Text string

	// Anchor is the byte offset of the start of the heading's line.
	Anchor int

	// Collapsed reports whether the section under this heading is folded
	// in the outline view.
	Collapsed bool
}

// Marker is the heading marker character.
const Marker = '#'

// ParseLine reports whether line is a heading line and, if so, its level
// and display text. A heading is one or more markers, one whitespace
// character, then a non-empty remainder.
func ParseLine(line string) (level int, text string, ok bool) {
	line = strings.TrimSuffix(line, "\r")

	for level < len(line) && line[level] == Marker {
		level++
	}
	if level == 0 || level >= len(line) {
		return 0, "", false
	}
	if line[level] != ' ' && line[level] != '\t' {
		return 0, "", false
	}

	text = strings.TrimSpace(line[level+1:])
	if text == "" {
		return 0, "", false
	}
	return level, text, true
}

// Extract scans text line by line and returns the headings in document
// order. Collapsed is false on every returned entry; use Reconcile to
// carry collapse state forward from a previous extraction.
func Extract(text string) []Heading {
	var headings []Heading

	offset := 0
	for offset <= len(text) {
		end := strings.IndexByte(text[offset:], '\n')
		var line string
		if end < 0 {
			line = text[offset:]
		} else {
			line = text[offset : offset+end]
		}

		if level, display, ok := ParseLine(line); ok {
			headings = append(headings, Heading{
				Level:  level,
				Text:   display,
				Anchor: offset,
			})
		}

		if end < 0 {
			break
		}
		offset += end + 1
	}

	return headings
}

// Reconcile returns next with collapse state copied forward from prev.
// A previously collapsed heading transfers its flag only to an entry
// whose anchor AND text both match; anchor alone is not reliable across
// edits that shift offsets without touching the heading itself.
// Previously collapsed headings with no match are dropped silently.
// The input slices are not modified.
func Reconcile(prev, next []Heading) []Heading {
	if len(next) == 0 {
		return nil
	}

	out := make([]Heading, len(next))
	copy(out, next)

	if len(prev) == 0 {
		return out
	}

	type key struct {
		anchor int
		text   string
	}
	index := make(map[key]int, len(out))
	for i, h := range out {
		index[key{h.Anchor, h.Text}] = i
	}

	for _, old := range prev {
		if !old.Collapsed {
			continue
		}
		if i, found := index[key{old.Anchor, old.Text}]; found {
			out[i].Collapsed = true
		}
	}

	return out
}

// Trail returns the chain of enclosing headings for the given cursor
// offset, outermost first. A heading encloses the cursor when its anchor
// is at or before the cursor and no later heading of the same or
// shallower level intervenes.
func Trail(headings []Heading, cursor int) []Heading {
	var trail []Heading
	for _, h := range headings {
		if h.Anchor > cursor {
			break
		}
		for len(trail) > 0 && trail[len(trail)-1].Level >= h.Level {
			trail = trail[:len(trail)-1]
		}
		trail = append(trail, h)
	}
	return trail
}
