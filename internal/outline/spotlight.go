package outline

import "strings"

// Range is a half-open [Start, End) byte range into the document.
type Range struct {
	Start int
	End   int
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether offset falls inside the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Spotlight computes the ranges to visually de-emphasize around the
// section enclosing the cursor. It returns zero, one, or two ranges:
// everything before the enclosing section's heading line, and everything
// from the next same-or-shallower-level heading onward.
//
// An empty document, or a cursor positioned before the first heading,
// yields no ranges: the whole document stays in focus. That is
// deliberate behavior, not a missing case.
func Spotlight(text string, cursor int) []Range {
	if len(text) == 0 {
		return nil
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}

	starts := lineStarts(text)

	// Locate the line containing the cursor.
	cursorLine := 0
	for i, s := range starts {
		if s > cursor {
			break
		}
		cursorLine = i
	}

	// Walk backward to the nearest heading line; its marker count is the
	// current section level.
	sectionLine := -1
	level := 0
	for i := cursorLine; i >= 0; i-- {
		if lv, _, ok := ParseLine(lineAt(text, starts, i)); ok {
			sectionLine = i
			level = lv
			break
		}
	}
	if sectionLine < 0 {
		return nil
	}

	start := starts[sectionLine]

	// Walk forward for the first heading at the same or a shallower
	// level; the section ends on the line before it.
	end := len(text)
	for i := sectionLine + 1; i < len(starts); i++ {
		if lv, _, ok := ParseLine(lineAt(text, starts, i)); ok && lv <= level {
			end = starts[i]
			break
		}
	}

	var dims []Range
	if start > 0 {
		dims = append(dims, Range{Start: 0, End: start})
	}
	if end < len(text) {
		dims = append(dims, Range{Start: end, End: len(text)})
	}
	return dims
}

// lineStarts returns the byte offset of the start of every line.
func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineAt returns line i without its trailing newline.
func lineAt(text string, starts []int, i int) string {
	start := starts[i]
	rest := text[start:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		return rest[:nl]
	}
	return rest
}
