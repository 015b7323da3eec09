package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inkstone/internal/outline"
	"github.com/dshills/inkstone/internal/theme"
)

// outlinePaneWidth is the width of the outline pane when headings exist.
const outlinePaneWidth = 24

// line is one document line with its starting byte offset.
type line struct {
	start int
	text  string
}

// splitLines indexes the document into lines. The trailing line is
// always present, even when empty.
func splitLines(text string) []line {
	var lines []line
	start := 0
	for {
		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			lines = append(lines, line{start: start, text: text[start:]})
			return lines
		}
		lines = append(lines, line{start: start, text: text[start : start+end]})
		start += end + 1
	}
}

// locate returns the line index and byte column holding offset.
func locate(lines []line, offset int) (li, col int) {
	for i := len(lines) - 1; i >= 0; i-- {
		if offset >= lines[i].start {
			return i, offset - lines[i].start
		}
	}
	return 0, 0
}

func prevRuneStart(text string, offset int) int {
	_, size := utf8.DecodeLastRuneInString(text[:offset])
	return offset - size
}

func nextRuneStart(text string, offset int) int {
	if offset >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRuneInString(text[offset:])
	return offset + size
}

// Draw renders the whole frame.
func (u *UI) Draw() {
	cfg := u.app.View().Config()
	pal := theme.ForMode(cfg.Dark)

	base := tcell.StyleDefault.
		Foreground(toTcell(pal.Foreground)).
		Background(toTcell(pal.Background))

	u.screen.Fill(' ', base)

	width, height := u.screen.Size()
	if height < 3 {
		u.screen.Show()
		return
	}

	tab := u.app.Session().Active()
	textWidth := width
	if tab != nil && len(tab.Headings()) > 0 && width > outlinePaneWidth*2 {
		textWidth = width - outlinePaneWidth
		u.drawOutline(textWidth, height-2, pal)
	}

	u.drawTabLine(width, pal)
	u.drawDocument(textWidth, height-2, pal, base)
	u.drawStatusLine(width, height-1, pal)

	u.screen.Show()
}

// drawTabLine renders row 0: one cell per open tab, active highlighted.
func (u *UI) drawTabLine(width int, pal theme.Palette) {
	style := tcell.StyleDefault.
		Foreground(toTcell(pal.StatusFg)).
		Background(toTcell(pal.StatusBg))
	active := style.Foreground(toTcell(pal.Accent)).Bold(true)

	for x := 0; x < width; x++ {
		u.screen.SetContent(x, 0, ' ', nil, style)
	}

	x := 0
	current := u.app.Session().Active()
	for _, t := range u.app.Session().Tabs() {
		label := " " + t.Name
		if t.Dirty() {
			label += "*"
		}
		label += " "

		st := style
		if t == current {
			st = active
		}
		for _, r := range label {
			if x >= width {
				return
			}
			u.screen.SetContent(x, 0, r, nil, st)
			x++
		}
	}
}

// drawDocument renders the text area starting at row 1, applying the
// spotlight dim ranges.
func (u *UI) drawDocument(width, rows int, pal theme.Palette, base tcell.Style) {
	view := u.app.View()
	s := view.State()
	dims := view.DimRanges()
	lines := splitLines(s.Text())

	cursorLine, _ := locate(lines, s.Cursor())
	top := 0
	if cursorLine >= rows {
		top = cursorLine - rows + 1
	}

	dimStyle := base.Foreground(toTcell(pal.Dim))
	headingStyle := base.Foreground(toTcell(pal.HeadingFg)).Bold(true)

	for row := 0; row < rows; row++ {
		li := top + row
		if li >= len(lines) {
			break
		}
		ln := lines[li]

		lineStyle := base
		if _, _, ok := outline.ParseLine(ln.text); ok {
			lineStyle = headingStyle
		}

		x := 0
		offset := ln.start
		for _, r := range ln.text {
			if x >= width {
				break
			}
			st := lineStyle
			for _, d := range dims {
				if offset >= d.Start && offset < d.End {
					st = dimStyle
					break
				}
			}
			u.screen.SetContent(x, row+1, r, nil, st)
			x++
			offset += utf8.RuneLen(r)
		}
	}

	ccol := runeColumn(lines, cursorLine, s.Cursor())
	u.screen.ShowCursor(ccol, cursorLine-top+1)
}

// runeColumn converts the cursor byte offset to a screen column.
func runeColumn(lines []line, li, cursor int) int {
	ln := lines[li]
	return utf8.RuneCountInString(ln.text[:cursor-ln.start])
}

// drawOutline renders the heading pane on the right edge.
func (u *UI) drawOutline(x0, rows int, pal theme.Palette) {
	tab := u.app.Session().Active()
	if tab == nil {
		return
	}

	style := tcell.StyleDefault.
		Foreground(toTcell(pal.HeadingFg)).
		Background(toTcell(pal.Background))

	row := 1
	var collapsedLevel int
	for _, h := range tab.Headings() {
		if collapsedLevel > 0 && h.Level > collapsedLevel {
			continue
		}
		collapsedLevel = 0
		if h.Collapsed {
			collapsedLevel = h.Level
		}
		if row > rows {
			break
		}

		marker := "-"
		if h.Collapsed {
			marker = "+"
		}
		label := strings.Repeat(" ", h.Level-1) + marker + " " + h.Text
		x := x0
		for _, r := range label {
			if x >= x0+outlinePaneWidth {
				break
			}
			u.screen.SetContent(x, row, r, nil, style)
			x++
		}
		row++
	}
}

// drawStatusLine renders the bottom row: breadcrumb on the left,
// encoding, line ending, and position on the right.
func (u *UI) drawStatusLine(width, y int, pal theme.Palette) {
	style := tcell.StyleDefault.
		Foreground(toTcell(pal.StatusFg)).
		Background(toTcell(pal.StatusBg))

	for x := 0; x < width; x++ {
		u.screen.SetContent(x, y, ' ', nil, style)
	}

	st := u.app.Status()
	left := " " + st.TabName
	if st.Dirty {
		left += "*"
	}
	if st.Notice == "" && len(st.Breadcrumb) > 0 {
		left += "  " + strings.Join(st.Breadcrumb, " > ")
	}
	right := fmt.Sprintf("%s %s %d:%d %d runes ", st.Encoding, st.LineEnding, st.Line, st.Column, st.Runes)

	x := 0
	for _, r := range left {
		if x >= width {
			break
		}
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
	if st.Notice != "" {
		// A pending notice takes the breadcrumb's spot until dismissed.
		noticeStyle := style.Foreground(toTcell(pal.Accent)).Bold(true)
		for _, r := range "  " + st.Notice {
			if x >= width {
				break
			}
			u.screen.SetContent(x, y, r, nil, noticeStyle)
			x++
		}
	}
	x = width - utf8.RuneCountInString(right)
	if x < 0 {
		x = 0
	}
	for _, r := range right {
		if x >= width {
			break
		}
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func toTcell(c theme.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
