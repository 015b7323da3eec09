package app

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/inkstone/internal/fileio"
	"github.com/dshills/inkstone/internal/outline"
)

// Status is the derived status-line record for the active tab.
type Status struct {
	TabName    string
	Dirty      bool
	Encoding   fileio.Encoding
	LineEnding fileio.LineEnding

	// Line and Column are 1-based cursor coordinates.
	Line   int
	Column int

	// Runes is the document length in runes.
	Runes int

	// Breadcrumb is the chain of enclosing heading texts at the cursor,
	// outermost first.
	Breadcrumb []string

	// Notice is a pending operation report ("" when none). It stays on
	// the status line until the user presses a key.
	Notice string
}

// Notify posts a user-facing notice for the status line. Failed file
// operations report through here rather than dying in a log.
func (a *Application) Notify(msg string) {
	a.mu.Lock()
	a.notice = msg
	a.mu.Unlock()
	a.requestRender()
}

// DismissNotice clears the pending notice.
func (a *Application) DismissNotice() {
	a.mu.Lock()
	a.notice = ""
	a.mu.Unlock()
}

// Status derives the status record from the live view and active tab.
func (a *Application) Status() Status {
	a.mu.Lock()
	notice := a.notice
	a.mu.Unlock()

	tab := a.session.Active()
	if tab == nil {
		return Status{Line: 1, Column: 1, Notice: notice}
	}

	s := a.view.State()
	text := s.Text()
	cursor := s.Cursor()

	line, col := position(text, cursor)

	var crumbs []string
	for _, h := range outline.Trail(tab.Headings(), cursor) {
		crumbs = append(crumbs, h.Text)
	}

	return Status{
		TabName:    tab.Name,
		Dirty:      tab.Dirty(),
		Encoding:   tab.Encoding,
		LineEnding: tab.LineEnding,
		Line:       line,
		Column:     col,
		Runes:      utf8.RuneCountInString(text),
		Breadcrumb: crumbs,
		Notice:     notice,
	}
}

// position converts a byte offset to 1-based line and rune column.
func position(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	line = strings.Count(before, "\n") + 1

	start := strings.LastIndexByte(before, '\n') + 1
	col = utf8.RuneCountInString(before[start:]) + 1
	return line, col
}
