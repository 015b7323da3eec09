// Package tui renders the session in a terminal: tab line, document
// area with spotlight dimming, outline pane, and status line.
package tui

import (
	"errors"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inkstone/internal/app"
	"github.com/dshills/inkstone/internal/editor"
)

// UI drives a tcell screen over the application.
type UI struct {
	screen  tcell.Screen
	app     *app.Application
	started atomic.Bool
}

// New creates a UI on a real terminal screen.
func New(a *app.Application) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(a, screen), nil
}

// NewWithScreen creates a UI over an existing screen. Tests pass a
// tcell simulation screen.
func NewWithScreen(a *app.Application, screen tcell.Screen) *UI {
	return &UI{screen: screen, app: a}
}

// MarkDirty wakes the loop for a redraw. Safe from any goroutine; wire
// it as the application render callback.
func (u *UI) MarkDirty() {
	if u.started.Load() {
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// Run initializes the screen and processes input until quit.
func (u *UI) Run() error {
	if err := u.screen.Init(); err != nil {
		return err
	}
	defer u.screen.Fini()
	u.started.Store(true)

	u.Draw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			if err := u.dispatchKey(ev); errors.Is(err, app.ErrQuit) {
				return nil
			}
		}

		// Drain deferred work (outline refresh, settings patches) before
		// drawing so the frame reflects it.
		for u.app.Tick() {
		}
		u.Draw()
	}
}

// dispatchKey clears any pending notice, runs the key, and turns an
// operation failure into a new notice for the next draw. Any keypress
// dismisses the previous notice.
func (u *UI) dispatchKey(ev *tcell.EventKey) error {
	u.app.DismissNotice()
	err := u.handleKey(ev)
	if err != nil && !errors.Is(err, app.ErrQuit) {
		u.app.Notify(err.Error())
	}
	return err
}

// handleKey dispatches one key event.
func (u *UI) handleKey(ev *tcell.EventKey) error {
	view := u.app.View()

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return app.ErrQuit
	case tcell.KeyCtrlS:
		return u.app.SaveActive()
	case tcell.KeyCtrlN:
		u.app.NewTab()
	case tcell.KeyCtrlW:
		return u.app.CloseActive()
	case tcell.KeyTab:
		u.app.CycleTab(1)
	case tcell.KeyBacktab:
		u.app.CycleTab(-1)
	case tcell.KeyCtrlL:
		u.app.ToggleSpotlight()
	case tcell.KeyCtrlP:
		u.app.ToggleAudio()
	case tcell.KeyCtrlF:
		u.app.CycleFont()
	case tcell.KeyCtrlZ:
		view.Undo()
	case tcell.KeyCtrlY:
		view.Redo()
	case tcell.KeyEnter:
		view.Insert("\n")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		c := view.State().Cursor()
		if c > 0 {
			view.Delete(editor.Range{Start: prevRuneStart(view.State().Text(), c), End: c})
		}
	case tcell.KeyLeft:
		s := view.State()
		if s.Cursor() > 0 {
			view.SetCursor(prevRuneStart(s.Text(), s.Cursor()))
		}
	case tcell.KeyRight:
		s := view.State()
		view.SetCursor(nextRuneStart(s.Text(), s.Cursor()))
	case tcell.KeyUp:
		u.moveLine(-1)
	case tcell.KeyDown:
		u.moveLine(1)
	case tcell.KeyRune:
		view.Insert(string(ev.Rune()))
	}
	return nil
}

// moveLine moves the cursor one line up or down, clamping the column.
func (u *UI) moveLine(delta int) {
	view := u.app.View()
	s := view.State()
	lines := splitLines(s.Text())
	line, col := locate(lines, s.Cursor())

	line += delta
	if line < 0 || line >= len(lines) {
		return
	}
	if col > len(lines[line].text) {
		col = len(lines[line].text)
	}
	view.SetCursor(lines[line].start + col)
}
