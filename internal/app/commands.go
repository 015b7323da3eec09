package app

import (
	"strings"

	"github.com/dshills/inkstone/internal/export"
)

// OpenFile opens path in a tab, or switches to it if already open.
func (a *Application) OpenFile(path string) error {
	if _, err := a.session.OpenOrSwitch(path); err != nil {
		return NewOperationError("open", path, err)
	}
	a.playUI()
	return nil
}

// NewTab creates and activates a blank tab.
func (a *Application) NewTab() {
	a.session.CreateBlank()
	a.playUI()
}

// CloseActive closes the active tab, honoring the dirty confirmation.
func (a *Application) CloseActive() error {
	tab := a.session.Active()
	if tab == nil {
		return nil
	}
	return a.session.Close(tab)
}

// CycleTab activates the next (+1) or previous (-1) tab.
func (a *Application) CycleTab(delta int) {
	a.session.Cycle(delta)
	a.playUI()
}

// SaveActive saves the active tab. session.ErrNoPath passes through so
// the caller can prompt for a destination.
func (a *Application) SaveActive() error {
	tab := a.session.Active()
	if tab == nil {
		return nil
	}
	if err := a.session.Save(tab); err != nil {
		return err
	}
	a.bus.PublishFrom("session", TopicDocumentSaved, tab.Path)
	return nil
}

// SaveActiveAs saves the active tab to path and rebinds it.
func (a *Application) SaveActiveAs(path string) error {
	tab := a.session.Active()
	if tab == nil {
		return nil
	}
	if err := a.session.SaveAs(tab, path); err != nil {
		return err
	}
	a.bus.PublishFrom("session", TopicDocumentSaved, tab.Path)
	return nil
}

// ExportActiveEPUB writes the active document as an EPUB to outPath.
// The book title falls back from the tab name for untitled documents.
func (a *Application) ExportActiveEPUB(outPath string) error {
	tab := a.session.Active()
	if tab == nil {
		return nil
	}

	content := a.view.State().Text()
	title := ""
	if !tab.Untitled() {
		title = strings.TrimSuffix(tab.Name, ".md")
		title = strings.TrimSuffix(title, ".txt")
	}

	if err := export.EPUB(content, export.Book{Title: title}, outPath); err != nil {
		return NewOperationError("export", outPath, err)
	}
	a.logger.Info("exported %s", outPath)
	return nil
}

// playUI fires the UI sound effect if one is configured.
func (a *Application) playUI() {
	if a.effects != nil {
		a.effects.Play(EffectUI)
	}
}
