package app

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/inkstone/internal/event"
	"github.com/dshills/inkstone/internal/settings"
)

// Bus topics.
const (
	// TopicSettingsChanged carries a batched settings patch ([]byte JSON
	// object) holding only the fields whose meaning changed.
	TopicSettingsChanged event.Topic = "settings.changed"

	// TopicSessionChanged carries the ordered open paths ([]string).
	TopicSessionChanged event.Topic = "session.changed"

	// TopicDocumentSaved carries the saved file path (string).
	TopicDocumentSaved event.Topic = "document.saved"
)

// settingsBridgeDebounce settles write bursts from the settings surface
// process before one patch is derived.
const settingsBridgeDebounce = 50 * time.Millisecond

// subscribeSettings routes settings patches onto the task loop.
func (a *Application) subscribeSettings() {
	a.bus.Subscribe(TopicSettingsChanged, func(e event.Event) {
		patch, ok := e.Payload.([]byte)
		if !ok {
			a.logger.Warn("settings patch with payload %T dropped", e.Payload)
			return
		}
		a.Do(func() { a.applyPatch(patch) })
	})
}

// StartSettingsBridge watches the store file for rewrites by the
// settings surface process and republishes each settled change as a
// batched patch on the bus. No-op for in-memory stores.
func (a *Application) StartSettingsBridge() error {
	path := a.store.Path()
	if path == "" || a.bridge != nil {
		return nil
	}

	w, err := settings.WatchFile(path, settingsBridgeDebounce, func() {
		a.Do(a.republishStoreChange)
	})
	if err != nil {
		return err
	}
	a.bridge = w
	return nil
}

// republishStoreChange reloads the store and publishes the difference
// from the last seen snapshot as a settings patch.
func (a *Application) republishStoreChange() {
	a.mu.Lock()
	old := a.lastSnapshot
	a.mu.Unlock()

	if err := a.store.Load(); err != nil {
		a.logger.Warn("reload settings: %v", err)
		return
	}

	now := a.store.Snapshot()
	a.mu.Lock()
	a.lastSnapshot = now
	a.mu.Unlock()

	patch, changed := settings.Diff(old, now)
	if !changed {
		return
	}
	a.bus.PublishFrom("settings-bridge", TopicSettingsChanged, patch)
}

// applyPatch applies a batched settings patch field by field. Each
// field applies independently and idempotently; a field that fails is
// logged and skipped, never rolling back fields already applied.
// Explicit JSON null resets an override to its built-in default.
func (a *Application) applyPatch(patch []byte) {
	settings.Fields(patch, func(key string, value gjson.Result) {
		if err := a.applyField(key, value); err != nil {
			a.logger.Warn("apply %s: %v", key, err)
		}
	})

	a.saveStore()
	a.applyAppearance()
	a.requestRender()
}

// applyField stores one patch field and performs its side effect.
func (a *Application) applyField(key string, value gjson.Result) error {
	switch key {
	case settings.KeyDarkMode, settings.KeyTypingSound, settings.KeyUISound:
		if !value.IsBool() {
			return ErrConfigurationDrift
		}
	case settings.KeyFontIndex, settings.KeyFontSize, settings.KeyWrapWidth, settings.KeyLineHeight:
		if value.Type != gjson.Number {
			return ErrConfigurationDrift
		}
	case settings.KeyLineBreak, settings.KeyWordBreak:
		if value.Type != gjson.String {
			return ErrConfigurationDrift
		}
	case settings.KeyFontFamily, settings.KeyBackgroundImagePath, settings.KeyBackgroundAudioPath:
		if value.Type != gjson.String && value.Type != gjson.Null {
			return ErrConfigurationDrift
		}
	case settings.KeySessionPaths:
		// Session paths are owned by this surface and never arrive in a
		// patch.
		return ErrConfigurationDrift
	default:
		return ErrConfigurationDrift
	}

	var err error
	if value.Type == gjson.Null {
		err = a.store.Set(key, nil)
	} else {
		err = a.store.Set(key, value.Value())
	}
	if err != nil {
		return err
	}

	switch key {
	case settings.KeyBackgroundAudioPath:
		if a.audio == nil {
			return nil
		}
		source := ""
		if value.Type == gjson.String {
			source = value.String()
		}
		if err := a.audio.SwapSource(source); err != nil {
			return NewOperationError("swap audio", source, ErrAssetMissing)
		}
	case settings.KeyTypingSound:
		if a.effects != nil {
			a.effects.SetEnabled(EffectTyping, value.Bool())
		}
	case settings.KeyUISound:
		if a.effects != nil {
			a.effects.SetEnabled(EffectUI, value.Bool())
		}
	}
	return nil
}
