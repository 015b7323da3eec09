package settings

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Diff builds the batched change patch the settings surface emits on
// apply: a JSON object holding only the fields whose meaning changed
// between old and new. Scalars appear with their new value. Override
// paths (font family, background image, background audio) appear with
// an explicit JSON null when the override was removed: null means
// "reset to the built-in default", which is different from the field
// being absent (unchanged).
//
// Session paths never appear in a patch; they are owned by the editing
// surface alone.
func Diff(old, new Settings) (patch []byte, changed bool) {
	doc := "{}"
	set := func(key string, value any) {
		doc, _ = sjson.Set(doc, key, value)
		changed = true
	}

	if old.DarkMode != new.DarkMode {
		set(KeyDarkMode, new.DarkMode)
	}
	if old.FontIndex != new.FontIndex {
		set(KeyFontIndex, new.FontIndex)
	}
	if old.FontSize != new.FontSize {
		set(KeyFontSize, new.FontSize)
	}
	if old.WrapWidth != new.WrapWidth {
		set(KeyWrapWidth, new.WrapWidth)
	}
	if old.LineHeight != new.LineHeight {
		set(KeyLineHeight, new.LineHeight)
	}
	if old.LineBreak != new.LineBreak {
		set(KeyLineBreak, new.LineBreak)
	}
	if old.WordBreak != new.WordBreak {
		set(KeyWordBreak, new.WordBreak)
	}
	if old.TypingSound != new.TypingSound {
		set(KeyTypingSound, new.TypingSound)
	}
	if old.UISound != new.UISound {
		set(KeyUISound, new.UISound)
	}
	if !ptrEqual(old.FontFamily, new.FontFamily) {
		set(KeyFontFamily, ptrValue(new.FontFamily))
	}
	if !ptrEqual(old.BackgroundImagePath, new.BackgroundImagePath) {
		set(KeyBackgroundImagePath, ptrValue(new.BackgroundImagePath))
	}
	if !ptrEqual(old.BackgroundAudioPath, new.BackgroundAudioPath) {
		set(KeyBackgroundAudioPath, ptrValue(new.BackgroundAudioPath))
	}

	if !changed {
		return nil, false
	}
	return []byte(doc), true
}

// Fields walks every field in a patch in document order. The receiving
// side applies each field independently and idempotently; value.Type ==
// gjson.Null signals an explicit reset to the default.
func Fields(patch []byte, fn func(key string, value gjson.Result)) {
	gjson.ParseBytes(patch).ForEach(func(key, value gjson.Result) bool {
		fn(key.String(), value)
		return true
	})
}

func ptrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
