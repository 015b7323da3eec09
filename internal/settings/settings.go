// Package settings persists the flat application settings record and
// synchronizes it between the editing surface and the settings surface.
//
// The record lives in a single JSON store document. The settings surface
// owns its own Store handle (it shares no memory with the session) and
// announces changes as batched field patches; see Diff and Fields for
// the patch contract.
package settings

// Store document keys. The record is deliberately flat.
const (
	KeyDarkMode            = "darkMode"
	KeyFontIndex           = "fontIndex"
	KeyFontFamily          = "fontFamily"
	KeyFontSize            = "fontSize"
	KeyWrapWidth           = "wrapWidth"
	KeyLineHeight          = "lineHeight"
	KeyLineBreak           = "lineBreak"
	KeyWordBreak           = "wordBreak"
	KeyBackgroundImagePath = "backgroundImagePath"
	KeyBackgroundAudioPath = "backgroundAudioPath"
	KeyTypingSound         = "typingSound"
	KeyUISound             = "uiSound"
	KeySessionPaths        = "sessionPaths"
)

// Settings is the typed view of the store document. Pointer fields are
// user overrides: nil means "use the built-in default".
type Settings struct {
	DarkMode   bool
	FontIndex  int
	FontFamily *string
	FontSize   int
	WrapWidth  int
	LineHeight float64
	LineBreak  string
	WordBreak  string

	BackgroundImagePath *string
	BackgroundAudioPath *string

	TypingSound bool
	UISound     bool

	// SessionPaths is the ordered list of files open in the last
	// session. Untitled tabs are never recorded here.
	SessionPaths []string
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		DarkMode:    true,
		FontIndex:   0,
		FontSize:    16,
		WrapWidth:   80,
		LineHeight:  1.8,
		LineBreak:   "normal",
		WordBreak:   "normal",
		TypingSound: true,
		UISound:     true,
	}
}
