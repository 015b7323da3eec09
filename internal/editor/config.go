package editor

// ViewConfig is the tagged cross-cutting configuration record: theme,
// font, sizing, highlighting, and focus mode, applied to the live view
// as one unit. The record is passed whole on every change, so the view
// is never observed with a half-applied mix of old and new settings.
//
// Wrap width, line height, and the break modes are process-wide style
// variables: every loaded document reads the same ViewConfig, never a
// per-tab copy.
type ViewConfig struct {
	Dark       bool
	FontFamily string
	FontSize   int
	WrapWidth  int
	LineHeight float64
	LineBreak  string
	WordBreak  string
	Highlight  bool
	Spotlight  bool
}
