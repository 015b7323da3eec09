package settings

import (
	"os"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Store is the key/value settings document. It is backed by a JSON file
// but never touches the disk except in Load and Save; every surface
// holds its own Store handle over the same path.
type Store struct {
	mu       sync.RWMutex
	path     string // empty for in-memory stores
	doc      string // JSON object
	defaults *Settings
	notifier *notifier
}

// Open returns a Store over the file at path, loading the current
// document. A missing file yields an empty document, not an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path, doc: "{}", notifier: newNotifier()}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMemory returns an unbacked Store, used by tests and by surfaces
// that never persist (Save is a no-op).
func NewMemory() *Store {
	return &Store{doc: "{}", notifier: newNotifier()}
}

// Path returns the backing file path ("" for in-memory stores).
func (s *Store) Path() string {
	return s.path
}

// Load replaces the document from disk. A missing file resets the
// document to empty.
func (s *Store) Load() error {
	if s.path == "" {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			raw = []byte("{}")
		} else {
			return err
		}
	}
	if !gjson.ValidBytes(raw) {
		// A torn write from another surface; keep the in-memory document
		// rather than adopting garbage.
		return nil
	}

	s.mu.Lock()
	s.doc = string(raw)
	s.mu.Unlock()

	s.notifier.notify(Change{Type: ChangeReload})
	return nil
}

// Save flushes the document to disk atomically (temp file + rename).
// In-memory stores ignore Save.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}

	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(doc), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get returns the value at key. Result.Exists() is false for absent
// keys; a stored JSON null exists with type gjson.Null. The two cases
// are distinct on purpose.
func (s *Store) Get(key string) gjson.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gjson.Get(s.doc, key)
}

// Set stores value at key. A nil value stores an explicit JSON null.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	old := gjson.Get(s.doc, key).Raw
	doc, err := sjson.Set(s.doc, key, value)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.doc = doc
	newRaw := gjson.Get(s.doc, key).Raw
	s.mu.Unlock()

	s.notifier.notify(Change{Key: key, Type: ChangeSet, OldRaw: old, NewRaw: newRaw})
	return nil
}

// Delete removes key from the document.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	old := gjson.Get(s.doc, key).Raw
	doc, err := sjson.Delete(s.doc, key)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.doc = doc
	s.mu.Unlock()

	s.notifier.notify(Change{Key: key, Type: ChangeDelete, OldRaw: old})
	return nil
}

// Observe registers fn for store changes and returns a removal func.
func (s *Store) Observe(fn Observer) func() {
	return s.notifier.add(fn)
}

// SetDefaults replaces the built-in defaults used by Snapshot, letting
// a distribution overlay (see LoadDefaults) change what "unset" means.
func (s *Store) SetDefaults(rec Settings) {
	s.mu.Lock()
	s.defaults = &rec
	s.mu.Unlock()
}

// Snapshot decodes the document into a typed Settings record, filling
// defaults for keys that are absent or null.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	doc := s.doc
	def := s.defaults
	s.mu.RUnlock()

	out := Default()
	if def != nil {
		out = *def
	}

	if v := gjson.Get(doc, KeyDarkMode); v.Exists() && v.Type != gjson.Null {
		out.DarkMode = v.Bool()
	}
	if v := gjson.Get(doc, KeyFontIndex); v.Exists() && v.Type != gjson.Null {
		out.FontIndex = int(v.Int())
	}
	if v := gjson.Get(doc, KeyFontSize); v.Exists() && v.Type != gjson.Null {
		out.FontSize = int(v.Int())
	}
	if v := gjson.Get(doc, KeyWrapWidth); v.Exists() && v.Type != gjson.Null {
		out.WrapWidth = int(v.Int())
	}
	if v := gjson.Get(doc, KeyLineHeight); v.Exists() && v.Type != gjson.Null {
		out.LineHeight = v.Float()
	}
	if v := gjson.Get(doc, KeyLineBreak); v.Exists() && v.Type != gjson.Null {
		out.LineBreak = v.String()
	}
	if v := gjson.Get(doc, KeyWordBreak); v.Exists() && v.Type != gjson.Null {
		out.WordBreak = v.String()
	}
	if v := gjson.Get(doc, KeyTypingSound); v.Exists() && v.Type != gjson.Null {
		out.TypingSound = v.Bool()
	}
	if v := gjson.Get(doc, KeyUISound); v.Exists() && v.Type != gjson.Null {
		out.UISound = v.Bool()
	}
	if v := gjson.Get(doc, KeyFontFamily); v.Exists() && v.Type == gjson.String {
		name := v.String()
		out.FontFamily = &name
	}
	if v := gjson.Get(doc, KeyBackgroundImagePath); v.Exists() && v.Type == gjson.String {
		p := v.String()
		out.BackgroundImagePath = &p
	}
	if v := gjson.Get(doc, KeyBackgroundAudioPath); v.Exists() && v.Type == gjson.String {
		p := v.String()
		out.BackgroundAudioPath = &p
	}
	if v := gjson.Get(doc, KeySessionPaths); v.IsArray() {
		for _, elem := range v.Array() {
			out.SessionPaths = append(out.SessionPaths, elem.String())
		}
	}

	return out
}

// Put writes the whole typed record into the document. Pointer fields
// that are nil are stored as explicit null so another surface reading
// the file sees "reset" rather than "never set".
func (s *Store) Put(rec Settings) error {
	fields := []struct {
		key   string
		value any
	}{
		{KeyDarkMode, rec.DarkMode},
		{KeyFontIndex, rec.FontIndex},
		{KeyFontFamily, ptrValue(rec.FontFamily)},
		{KeyFontSize, rec.FontSize},
		{KeyWrapWidth, rec.WrapWidth},
		{KeyLineHeight, rec.LineHeight},
		{KeyLineBreak, rec.LineBreak},
		{KeyWordBreak, rec.WordBreak},
		{KeyBackgroundImagePath, ptrValue(rec.BackgroundImagePath)},
		{KeyBackgroundAudioPath, ptrValue(rec.BackgroundAudioPath)},
		{KeyTypingSound, rec.TypingSound},
		{KeyUISound, rec.UISound},
		{KeySessionPaths, rec.SessionPaths},
	}

	for _, f := range fields {
		if err := s.Set(f.key, f.value); err != nil {
			return err
		}
	}
	return nil
}

func ptrValue(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
