package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

func TestNullAndAbsentAreDistinct(t *testing.T) {
	s := NewMemory()

	if s.Get(KeyBackgroundImagePath).Exists() {
		t.Fatal("fresh store must not contain the key")
	}

	if err := s.Set(KeyBackgroundImagePath, nil); err != nil {
		t.Fatal(err)
	}

	v := s.Get(KeyBackgroundImagePath)
	if !v.Exists() {
		t.Fatal("explicit null must exist in the document")
	}
	if v.Type != gjson.Null {
		t.Errorf("Type = %v, want gjson.Null", v.Type)
	}
}

func TestSetGetDelete(t *testing.T) {
	s := NewMemory()

	if err := s.Set(KeyFontSize, 18); err != nil {
		t.Fatal(err)
	}
	if got := s.Get(KeyFontSize).Int(); got != 18 {
		t.Errorf("Get = %d, want 18", got)
	}

	if err := s.Delete(KeyFontSize); err != nil {
		t.Fatal(err)
	}
	if s.Get(KeyFontSize).Exists() {
		t.Error("key still present after Delete")
	}
}

func TestSnapshotFillsDefaults(t *testing.T) {
	s := NewMemory()
	if err := s.Set(KeyFontSize, 20); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	if snap.FontSize != 20 {
		t.Errorf("FontSize = %d, want 20", snap.FontSize)
	}
	if snap.LineHeight != Default().LineHeight {
		t.Errorf("LineHeight = %v, want default %v", snap.LineHeight, Default().LineHeight)
	}
	if snap.BackgroundImagePath != nil {
		t.Errorf("BackgroundImagePath = %v, want nil", *snap.BackgroundImagePath)
	}
}

func TestSnapshotNullOverrideIsNil(t *testing.T) {
	s := NewMemory()
	if err := s.Set(KeyBackgroundAudioPath, "/music/rain.mp3"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(KeyBackgroundAudioPath, nil); err != nil {
		t.Fatal(err)
	}

	if snap := s.Snapshot(); snap.BackgroundAudioPath != nil {
		t.Errorf("BackgroundAudioPath = %q, want nil after null", *snap.BackgroundAudioPath)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	rec := Default()
	rec.FontSize = 22
	rec.SessionPaths = []string{"/a.txt", "/b.txt"}
	img := "/pictures/bg.png"
	rec.BackgroundImagePath = &img

	if err := s.Put(rec); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	other, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	snap := other.Snapshot()
	if snap.FontSize != 22 {
		t.Errorf("FontSize = %d, want 22", snap.FontSize)
	}
	if len(snap.SessionPaths) != 2 || snap.SessionPaths[0] != "/a.txt" {
		t.Errorf("SessionPaths = %v", snap.SessionPaths)
	}
	if snap.BackgroundImagePath == nil || *snap.BackgroundImagePath != img {
		t.Errorf("BackgroundImagePath = %v, want %q", snap.BackgroundImagePath, img)
	}
}

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot(); got.FontSize != Default().FontSize {
		t.Errorf("missing file must yield defaults, got %+v", got)
	}
}

func TestLoadIgnoresTornWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(KeyFontSize, 19); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(`{"fontSize": 2`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	if got := s.Get(KeyFontSize).Int(); got != 19 {
		t.Errorf("document adopted torn write; FontSize = %d, want 19", got)
	}
}

func TestObserve(t *testing.T) {
	s := NewMemory()

	var changes []Change
	cancel := s.Observe(func(c Change) { changes = append(changes, c) })

	if err := s.Set(KeyDarkMode, false); err != nil {
		t.Fatal(err)
	}
	cancel()
	if err := s.Set(KeyDarkMode, true); err != nil {
		t.Fatal(err)
	}

	if len(changes) != 1 {
		t.Fatalf("observer saw %d changes, want 1", len(changes))
	}
	if changes[0].Key != KeyDarkMode || changes[0].Type != ChangeSet {
		t.Errorf("change = %+v", changes[0])
	}
}

func TestSetDefaultsChangesSnapshotBaseline(t *testing.T) {
	s := NewMemory()
	def := Default()
	def.WrapWidth = 100
	def.DarkMode = false
	s.SetDefaults(def)

	got := s.Snapshot()
	if got.WrapWidth != 100 || got.DarkMode {
		t.Fatalf("snapshot baseline = %+v, want overlaid defaults", got)
	}

	// Stored values still win over the overlaid defaults.
	if err := s.Set(KeyWrapWidth, 60); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().WrapWidth; got != 60 {
		t.Fatalf("wrapWidth = %d, want stored 60", got)
	}
}
