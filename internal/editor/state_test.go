package editor

import "testing"

func TestInsertAndDelete(t *testing.T) {
	s := NewState("hello world")

	s = s.Insert(5, ",")
	if s.Text() != "hello, world" {
		t.Errorf("Text = %q", s.Text())
	}
	if s.Cursor() != 6 {
		t.Errorf("Cursor = %d, want 6", s.Cursor())
	}

	s = s.Delete(Range{Start: 5, End: 6})
	if s.Text() != "hello world" {
		t.Errorf("Text = %q", s.Text())
	}
	if s.Cursor() != 5 {
		t.Errorf("Cursor = %d, want 5", s.Cursor())
	}
}

func TestInsertDoesNotMutateReceiver(t *testing.T) {
	orig := NewState("abc")
	_ = orig.Insert(0, "x")
	if orig.Text() != "abc" {
		t.Errorf("receiver mutated: %q", orig.Text())
	}
}

func TestUndoRedo(t *testing.T) {
	s := NewState("a")
	s = s.Insert(1, "b")
	s = s.Insert(2, "c")

	s = s.Undo()
	if s.Text() != "ab" {
		t.Errorf("after undo Text = %q, want ab", s.Text())
	}
	s = s.Undo()
	if s.Text() != "a" {
		t.Errorf("after undo Text = %q, want a", s.Text())
	}

	s = s.Redo()
	if s.Text() != "ab" {
		t.Errorf("after redo Text = %q, want ab", s.Text())
	}
	if !s.CanRedo() || !s.CanUndo() {
		t.Error("both stacks should be non-empty mid-history")
	}
}

func TestUndoOnEmptyHistory(t *testing.T) {
	s := NewState("text")
	if got := s.Undo(); got.Text() != "text" {
		t.Errorf("Undo with no history changed text to %q", got.Text())
	}
}

func TestEditClearsRedo(t *testing.T) {
	s := NewState("")
	s = s.Insert(0, "one")
	s = s.Undo()
	s = s.Insert(0, "two")

	if s.CanRedo() {
		t.Error("redo stack must clear on a fresh edit")
	}
}

func TestHistorySurvivesValueCopies(t *testing.T) {
	// Tab switches copy State values around; undo depth must survive.
	s := NewState("a")
	s = s.Insert(1, "b")

	stored := s // snapshot into a tab
	restored := stored
	restored = restored.Undo()
	if restored.Text() != "a" {
		t.Errorf("undo after copy = %q, want a", restored.Text())
	}

	// The original copy is unaffected by the other copy's undo.
	if stored.Text() != "ab" {
		t.Errorf("aliasing between copies: %q", stored.Text())
	}
}

func TestCursorClamping(t *testing.T) {
	s := NewState("ab")
	if got := s.WithCursor(99).Cursor(); got != 2 {
		t.Errorf("clamped cursor = %d, want 2", got)
	}
	if got := s.WithCursor(-1).Cursor(); got != 0 {
		t.Errorf("clamped cursor = %d, want 0", got)
	}
}

func TestHistoryDepthBounded(t *testing.T) {
	s := NewState("")
	for i := 0; i < maxHistoryDepth+50; i++ {
		s = s.Insert(s.Len(), "x")
	}
	if len(s.undo) != maxHistoryDepth {
		t.Errorf("undo depth = %d, want %d", len(s.undo), maxHistoryDepth)
	}
}
