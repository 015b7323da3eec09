package editor

import "testing"

func TestLoadSwapsStateAndClearsDims(t *testing.T) {
	v := NewView()
	v.Load(NewState("first"), ViewConfig{FontSize: 16})
	v.SetDimRanges([]Range{{Start: 0, End: 2}})

	v.Load(NewState("second"), ViewConfig{FontSize: 16})
	if v.State().Text() != "second" {
		t.Errorf("Text = %q", v.State().Text())
	}
	if v.DimRanges() != nil {
		t.Error("dim ranges must not survive a state swap")
	}
}

func TestConfigureLeavesDocumentAlone(t *testing.T) {
	v := NewView()
	v.Load(NewState("text"), ViewConfig{FontSize: 16})
	v.Insert("x")
	before := v.State()

	v.Configure(ViewConfig{FontSize: 22, Dark: true})

	after := v.State()
	if after.Text() != before.Text() || after.Cursor() != before.Cursor() {
		t.Error("Configure touched document state")
	}
	if !after.CanUndo() {
		t.Error("Configure dropped undo history")
	}
	if v.Config().FontSize != 22 {
		t.Errorf("FontSize = %d, want 22", v.Config().FontSize)
	}
}

func TestOnUpdateDocChanged(t *testing.T) {
	v := NewView()
	v.Load(NewState("ab"), ViewConfig{})

	var updates []Update
	cancel := v.OnUpdate(func(u Update) { updates = append(updates, u) })
	defer cancel()

	v.Insert("c")      // doc change
	v.SetCursor(0)     // motion only
	v.Delete(Range{})  // no-op delete
	v.Undo()           // doc change

	if len(updates) != 4 {
		t.Fatalf("got %d updates, want 4", len(updates))
	}
	wantDoc := []bool{true, false, false, true}
	for i, u := range updates {
		if u.DocChanged != wantDoc[i] {
			t.Errorf("update %d DocChanged = %v, want %v", i, u.DocChanged, wantDoc[i])
		}
	}
}

func TestListenerRemoval(t *testing.T) {
	v := NewView()
	v.Load(NewState(""), ViewConfig{})

	count := 0
	cancel := v.OnUpdate(func(Update) { count++ })
	v.Insert("a")
	cancel()
	v.Insert("b")

	if count != 1 {
		t.Errorf("listener ran %d times after removal, want 1", count)
	}
}
