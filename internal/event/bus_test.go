package event

import (
	"testing"
)

func TestPublishDeliversToMatchingSubscribers(t *testing.T) {
	b := NewBus()

	var got []Topic
	b.Subscribe("settings.changed", func(e Event) {
		got = append(got, e.Topic)
	})
	b.Subscribe("session.tab.opened", func(e Event) {
		t.Error("non-matching subscriber must not receive the event")
	})

	b.Publish("settings.changed", nil)

	if len(got) != 1 || got[0] != "settings.changed" {
		t.Errorf("deliveries = %v, want exactly one settings.changed", got)
	}
}

func TestPublishAtMostOncePerEmission(t *testing.T) {
	b := NewBus()

	count := 0
	b.Subscribe("audio.toggled", func(Event) { count++ })

	b.Publish("audio.toggled", nil)
	b.Publish("audio.toggled", nil)

	if count != 2 {
		t.Errorf("handler ran %d times for 2 emissions, want 2", count)
	}
}

func TestWildcardMatchesSingleSegment(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"session.tab.opened", "session.tab.*", true},
		{"session.tab.opened", "session.*.opened", true},
		{"session.tab.opened", "session.*", false},
		{"session.tab", "session.*", true},
		{"settings.changed", "settings.changed", true},
		{"settings.changed", "session.changed", false},
	}

	for _, tt := range tests {
		if got := tt.topic.Match(tt.pattern); got != tt.want {
			t.Errorf("%q.Match(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := NewBus()

	count := 0
	sub := b.Subscribe("settings.changed", func(Event) { count++ })

	b.Publish("settings.changed", nil)
	sub.Cancel()
	b.Publish("settings.changed", nil)

	if count != 1 {
		t.Errorf("handler ran %d times after cancel, want 1", count)
	}
	if sub.IsActive() {
		t.Error("subscription still active after Cancel")
	}
}

func TestOnceAutoCancels(t *testing.T) {
	b := NewBus()

	count := 0
	b.Subscribe("settings.changed", func(Event) { count++ }, Once())

	b.Publish("settings.changed", nil)
	b.Publish("settings.changed", nil)

	if count != 1 {
		t.Errorf("once handler ran %d times, want 1", count)
	}
}

func TestPublishStampsMetadata(t *testing.T) {
	b := NewBus()

	var got Event
	b.Subscribe("settings.changed", func(e Event) { got = e })
	b.PublishFrom("settings-window", "settings.changed", []byte(`{}`))

	if got.ID == "" {
		t.Error("event ID not stamped")
	}
	if got.Source != "settings-window" {
		t.Errorf("Source = %q, want settings-window", got.Source)
	}
	if got.Time.IsZero() {
		t.Error("event time not stamped")
	}
}

func TestStats(t *testing.T) {
	b := NewBus()
	b.Subscribe("a.b", func(Event) {})
	b.Subscribe("a.*", func(Event) {})

	b.Publish("a.b", nil)

	s := b.Stats()
	if s.Published != 1 || s.Delivered != 2 {
		t.Errorf("Stats = %+v, want 1 published / 2 delivered", s)
	}
}
