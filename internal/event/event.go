package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single emission on the bus. Events are immutable once
// published; handlers must not retain and mutate the payload.
type Event struct {
	// Topic is the concrete topic this event was published under.
	Topic Topic

	// Payload is the event-specific data. Cross-surface payloads are raw
	// JSON ([]byte) so both processes parse with the same rules.
	Payload any

	// ID uniquely identifies this emission.
	ID string

	// Source names the surface or component that published the event.
	Source string

	// Time is when the event was published.
	Time time.Time
}

// newEvent stamps identity and time onto a publication.
func newEvent(topic Topic, payload any, source string) Event {
	return Event{
		Topic:   topic,
		Payload: payload,
		ID:      uuid.NewString(),
		Source:  source,
		Time:    time.Now(),
	}
}
