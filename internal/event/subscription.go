package event

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Handler receives events delivered to a subscription.
type Handler func(e Event)

// Subscription is a live registration on the bus.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Pattern returns the subscribed topic pattern.
	Pattern() Topic

	// IsActive reports whether the subscription still receives events.
	IsActive() bool

	// Cancel permanently removes the subscription. Safe to call more
	// than once.
	Cancel()
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*subscription)

// Once auto-cancels the subscription after its first delivery.
func Once() SubscriptionOption {
	return func(s *subscription) {
		s.once = true
	}
}

type subscription struct {
	id        string
	pattern   Topic
	handler   Handler
	once      bool
	cancelled atomic.Bool

	bus *bus
}

func newSubscription(b *bus, pattern Topic, h Handler, opts ...SubscriptionOption) *subscription {
	s := &subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: h,
		bus:     b,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *subscription) ID() string     { return s.id }
func (s *subscription) Pattern() Topic { return s.pattern }
func (s *subscription) IsActive() bool { return !s.cancelled.Load() }

func (s *subscription) Cancel() {
	if s.cancelled.CompareAndSwap(false, true) {
		s.bus.remove(s.id)
	}
}

// deliver invokes the handler if the subscription is still active,
// honoring Once semantics.
func (s *subscription) deliver(e Event) {
	if s.cancelled.Load() {
		return
	}
	if s.once {
		// Cancel before the handler runs so a re-entrant publish cannot
		// deliver twice.
		if !s.cancelled.CompareAndSwap(false, true) {
			return
		}
		s.bus.remove(s.id)
	}
	s.handler(e)
}
