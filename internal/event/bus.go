package event

import (
	"sync"
	"sync/atomic"
)

// Bus is the cross-surface event channel.
type Bus interface {
	// Publish emits payload under topic to every matching subscription.
	// Delivery is synchronous and at-most-once per subscription.
	Publish(topic Topic, payload any)

	// PublishFrom is Publish with an explicit source label.
	PublishFrom(source string, topic Topic, payload any)

	// Subscribe registers a handler for every topic matching pattern.
	Subscribe(pattern Topic, h Handler, opts ...SubscriptionOption) Subscription

	// Stats returns delivery counters.
	Stats() Stats
}

// Stats carries bus delivery counters.
type Stats struct {
	Published uint64
	Delivered uint64
}

// bus is the default Bus implementation. Handlers run on the
// publisher's goroutine; a slow handler stalls the emission, which is
// acceptable here because all session work runs on one task loop.
type bus struct {
	mu   sync.RWMutex
	subs map[string]*subscription

	published atomic.Uint64
	delivered atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() Bus {
	return &bus{subs: make(map[string]*subscription)}
}

func (b *bus) Publish(topic Topic, payload any) {
	b.PublishFrom("", topic, payload)
}

func (b *bus) PublishFrom(source string, topic Topic, payload any) {
	e := newEvent(topic, payload, source)
	b.published.Add(1)

	// Snapshot matching subscriptions so handlers may subscribe or
	// cancel without deadlocking; a subscription added during delivery
	// does not see the in-flight event.
	b.mu.RLock()
	matched := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if topic.Match(s.pattern) {
			matched = append(matched, s)
		}
	}
	b.mu.RUnlock()

	for _, s := range matched {
		s.deliver(e)
		b.delivered.Add(1)
	}
}

func (b *bus) Subscribe(pattern Topic, h Handler, opts ...SubscriptionOption) Subscription {
	s := newSubscription(b, pattern, h, opts...)

	b.mu.Lock()
	b.subs[s.id] = s
	b.mu.Unlock()

	return s
}

func (b *bus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
	}
}

// remove drops a subscription from the registry.
func (b *bus) remove(id string) {
	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
}
