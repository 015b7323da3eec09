package settings

import "sync"

// ChangeType classifies a store change.
type ChangeType int

const (
	// ChangeSet indicates a key was set or updated.
	ChangeSet ChangeType = iota

	// ChangeDelete indicates a key was removed.
	ChangeDelete

	// ChangeReload indicates the whole document was replaced from disk.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes one store mutation.
type Change struct {
	// Key is the changed key; empty for reloads.
	Key string

	// Type is the kind of change.
	Type ChangeType

	// OldRaw and NewRaw are the raw JSON values ("" when absent).
	OldRaw string
	NewRaw string
}

// Observer is called after a store mutation.
type Observer func(change Change)

// notifier fans a change out to registered observers. Observers run on
// the mutating goroutine; the order between them is unspecified.
type notifier struct {
	mu        sync.Mutex
	observers map[int]Observer
	nextID    int
}

func newNotifier() *notifier {
	return &notifier{observers: make(map[int]Observer)}
}

// add registers fn and returns a removal function.
func (n *notifier) add(fn Observer) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.observers[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.observers, id)
		n.mu.Unlock()
	}
}

func (n *notifier) notify(change Change) {
	n.mu.Lock()
	observers := make([]Observer, 0, len(n.observers))
	for _, fn := range n.observers {
		observers = append(observers, fn)
	}
	n.mu.Unlock()

	for _, fn := range observers {
		fn(change)
	}
}
