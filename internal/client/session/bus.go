package session

import "sync"

// EventKind names the auth signals carried by the bus. The names are part
// of the observable contract shared with the web client.
type EventKind string

const (
	// EventStorageChanged fires when the persistent store was modified,
	// including by another process sharing the same database file.
	EventStorageChanged EventKind = "storage-changed"

	// EventAuthChanged fires after login, logout, and registration.
	EventAuthChanged EventKind = "auth-changed"

	// EventAuthFatal fires on an irrecoverable authorization failure,
	// after a refresh attempt has also failed.
	EventAuthFatal EventKind = "auth-fatal-401"
)

// Bus is an in-process, synchronous publish/subscribe channel for auth
// signals. Delivery order between subscribers of the same kind is not
// guaranteed. The bus owns no data beyond its subscriber list.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[EventKind]map[int]func(EventKind)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[EventKind]map[int]func(EventKind))}
}

// Subscribe registers fn for the given kind and returns a cancel function.
// Cancelling twice is harmless.
func (b *Bus) Subscribe(kind EventKind, fn func(EventKind)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[kind] == nil {
		b.subs[kind] = make(map[int]func(EventKind))
	}
	id := b.nextID
	b.nextID++
	b.subs[kind][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[kind], id)
	}
}

// Publish delivers the signal synchronously to every current subscriber.
// Handlers run outside the bus lock, so they may subscribe or publish.
func (b *Bus) Publish(kind EventKind) {
	b.mu.Lock()
	handlers := make([]func(EventKind), 0, len(b.subs[kind]))
	for _, fn := range b.subs[kind] {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(kind)
	}
}
