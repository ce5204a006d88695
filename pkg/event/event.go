// Package event provides a small synchronous event dispatcher.
//
// A Bus is owned by whoever wires the application together; the cart
// provider fires CartUpdated on it after every state change.
package event

import (
	"sync"
)

// Names fired by the storefront.
const (
	CartUpdated   = "cart.updated"
	OrderPlaced   = "order.placed"
	UserLoggedIn  = "user.logged_in"
	UserLoggedOut = "user.logged_out"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

// Bus holds listeners keyed by event name.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
// A nil bus is a no-op.
func (b *Bus) Fire(event string, payload interface{}) {
	for _, h := range b.snapshot(event) {
		h(payload)
	}
}

func (b *Bus) snapshot(event string) []Handler {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	return hs
}
