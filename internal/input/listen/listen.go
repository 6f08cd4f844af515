// Package listen provides the process-wide key listener registry.
//
// Components acquire a registration when they mount and must release it
// when they unmount. The release function is idempotent, so it can be
// deferred and also called explicitly.
package listen

import (
	"sync"

	"github.com/dshills/adreel/internal/input/key"
)

// Listener handles a key event and reports whether it consumed it.
type Listener func(ev key.Event) bool

// Registry holds the active key listeners in registration order.
type Registry struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []entry
}

type entry struct {
	id uint64
	fn Listener
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers fn and returns the function that removes it.
func (r *Registry) Add(fn Listener) (release func()) {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, entry{id: id, fn: fn})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(id) })
	}
}

func (r *Registry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.listeners {
		if e.id == id {
			r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

// Dispatch offers ev to each listener in registration order until one
// consumes it. It reports whether any listener did.
func (r *Registry) Dispatch(ev key.Event) bool {
	r.mu.Lock()
	snapshot := make([]Listener, len(r.listeners))
	for i, e := range r.listeners {
		snapshot[i] = e.fn
	}
	r.mu.Unlock()

	for _, fn := range snapshot {
		if fn(ev) {
			return true
		}
	}
	return false
}
