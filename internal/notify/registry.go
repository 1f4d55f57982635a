package notify

import (
	"context"
	"sync"
)

// Registry fans a notification out to every registered sink. It implements
// Notifier itself so callers can hold a single handle.
type Registry struct {
	mu    sync.RWMutex
	sinks []Notifier
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a sink. Order of delivery follows registration order.
func (r *Registry) Register(n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks = append(r.sinks, n)
}

// Notify delivers the notification to every sink.
func (r *Registry) Notify(ctx context.Context, level Level, message string) {
	r.mu.RLock()
	sinks := make([]Notifier, len(r.sinks))
	copy(sinks, r.sinks)
	r.mu.RUnlock()

	for _, n := range sinks {
		n.Notify(ctx, level, message)
	}
}
