// Package reference provides the single-slot cell that holds the delegate of a proxy.
package reference

import "sync"

// Reference holds one value that can be read and replaced. Each operation is atomic
// on its own; a caller that reads the value and then uses it may still observe a
// value that has since been swapped out.
type Reference struct {
	mu    sync.RWMutex
	value any
}

// New returns a reference holding v.
func New(v any) *Reference {
	return &Reference{value: v}
}

// Get returns the current value.
func (r *Reference) Get() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.value
}

// Set replaces the current value.
func (r *Reference) Set(v any) {
	r.mu.Lock()
	r.value = v
	r.mu.Unlock()
}

// Swap replaces the current value and returns the previous one.
func (r *Reference) Swap(v any) (previous any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, r.value = r.value, v
	return previous
}
