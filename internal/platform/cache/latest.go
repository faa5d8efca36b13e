// Package cache provides in-memory holders for recently computed results.
package cache

import "sync"

// Latest holds the most recently stored value of T.
// Each Store replaces the previous value wholesale; there is no expiry.
// It is safe for concurrent use.
type Latest[T any] struct {
	mu    sync.RWMutex
	value T
	set   bool
}

// NewLatest creates an empty holder.
func NewLatest[T any]() *Latest[T] {
	return &Latest[T]{}
}

// Store replaces the held value.
func (l *Latest[T]) Store(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value = v
	l.set = true
}

// Load returns the held value and whether one was ever stored.
func (l *Latest[T]) Load() (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.value, l.set
}
