package concurrency

import "sync"

// Slot holds a handle that only exists after its owning goroutine finished setting
// it up. Users borrow it under the lock; before Store, and after Clear, With is a no-op.
type Slot[T any] struct {
	mu  sync.Mutex
	v   T
	set bool
}

func (s *Slot[T]) Store(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v = v
	s.set = true
}

// Clear empties the slot if the held handle satisfies match; a nil match clears
// unconditionally. It reports whether the slot was emptied.
func (s *Slot[T]) Clear(match func(T) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || (match != nil && !match(s.v)) {
		return false
	}
	var zero T
	s.v = zero
	s.set = false
	return true
}

// With calls fn with the held handle. It reports false if the slot is empty.
func (s *Slot[T]) With(fn func(T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return false
	}
	fn(s.v)
	return true
}

func (s *Slot[T]) Populated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}
