package concurrency

import (
	"errors"
	"sync"
)

var (
	// ErrEmpty means nothing is queued right now.
	ErrEmpty = errors.New("mailbox is empty")
	// ErrDisconnected means the producing side is gone and nothing more will arrive.
	ErrDisconnected = errors.New("mailbox is disconnected")
)

// Mailbox is a bounded FIFO queue with non-blocking operations on both ends.
// Any number of goroutines may Send; one consumer receives. Once closed, queued
// values are still delivered, after which TryRecv reports ErrDisconnected.
type Mailbox[T any] struct {
	mu     sync.RWMutex
	closed bool
	ch     chan T
}

func NewMailbox[T any](size int) *Mailbox[T] {
	if size < 1 {
		size = 1
	}
	return &Mailbox[T]{ch: make(chan T, size)}
}

// Send queues v without blocking. It reports false if the mailbox is closed or full;
// the value is dropped in that case.
func (m *Mailbox[T]) Send(v T) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return false
	}
	select {
	case m.ch <- v:
		return true
	default:
		return false
	}
}

// TryRecv returns the oldest queued value, ErrEmpty, or ErrDisconnected.
func (m *Mailbox[T]) TryRecv() (T, error) {
	select {
	case v, ok := <-m.ch:
		if !ok {
			var zero T
			return zero, ErrDisconnected
		}
		return v, nil
	default:
		var zero T
		return zero, ErrEmpty
	}
}

// Drain removes the values queued at the moment of the call, in order. Values sent
// while draining stay queued for the next call.
func (m *Mailbox[T]) Drain() []T {
	n := len(m.ch)
	if n == 0 {
		return nil
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := m.TryRecv()
		if err != nil {
			break
		}
		out = append(out, v)
	}
	return out
}

// Len reports how many values are queued.
func (m *Mailbox[T]) Len() int {
	return len(m.ch)
}

// Close marks the producing side as gone. It is safe to call more than once.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	close(m.ch)
}
