package concurrency

import (
	"errors"
	"sync"
)

var ErrBusy = errors.New("a page is already attached")

// ConcurrencyGuard runs at most one task at a time. A second caller is rejected
// with ErrBusy instead of waiting.
type ConcurrencyGuard struct {
	mu     sync.Mutex
	isBusy bool
}

func NewConcurrencyGuard() *ConcurrencyGuard {
	return &ConcurrencyGuard{}
}

func (g *ConcurrencyGuard) Execute(task func() error) error {
	g.mu.Lock()
	if g.isBusy {
		g.mu.Unlock()
		return ErrBusy
	}
	g.isBusy = true
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		g.isBusy = false
		g.mu.Unlock()
	}()
	return task()
}

// Busy reports whether a task is currently running.
func (g *ConcurrencyGuard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isBusy
}
