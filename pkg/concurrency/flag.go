package concurrency

import "sync/atomic"

// ExitFlag is a one-way flag: once set it stays set.
type ExitFlag struct {
	v atomic.Bool
}

// Set raises the flag. It reports true only for the call that changed it.
func (f *ExitFlag) Set() bool {
	return f.v.CompareAndSwap(false, true)
}

func (f *ExitFlag) IsSet() bool {
	return f.v.Load()
}
