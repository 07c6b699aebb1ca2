// Package ui is the contract between the application's control logic and whichever
// UI backend renders it. Application code talks to a *Bridge and never learns which
// backend is active.
package ui

import (
	"fmt"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
	"github.com/rescp17/yourcontrols/internal/config"
	"github.com/rescp17/yourcontrols/pkg/concurrency"
	"github.com/rescp17/yourcontrols/pkg/protocol"
	"github.com/rescp17/yourcontrols/pkg/ui/native"
	"github.com/rescp17/yourcontrols/pkg/ui/web"
)

var (
	// ErrEmpty is returned by NextMessage when no message is queued.
	ErrEmpty = concurrency.ErrEmpty
	// ErrDisconnected is returned by NextMessage once the UI goroutine is gone.
	// It is terminal: the handle will never produce another message.
	ErrDisconnected = concurrency.ErrDisconnected
)

// Backend is implemented by every renderer that can sit behind the bridge.
// All methods are non-blocking and safe to call from any goroutine.
type Backend interface {
	// Exited reports whether the UI goroutine has terminated.
	Exited() bool

	// NextMessage returns the oldest pending user action, ErrEmpty, or ErrDisconnected.
	NextMessage() (appevents.AppEvent, error)

	// Invoke delivers a notification to the UI at most once. Delivery failures
	// are swallowed: a UI that is not listening must not disturb the application.
	Invoke(tag protocol.MessageType, data *string)
}

var (
	_ Backend = (*native.Backend)(nil)
	_ Backend = (*web.Backend)(nil)
)

// Setup constructs the configured backend, spawns its UI goroutine and returns the
// bridge handle. It does not wait for the UI to become ready.
func Setup(title string, cfg config.Config) (*Bridge, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.UI.Backend {
	case config.BackendNative:
		backend = native.Setup(title, cfg.UI)
	case config.BackendWeb:
		backend, err = web.Setup(title, cfg.UI, cfg.Web)
	default:
		return nil, fmt.Errorf("unknown ui backend %q", cfg.UI.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("setup %s backend: %w", cfg.UI.Backend, err)
	}
	return NewBridge(backend), nil
}
