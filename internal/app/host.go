// Package app holds the application side of the bridge: the loop that polls the
// UI for user actions and the loopback session that answers them.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
	"github.com/rescp17/yourcontrols/internal/config"
	"github.com/rescp17/yourcontrols/pkg/ui"
)

// errUIClosed stops the host goroutines once the UI is gone for good.
var errUIClosed = errors.New("ui closed")

// Handler consumes user actions and produces periodic updates.
type Handler interface {
	Handle(ev appevents.AppEvent)
	Tick()
}

// Host drives a bridge: it drains user actions on every poll tick and asks the
// handler for an update on every metrics tick.
type Host struct {
	bridge  *ui.Bridge
	handler Handler
	cfg     config.HostConfig
}

func NewHost(bridge *ui.Bridge, handler Handler, cfg config.HostConfig) *Host {
	return &Host{bridge: bridge, handler: handler, cfg: cfg}
}

// Run polls until the UI has exited and every queued action was handled, or until
// ctx is cancelled.
func (h *Host) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(h.cfg.PollInterval)
		defer ticker.Stop()
		for {
			if err := h.drain(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(h.cfg.MetricsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if h.bridge.Exited() {
					continue
				}
				h.handler.Tick()
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, errUIClosed) {
		slog.Info("UI closed, host loop finished")
		return nil
	}
	return err
}

// drain handles every queued action. It returns errUIClosed once the UI is gone
// and nothing is left to read.
func (h *Host) drain() error {
	for {
		ev, err := h.bridge.NextMessage()
		switch {
		case err == nil:
			h.handler.Handle(ev)
		case errors.Is(err, ui.ErrEmpty):
			return nil
		case errors.Is(err, ui.ErrDisconnected):
			return errUIClosed
		default:
			return err
		}
	}
}
