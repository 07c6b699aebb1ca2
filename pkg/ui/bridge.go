package ui

import (
	"log/slog"

	"github.com/rescp17/yourcontrols/pkg/protocol"
)

// Bridge wraps a Backend with one method per outbound notification, so application
// code never builds wire tags itself.
type Bridge struct {
	Backend
}

func NewBridge(b Backend) *Bridge {
	return &Bridge{Backend: b}
}

// --- Error and Status Messages ---

func (b *Bridge) Error(msg string) {
	b.Invoke(protocol.TypeError, protocol.Data(msg))
}

// Attempt shows the "attempting connection" status.
func (b *Bridge) Attempt() {
	b.Invoke(protocol.TypeAttempt, nil)
}

// Connected shows that the client side reached a server.
func (b *Bridge) Connected() {
	b.Invoke(protocol.TypeConnected, nil)
}

func (b *Bridge) ServerFail(reason string) {
	b.Invoke(protocol.TypeServerFail, protocol.Data(reason))
}

func (b *Bridge) ClientFail(reason string) {
	b.Invoke(protocol.TypeClientFail, protocol.Data(reason))
}

// --- Control State ---

func (b *Bridge) GainControl() {
	b.Invoke(protocol.TypeGainControl, nil)
}

func (b *Bridge) LoseControl() {
	b.Invoke(protocol.TypeLoseControl, nil)
}

// --- Server State ---

func (b *Bridge) ServerStarted() {
	b.Invoke(protocol.TypeServerStarted, nil)
}

// SetSessionCode publishes the code peers use to join a cloud session.
func (b *Bridge) SetSessionCode(code string) {
	b.Invoke(protocol.TypeSessionCode, protocol.Data(code))
}

// SetHost reports that the local user became the host of a relayed session.
func (b *Bridge) SetHost() {
	b.Invoke(protocol.TypeHost, nil)
}

// --- Connection Management ---

func (b *Bridge) NewConnection(name string) {
	b.Invoke(protocol.TypeNewConnection, protocol.Data(name))
}

func (b *Bridge) LostConnection(name string) {
	b.Invoke(protocol.TypeLostConnection, protocol.Data(name))
}

// --- Observer Mode ---

// Observing sets the local user's own observer state.
func (b *Bridge) Observing(observing bool) {
	if observing {
		b.Invoke(protocol.TypeObserving, nil)
	} else {
		b.Invoke(protocol.TypeStopObserving, nil)
	}
}

// SetObserving sets a peer's observer state.
func (b *Bridge) SetObserving(name string, observing bool) {
	if observing {
		b.Invoke(protocol.TypeSetObserving, protocol.Data(name))
	} else {
		b.Invoke(protocol.TypeSetNotObserving, protocol.Data(name))
	}
}

// SetInControl names the peer currently flying.
func (b *Bridge) SetInControl(name string) {
	b.Invoke(protocol.TypeSetInControl, protocol.Data(name))
}

// --- Configuration ---

func (b *Bridge) AddAircraft(name string) {
	b.Invoke(protocol.TypeAddAircraft, protocol.Data(name))
}

// Version announces an available update.
func (b *Bridge) Version(version string) {
	b.Invoke(protocol.TypeVersion, protocol.Data(version))
}

func (b *Bridge) UpdateFailed() {
	b.Invoke(protocol.TypeUpdateFailed, nil)
}

// SendConfig pushes an opaque JSON configuration blob to the UI.
func (b *Bridge) SendConfig(value string) {
	b.Invoke(protocol.TypeConfig, protocol.Data(value))
}

// --- Network Statistics ---

// SendNetwork publishes a metrics snapshot. The round-trip time is halved to show ping.
func (b *Bridge) SendNetwork(stats protocol.LinkStats) {
	data, err := protocol.EncodeMetrics(protocol.MetricsFromStats(stats))
	if err != nil {
		slog.Debug("Dropping metrics", "error", err)
		return
	}
	b.Invoke(protocol.TypeMetrics, &data)
}
