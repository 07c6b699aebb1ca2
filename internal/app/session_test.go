package app

import (
	"encoding/json"
	"net/netip"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
	"github.com/rescp17/yourcontrols/internal/config"
	"github.com/rescp17/yourcontrols/pkg/concurrency"
	"github.com/rescp17/yourcontrols/pkg/protocol"
	"github.com/rescp17/yourcontrols/pkg/ui"
)

type call struct {
	tag  protocol.MessageType
	data string
}

// fakeBackend queues scripted user actions and records every notification.
type fakeBackend struct {
	mu     sync.Mutex
	exited concurrency.ExitFlag
	inbox  *concurrency.Mailbox[appevents.AppEvent]
	calls  []call
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{inbox: concurrency.NewMailbox[appevents.AppEvent](64)}
}

func (f *fakeBackend) Exited() bool { return f.exited.IsSet() }

func (f *fakeBackend) NextMessage() (appevents.AppEvent, error) { return f.inbox.TryRecv() }

func (f *fakeBackend) Invoke(tag protocol.MessageType, data *string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := call{tag: tag}
	if data != nil {
		c.data = *data
	}
	f.calls = append(f.calls, c)
}

func (f *fakeBackend) close() {
	f.exited.Set()
	f.inbox.Close()
}

func (f *fakeBackend) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeBackend) tags() []protocol.MessageType {
	var out []protocol.MessageType
	for _, c := range f.recorded() {
		out = append(out, c.tag)
	}
	return out
}

func (f *fakeBackend) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func newTestSession(t *testing.T, version string) (*Session, *fakeBackend) {
	t.Helper()
	cfg := config.Default()
	cfg.Host.Aircraft = []string{"A320neo", "C172 Skyhawk"}
	backend := newFakeBackend()
	return NewSession(ui.NewBridge(backend), cfg, version), backend
}

func TestSession_Startup(t *testing.T) {
	s, backend := newTestSession(t, "2.1.0")

	s.Handle(appevents.StartupMsg{})

	calls := backend.recorded()
	require.Len(t, calls, 4)
	assert.Equal(t, call{protocol.TypeAddAircraft, "A320neo"}, calls[0])
	assert.Equal(t, call{protocol.TypeAddAircraft, "C172 Skyhawk"}, calls[1])
	assert.Equal(t, protocol.TypeConfig, calls[2].tag)
	assert.Equal(t, call{protocol.TypeVersion, "2.1.0"}, calls[3])

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(calls[2].data), &cfg))
	assert.EqualValues(t, 7777, cfg[protocol.ConfigKeyPort])
	assert.EqualValues(t, 30, cfg[protocol.ConfigKeyTimeout])
}

func TestSession_StartupWithoutVersion(t *testing.T) {
	s, backend := newTestSession(t, "")

	s.Handle(appevents.StartupMsg{})

	assert.NotContains(t, backend.tags(), protocol.TypeVersion)
}

func TestSession_StartServer(t *testing.T) {
	tests := []struct {
		name   string
		method appevents.ConnectionMethod
		want   []protocol.MessageType
	}{
		{
			name:   "direct",
			method: appevents.Direct,
			want:   []protocol.MessageType{protocol.TypeServerStarted, protocol.TypeGainControl, protocol.TypeNewConnection},
		},
		{
			name:   "relay",
			method: appevents.Relay,
			want:   []protocol.MessageType{protocol.TypeServerStarted, protocol.TypeHost, protocol.TypeGainControl, protocol.TypeNewConnection},
		},
		{
			name:   "cloud server",
			method: appevents.CloudServer,
			want:   []protocol.MessageType{protocol.TypeServerStarted, protocol.TypeSessionCode, protocol.TypeGainControl, protocol.TypeNewConnection},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, backend := newTestSession(t, "")
			s.Handle(appevents.StartServerMsg{Username: "Alice", Port: 7777, Method: tt.method})
			assert.Equal(t, tt.want, backend.tags())
		})
	}
}

func TestSession_StartServerSessionCode(t *testing.T) {
	s, backend := newTestSession(t, "")
	s.Handle(appevents.StartServerMsg{Username: "Alice", Method: appevents.CloudServer})

	calls := backend.recorded()
	require.GreaterOrEqual(t, len(calls), 2)
	assert.Equal(t, protocol.TypeSessionCode, calls[1].tag)
	assert.Len(t, calls[1].data, 6)
	assert.Regexp(t, `^[0-9A-F]{6}$`, calls[1].data)
}

func TestSession_StartServerRequiresUsername(t *testing.T) {
	s, backend := newTestSession(t, "")
	s.Handle(appevents.StartServerMsg{Username: "  "})

	assert.Equal(t, []call{{protocol.TypeError, "Username is required"}}, backend.recorded())
}

func TestSession_StartServerTwice(t *testing.T) {
	s, backend := newTestSession(t, "")
	s.Handle(appevents.StartServerMsg{Username: "Alice"})
	backend.reset()

	s.Handle(appevents.StartServerMsg{Username: "Alice"})
	assert.Equal(t, []call{{protocol.TypeServerFail, "Already in a session"}}, backend.recorded())
}

func TestSession_Connect(t *testing.T) {
	ip := netip.MustParseAddr("192.168.1.20")
	port := uint16(7777)
	code := "ABC123"
	empty := ""

	tests := []struct {
		name string
		msg  appevents.ConnectMsg
		want []call
	}{
		{
			name: "direct",
			msg:  appevents.ConnectMsg{Username: "Bob", IP: &ip, Port: &port, Method: appevents.Direct},
			want: []call{
				{tag: protocol.TypeAttempt},
				{tag: protocol.TypeConnected},
				{protocol.TypeNewConnection, LoopbackHost},
				{protocol.TypeSetInControl, LoopbackHost},
			},
		},
		{
			name: "cloud server",
			msg:  appevents.ConnectMsg{Username: "Bob", SessionID: &code, Method: appevents.CloudServer},
			want: []call{
				{tag: protocol.TypeAttempt},
				{tag: protocol.TypeConnected},
				{protocol.TypeNewConnection, LoopbackHost},
				{protocol.TypeSetInControl, LoopbackHost},
			},
		},
		{
			name: "missing username",
			msg:  appevents.ConnectMsg{IP: &ip, Method: appevents.Direct},
			want: []call{{tag: protocol.TypeAttempt}, {protocol.TypeClientFail, "Username is required"}},
		},
		{
			name: "direct without address",
			msg:  appevents.ConnectMsg{Username: "Bob", Hostname: &empty, Method: appevents.Direct},
			want: []call{{tag: protocol.TypeAttempt}, {protocol.TypeClientFail, "No address given"}},
		},
		{
			name: "cloud without code",
			msg:  appevents.ConnectMsg{Username: "Bob", Method: appevents.CloudServer},
			want: []call{{tag: protocol.TypeAttempt}, {protocol.TypeClientFail, "Session code is required"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, backend := newTestSession(t, "")
			s.Handle(tt.msg)
			assert.Equal(t, tt.want, backend.recorded())
		})
	}
}

func TestSession_Disconnect(t *testing.T) {
	t.Run("host", func(t *testing.T) {
		s, backend := newTestSession(t, "")
		s.Handle(appevents.StartServerMsg{Username: "Alice"})
		backend.reset()

		s.Handle(appevents.DisconnectMsg{})
		assert.Equal(t, []call{
			{protocol.TypeServerFail, "Server stopped"},
			{protocol.TypeLostConnection, LoopbackCopilot},
		}, backend.recorded())
	})

	t.Run("client", func(t *testing.T) {
		s, backend := newTestSession(t, "")
		code := "ABC123"
		s.Handle(appevents.ConnectMsg{Username: "Bob", SessionID: &code, Method: appevents.Relay})
		backend.reset()

		s.Handle(appevents.DisconnectMsg{})
		assert.Equal(t, []call{
			{protocol.TypeClientFail, "Disconnected"},
			{protocol.TypeLostConnection, LoopbackHost},
		}, backend.recorded())
	})

	t.Run("idle", func(t *testing.T) {
		s, backend := newTestSession(t, "")
		s.Handle(appevents.DisconnectMsg{})
		assert.Empty(t, backend.recorded())
	})
}

func TestSession_ControlTransfer(t *testing.T) {
	s, backend := newTestSession(t, "")
	s.Handle(appevents.StartServerMsg{Username: "Alice"})
	backend.reset()

	s.Handle(appevents.TransferControlMsg{Target: LoopbackCopilot})
	assert.Equal(t, []call{
		{tag: protocol.TypeLoseControl},
		{protocol.TypeSetInControl, LoopbackCopilot},
	}, backend.recorded())

	backend.reset()
	s.Handle(appevents.TransferControlMsg{Target: LoopbackCopilot})
	assert.Equal(t, []call{{protocol.TypeError, "Cannot give control to Copilot"}}, backend.recorded())

	backend.reset()
	s.Handle(appevents.ForceTakeControlMsg{})
	assert.Equal(t, []call{
		{tag: protocol.TypeGainControl},
		{protocol.TypeSetInControl, "Alice"},
	}, backend.recorded())

	backend.reset()
	s.Handle(appevents.ForceTakeControlMsg{})
	assert.Empty(t, backend.recorded(), "taking control twice is a no-op")
}

func TestSession_Observers(t *testing.T) {
	s, backend := newTestSession(t, "")
	s.Handle(appevents.StartServerMsg{Username: "Alice"})
	backend.reset()

	s.Handle(appevents.SetObserverMsg{Target: LoopbackCopilot, IsObserver: true})
	s.Handle(appevents.SetObserverMsg{Target: LoopbackCopilot, IsObserver: false})
	s.Handle(appevents.SetObserverMsg{Target: "Nobody", IsObserver: true})
	s.Handle(appevents.GoObserverMsg{})
	s.Handle(appevents.GoObserverMsg{})

	assert.Equal(t, []call{
		{protocol.TypeSetObserving, LoopbackCopilot},
		{protocol.TypeSetNotObserving, LoopbackCopilot},
		{tag: protocol.TypeObserving},
		{tag: protocol.TypeStopObserving},
	}, backend.recorded())
}

func TestSession_UpdateConfig(t *testing.T) {
	s, backend := newTestSession(t, "")

	s.Handle(appevents.UpdateConfigMsg{NewConfig: json.RawMessage(`{"name":"Alice","port":8000}`)})
	assert.Equal(t, []call{{protocol.TypeConfig, `{"name":"Alice","port":8000}`}}, backend.recorded())

	backend.reset()
	s.Handle(appevents.UpdateConfigMsg{NewConfig: json.RawMessage(`[1,2]`)})
	assert.Equal(t, []call{{protocol.TypeError, "Invalid configuration"}}, backend.recorded())

	backend.reset()
	s.Handle(appevents.StartupMsg{})
	calls := backend.recorded()
	assert.Contains(t, calls, call{protocol.TypeConfig, `{"name":"Alice","port":8000}`}, "the accepted config is replayed on startup")
}

func TestSession_RunUpdater(t *testing.T) {
	s, backend := newTestSession(t, "")
	s.Handle(appevents.RunUpdaterMsg{})
	assert.Equal(t, []protocol.MessageType{protocol.TypeUpdateFailed}, backend.tags())
}

func TestSession_Tick(t *testing.T) {
	s, backend := newTestSession(t, "")

	s.Tick()
	assert.Empty(t, backend.recorded(), "no metrics outside a session")

	s.Handle(appevents.StartServerMsg{Username: "Alice"})
	backend.reset()
	s.Tick()
	s.Tick()

	calls := backend.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, protocol.TypeMetrics, calls[1].tag)

	m, err := protocol.DecodeMetrics(calls[1].data)
	require.NoError(t, err)
	assert.EqualValues(t, 60, m.SentPackets)
	assert.EqualValues(t, 60, m.ReceivedPackets)
	assert.InDelta(t, 12.5, m.SentKbps, 0.001)
	assert.Greater(t, m.Ping, float32(0))
}
