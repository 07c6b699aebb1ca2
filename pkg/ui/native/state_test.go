package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
	"github.com/rescp17/yourcontrols/internal/config"
)

func newTestState(t *testing.T) *renderState {
	t.Helper()
	return newRenderState(config.Default().UI)
}

func TestNewRenderState_Defaults(t *testing.T) {
	s := newTestState(t)

	assert.Equal(t, statusNotConnected, s.status)
	assert.False(t, s.connected)
	assert.Equal(t, "7777", s.value(fieldPort))
	assert.Equal(t, "30", s.value(fieldTimeout))
	assert.Equal(t, []string{aircraftPlaceholder}, s.aircraft)
	assert.Equal(t, appevents.CloudServer, s.serverMethod)
	assert.Equal(t, appevents.CloudServer, s.clientMethod)
}

func TestApply_StatusMessages(t *testing.T) {
	tests := []struct {
		name      string
		ev        appevents.AppUIMessage
		status    string
		connected bool
	}{
		{"error", appevents.ErrorMsg{Text: "X"}, "Error: X", false},
		{"attempt", appevents.AttemptMsg{}, "Attempting connection...", false},
		{"connected", appevents.ConnectedMsg{}, "Connected to server", true},
		{"server fail", appevents.ServerFailMsg{Reason: "port in use"}, "Server failed: port in use", false},
		{"server started", appevents.ServerStartedMsg{}, "Server started", true},
		{"gain control", appevents.GainControlMsg{}, "You have control", false},
		{"lose control", appevents.LoseControlMsg{}, "You lost control", false},
		{"session code", appevents.SessionCodeMsg{Code: "QX4RT"}, "Session Code: QX4RT", false},
		{"host", appevents.SetHostMsg{}, "You are now hosting", false},
		{"version", appevents.VersionMsg{Version: "2.8.5"}, "Update available: 2.8.5", false},
		{"update failed", appevents.UpdateFailedMsg{}, "Update download failed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t)
			s.apply(tt.ev)
			assert.Equal(t, tt.status, s.status)
			assert.Equal(t, tt.connected, s.connected)
		})
	}
}

func TestApply_ErrorAfterConnectedDisconnects(t *testing.T) {
	s := newTestState(t)
	s.apply(appevents.ConnectedMsg{})
	require.True(t, s.connected)

	s.apply(appevents.ErrorMsg{Text: "Unknown error"})
	assert.False(t, s.connected)
	assert.Equal(t, "Error: Unknown error", s.status)
}

func TestApply_SingleController(t *testing.T) {
	s := newTestState(t)
	s.apply(appevents.NewConnectionMsg{Name: "Alice"})
	s.apply(appevents.NewConnectionMsg{Name: "Bob"})

	s.apply(appevents.SetInControlMsg{Name: "Bob"})
	assert.False(t, s.peers[0].hasControl)
	assert.True(t, s.peers[1].hasControl)

	s.apply(appevents.SetInControlMsg{Name: "Alice"})
	assert.True(t, s.peers[0].hasControl)
	assert.False(t, s.peers[1].hasControl)

	s.apply(appevents.SetInControlMsg{Name: "Carol"})
	for _, p := range s.peers {
		assert.False(t, p.hasControl, "%s should not hold control", p.name)
	}
}

func TestApply_LostConnection(t *testing.T) {
	s := newTestState(t)
	s.apply(appevents.NewConnectionMsg{Name: "Alice"})
	s.apply(appevents.NewConnectionMsg{Name: "Bob"})
	s.rosterCursor = 1

	s.apply(appevents.LostConnectionMsg{Name: "Zed"})
	assert.Len(t, s.peers, 2)

	s.apply(appevents.LostConnectionMsg{Name: "Bob"})
	require.Len(t, s.peers, 1)
	assert.Equal(t, "Alice", s.peers[0].name)
	assert.Equal(t, 0, s.rosterCursor)
}

func TestApply_ObserverFlags(t *testing.T) {
	s := newTestState(t)
	s.apply(appevents.NewConnectionMsg{Name: "Bob"})

	s.apply(appevents.SetObservingMsg{Name: "Bob", Observing: true})
	assert.True(t, s.peers[0].isObserver)
	s.apply(appevents.SetObservingMsg{Name: "Bob", Observing: false})
	assert.False(t, s.peers[0].isObserver)
	s.apply(appevents.SetObservingMsg{Name: "Nobody", Observing: true})

	s.apply(appevents.ObservingMsg{Observing: true})
	assert.True(t, s.observing)
	s.apply(appevents.ObservingMsg{Observing: false})
	assert.False(t, s.observing)
}

func TestApply_ClientFailClearsRoster(t *testing.T) {
	s := newTestState(t)
	s.apply(appevents.ConnectedMsg{})
	s.apply(appevents.NewConnectionMsg{Name: "Alice"})

	s.apply(appevents.ClientFailMsg{Reason: "timeout"})
	assert.Empty(t, s.peers)
	assert.False(t, s.connected)
	assert.Equal(t, "Client failed: timeout", s.status)
}

func TestApply_AircraftPlaceholder(t *testing.T) {
	s := newTestState(t)
	assert.False(t, s.hasAircraft())

	s.apply(appevents.AddAircraftMsg{Name: "A320"})
	assert.Equal(t, []string{"A320"}, s.aircraft)
	assert.True(t, s.hasAircraft())

	s.apply(appevents.AddAircraftMsg{Name: "C172"})
	assert.Equal(t, []string{"A320", "C172"}, s.aircraft)
}

func TestApply_Config(t *testing.T) {
	s := newTestState(t)
	s.apply(appevents.SendConfigMsg{JSON: `{"name":"Alice","port":7000,"conn_timeout":15,"ui_dark_theme":true}`})

	assert.Equal(t, "Alice", s.value(fieldUsername))
	assert.Equal(t, "7000", s.value(fieldPort))
	assert.Equal(t, "15", s.value(fieldTimeout))
	assert.True(t, s.darkTheme)
}

func TestApply_ConfigPartialAndMistyped(t *testing.T) {
	s := newTestState(t)
	s.apply(appevents.SendConfigMsg{JSON: `{"name":"Alice","port":"x"}`})

	assert.Equal(t, "Alice", s.value(fieldUsername))
	assert.Equal(t, "7777", s.value(fieldPort))
	assert.False(t, s.darkTheme)

	s.apply(appevents.SendConfigMsg{JSON: `not json`})
	assert.Equal(t, "Alice", s.value(fieldUsername))
}

func TestApply_MetricsHistory(t *testing.T) {
	s := newTestState(t)
	for i := 0; i < historyLen+10; i++ {
		s.apply(appevents.MetricsMsg{Metrics: appevents.NetworkMetrics{SentKbps: 1, ReceiveKbps: float32(i)}})
	}

	assert.Len(t, s.history, historyLen)
	assert.Equal(t, float32(historyLen+9), s.metrics.ReceiveKbps)
	assert.Equal(t, float64(historyLen+10), s.history[len(s.history)-1].kbps)
}
