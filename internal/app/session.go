package app

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
	"github.com/rescp17/yourcontrols/internal/config"
	"github.com/rescp17/yourcontrols/pkg/protocol"
	"github.com/rescp17/yourcontrols/pkg/ui"
)

// Names of the simulated peers of the loopback session.
const (
	LoopbackHost    = "Host"
	LoopbackCopilot = "Copilot"
)

type role int

const (
	idle role = iota
	hosting
	joined
)

// Session is a loopback stand-in for the networking layer. It answers every user
// action with the notifications a real session would produce, so the whole bridge
// can be driven without a simulator or peers.
type Session struct {
	mu sync.Mutex
	ui *ui.Bridge

	aircraft []string
	version  string
	config   json.RawMessage

	username  string
	role      role
	inControl bool
	observing bool
	peers     []string
	observers map[string]bool

	ticks    uint64
	sent     uint64
	received uint64
}

// NewSession creates an idle session. A non-empty version is announced to the UI
// as an available update.
func NewSession(bridge *ui.Bridge, cfg config.Config, version string) *Session {
	blob, _ := json.Marshal(map[string]any{
		protocol.ConfigKeyName:      "",
		protocol.ConfigKeyPort:      cfg.UI.DefaultPort,
		protocol.ConfigKeyTimeout:   cfg.UI.DefaultTimeout,
		protocol.ConfigKeyDarkTheme: true,
	})
	return &Session{
		ui:        bridge,
		aircraft:  slices.Clone(cfg.Host.Aircraft),
		version:   version,
		config:    blob,
		observers: make(map[string]bool),
	}
}

// Handle reacts to one user action.
func (s *Session) Handle(ev appevents.AppEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Debug("Handling UI action", "type", ev.Type())
	switch e := ev.(type) {
	case appevents.StartupMsg:
		s.startup()
	case appevents.StartServerMsg:
		s.startServer(e)
	case appevents.ConnectMsg:
		s.connect(e)
	case appevents.DisconnectMsg:
		s.disconnect()
	case appevents.TransferControlMsg:
		s.transferControl(e.Target)
	case appevents.ForceTakeControlMsg:
		s.forceTakeControl()
	case appevents.SetObserverMsg:
		s.setObserver(e.Target, e.IsObserver)
	case appevents.GoObserverMsg:
		s.observing = !s.observing
		s.ui.Observing(s.observing)
	case appevents.LoadAircraftMsg:
		slog.Info("Aircraft selected", "config", e.ConfigFileName)
	case appevents.UpdateConfigMsg:
		s.updateConfig(e.NewConfig)
	case appevents.RunUpdaterMsg:
		slog.Info("Updater requested, no update channel configured")
		s.ui.UpdateFailed()
	default:
		slog.Warn("Unhandled UI action", "type", ev.Type())
	}
}

func (s *Session) startup() {
	for _, name := range s.aircraft {
		s.ui.AddAircraft(name)
	}
	s.ui.SendConfig(string(s.config))
	if s.version != "" {
		s.ui.Version(s.version)
	}
}

func (s *Session) startServer(e appevents.StartServerMsg) {
	if s.role != idle {
		s.ui.ServerFail("Already in a session")
		return
	}
	if strings.TrimSpace(e.Username) == "" {
		s.ui.Error("Username is required")
		return
	}
	slog.Info("Starting loopback server", "port", e.Port, "method", e.Method, "ipv6", e.IsIPv6, "upnp", e.UseUPnP)

	s.username = e.Username
	s.role = hosting
	s.ui.ServerStarted()
	switch e.Method {
	case appevents.CloudServer:
		s.ui.SetSessionCode(sessionCode())
	case appevents.Relay:
		s.ui.SetHost()
	}
	s.inControl = true
	s.ui.GainControl()
	s.addPeer(LoopbackCopilot)
}

func (s *Session) connect(e appevents.ConnectMsg) {
	if s.role != idle {
		s.ui.ClientFail("Already in a session")
		return
	}
	s.ui.Attempt()
	switch {
	case strings.TrimSpace(e.Username) == "":
		s.ui.ClientFail("Username is required")
		return
	case e.Method == appevents.Direct && e.IP == nil && (e.Hostname == nil || *e.Hostname == ""):
		s.ui.ClientFail("No address given")
		return
	case e.Method != appevents.Direct && (e.SessionID == nil || strings.TrimSpace(*e.SessionID) == ""):
		s.ui.ClientFail("Session code is required")
		return
	}
	slog.Info("Joining loopback session", "method", e.Method, "ipv6", e.IsIPv6)

	s.username = e.Username
	s.role = joined
	s.ui.Connected()
	s.addPeer(LoopbackHost)
	s.inControl = false
	s.ui.SetInControl(LoopbackHost)
}

func (s *Session) disconnect() {
	switch s.role {
	case idle:
		return
	case hosting:
		s.ui.ServerFail("Server stopped")
	case joined:
		s.ui.ClientFail("Disconnected")
	}
	for _, p := range s.peers {
		s.ui.LostConnection(p)
	}
	s.peers = nil
	s.observers = make(map[string]bool)
	s.role = idle
	s.inControl = false
	s.ticks, s.sent, s.received = 0, 0, 0
}

func (s *Session) addPeer(name string) {
	s.peers = append(s.peers, name)
	s.ui.NewConnection(name)
}

func (s *Session) transferControl(target string) {
	if !s.inControl || !slices.Contains(s.peers, target) {
		s.ui.Error("Cannot give control to " + target)
		return
	}
	s.inControl = false
	s.ui.LoseControl()
	s.ui.SetInControl(target)
}

func (s *Session) forceTakeControl() {
	if s.role == idle || s.inControl {
		return
	}
	s.inControl = true
	s.ui.GainControl()
	// Nobody in the roster holds control once the local user took it.
	s.ui.SetInControl(s.username)
}

func (s *Session) setObserver(target string, observer bool) {
	if !slices.Contains(s.peers, target) {
		return
	}
	s.observers[target] = observer
	s.ui.SetObserving(target, observer)
}

func (s *Session) updateConfig(raw json.RawMessage) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		s.ui.Error("Invalid configuration")
		return
	}
	s.config = slices.Clone(raw)
	slog.Info("Configuration updated")
	s.ui.SendConfig(string(s.config))
}

// Tick publishes synthetic link statistics while a session is active.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role == idle {
		return
	}
	s.ticks++
	s.sent += 30
	s.received += 30
	s.ui.SendNetwork(protocol.LinkStats{
		SentPackets:     s.sent,
		ReceivedPackets: s.received,
		SentKbps:        12.5,
		ReceiveKbps:     11.75 + float32(s.ticks%4),
		PacketLoss:      0,
		RTT:             time.Duration(60+(s.ticks%5)*8) * time.Millisecond,
	})
}

func sessionCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}
