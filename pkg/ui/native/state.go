package native

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
	"github.com/rescp17/yourcontrols/internal/config"
	"github.com/rescp17/yourcontrols/pkg/protocol"
)

const (
	aircraftPlaceholder = "Select an aircraft..."
	statusNotConnected  = "Not connected"
	historyLen          = 60
)

type field int

const (
	fieldUsername field = iota
	fieldPort
	fieldIP
	fieldSession
	fieldTimeout
	fieldAircraft
	numFields
)

// peer is one roster entry.
type peer struct {
	name       string
	hasControl bool
	isObserver bool
}

// sample is one throughput reading kept for the bandwidth chart.
type sample struct {
	at   time.Time
	kbps float64
}

// renderState is everything the native UI shows. It is owned by the UI goroutine
// and never shared.
type renderState struct {
	fields [numFields]textinput.Model

	connected bool
	status    string
	observing bool

	serverMethod appevents.ConnectionMethod
	clientMethod appevents.ConnectionMethod
	isIPv6       bool

	peers        []peer
	rosterCursor int

	aircraft         []string
	selectedAircraft int

	instructorMode bool
	streamerMode   bool
	soundMuted     bool
	darkTheme      bool

	metrics appevents.NetworkMetrics
	history []sample
}

func newTextField(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

func newRenderState(cfg config.UIConfig) *renderState {
	s := &renderState{
		status:       statusNotConnected,
		serverMethod: appevents.CloudServer,
		clientMethod: appevents.CloudServer,
		aircraft:     []string{aircraftPlaceholder},
	}
	s.fields[fieldUsername] = newTextField("callsign", 32)
	s.fields[fieldPort] = newTextField("7777", 5)
	s.fields[fieldIP] = newTextField("192.168.0.10", 45)
	s.fields[fieldSession] = newTextField("session code", 16)
	s.fields[fieldTimeout] = newTextField("30", 4)
	s.fields[fieldAircraft] = newTextField("search aircraft", 48)

	s.fields[fieldPort].SetValue(strconv.Itoa(cfg.DefaultPort))
	s.fields[fieldTimeout].SetValue(strconv.Itoa(cfg.DefaultTimeout))
	return s
}

func (s *renderState) value(f field) string {
	return s.fields[f].Value()
}

// apply performs the single state mutation an outbound event maps to.
func (s *renderState) apply(ev appevents.AppUIMessage) {
	switch ev := ev.(type) {
	case appevents.ErrorMsg:
		s.status = "Error: " + ev.Text
		s.connected = false
	case appevents.AttemptMsg:
		s.status = "Attempting connection..."
	case appevents.ConnectedMsg:
		s.status = "Connected to server"
		s.connected = true
	case appevents.ServerFailMsg:
		s.status = "Server failed: " + ev.Reason
		s.connected = false
	case appevents.ClientFailMsg:
		s.status = "Client failed: " + ev.Reason
		s.connected = false
		s.peers = nil
		s.rosterCursor = 0
	case appevents.GainControlMsg:
		s.status = "You have control"
	case appevents.LoseControlMsg:
		s.status = "You lost control"
	case appevents.ServerStartedMsg:
		s.status = "Server started"
		s.connected = true
	case appevents.SessionCodeMsg:
		s.status = "Session Code: " + ev.Code
	case appevents.SetHostMsg:
		s.status = "You are now hosting"
	case appevents.NewConnectionMsg:
		s.peers = append(s.peers, peer{name: ev.Name})
	case appevents.LostConnectionMsg:
		s.removePeer(ev.Name)
	case appevents.ObservingMsg:
		s.observing = ev.Observing
	case appevents.SetObservingMsg:
		if p := s.findPeer(ev.Name); p != nil {
			p.isObserver = ev.Observing
		}
	case appevents.SetInControlMsg:
		s.setController(ev.Name)
	case appevents.AddAircraftMsg:
		s.addAircraft(ev.Name)
	case appevents.VersionMsg:
		s.status = "Update available: " + ev.Version
	case appevents.UpdateFailedMsg:
		s.status = "Update download failed"
	case appevents.SendConfigMsg:
		s.loadConfig(ev.JSON)
	case appevents.MetricsMsg:
		s.metrics = ev.Metrics
		s.history = append(s.history, sample{
			at:   time.Now(),
			kbps: float64(ev.Metrics.ReceiveKbps + ev.Metrics.SentKbps),
		})
		if len(s.history) > historyLen {
			s.history = s.history[len(s.history)-historyLen:]
		}
	default:
		slog.Debug("Ignoring unhandled UI message", "message", fmt.Sprintf("%T", ev))
	}
}

func (s *renderState) findPeer(name string) *peer {
	for i := range s.peers {
		if s.peers[i].name == name {
			return &s.peers[i]
		}
	}
	return nil
}

func (s *renderState) removePeer(name string) {
	kept := s.peers[:0]
	for _, p := range s.peers {
		if p.name != name {
			kept = append(kept, p)
		}
	}
	s.peers = kept
	if s.rosterCursor >= len(s.peers) {
		s.rosterCursor = max(0, len(s.peers)-1)
	}
}

// setController clears control on every peer before granting it, so at most one
// entry holds it. An unknown name leaves control unassigned.
func (s *renderState) setController(name string) {
	for i := range s.peers {
		s.peers[i].hasControl = false
	}
	if p := s.findPeer(name); p != nil {
		p.hasControl = true
	}
}

func (s *renderState) addAircraft(name string) {
	if len(s.aircraft) == 1 && s.aircraft[0] == aircraftPlaceholder {
		s.aircraft = s.aircraft[:0]
		s.selectedAircraft = 0
	}
	s.aircraft = append(s.aircraft, name)
}

// loadConfig copies the recognized keys of a pushed blob into the form. Absent or
// mistyped keys keep their current value.
func (s *renderState) loadConfig(blob string) {
	fields, err := protocol.ParseConfigFields(blob)
	if err != nil {
		slog.Warn("Ignoring undecodable config", "error", err)
		return
	}
	if fields.Name != nil {
		s.fields[fieldUsername].SetValue(*fields.Name)
	}
	if fields.Port != nil {
		s.fields[fieldPort].SetValue(strconv.FormatUint(*fields.Port, 10))
	}
	if fields.ConnTimeout != nil {
		s.fields[fieldTimeout].SetValue(strconv.FormatUint(*fields.ConnTimeout, 10))
	}
	if fields.DarkTheme != nil {
		s.darkTheme = *fields.DarkTheme
	}
}

// hasAircraft reports whether the list holds real entries rather than the placeholder.
func (s *renderState) hasAircraft() bool {
	return !(len(s.aircraft) == 1 && s.aircraft[0] == aircraftPlaceholder)
}
