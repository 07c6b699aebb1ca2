package native

import (
	"encoding/json"
	"log/slog"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
	"github.com/rescp17/yourcontrols/internal/config"
	"github.com/rescp17/yourcontrols/pkg/concurrency"
	"github.com/rescp17/yourcontrols/pkg/protocol"
)

type tickMsg time.Time

type model struct {
	title  string
	cfg    config.UIConfig
	state  *renderState
	inbox  *concurrency.Mailbox[appevents.AppEvent]
	outbox *concurrency.Mailbox[appevents.AppUIMessage]

	keys           keyMap
	help           help.Model
	focus          field
	aircraftCursor int
	width          int
}

func newModel(title string, cfg config.UIConfig,
	inbox *concurrency.Mailbox[appevents.AppEvent],
	outbox *concurrency.Mailbox[appevents.AppUIMessage]) *model {
	m := &model{
		title:  title,
		cfg:    cfg,
		state:  newRenderState(cfg),
		inbox:  inbox,
		outbox: outbox,
		keys:   defaultKeyMap,
		help:   help.New(),
		focus:  fieldUsername,
	}
	m.state.fields[m.focus].Focus()
	return m
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(m.title), textinput.Blink, tick(m.cfg.TickInterval))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.processEvents()
		return m, tick(m.cfg.TickInterval)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	before := m.state.value(fieldAircraft)
	var cmd tea.Cmd
	m.state.fields[m.focus], cmd = m.state.fields[m.focus].Update(msg)
	if m.state.value(fieldAircraft) != before {
		m.aircraftCursor = 0
	}
	return m, cmd
}

// processEvents applies every notification queued since the previous frame, in order.
func (m *model) processEvents() {
	for _, ev := range m.outbox.Drain() {
		m.state.apply(ev)
	}
}

// send queues a user action for the application. A full inbox drops the action.
func (m *model) send(ev appevents.AppEvent) {
	if !m.inbox.Send(ev) {
		slog.Warn("Dropping UI action, inbox unavailable", "type", ev.Type())
	}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := m.state
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.NextField):
		return m.moveFocus(1), true
	case key.Matches(msg, m.keys.PrevField):
		return m.moveFocus(-1), true
	case key.Matches(msg, m.keys.StartServer):
		m.startServer()
	case key.Matches(msg, m.keys.Connect):
		m.connect()
	case key.Matches(msg, m.keys.ServerMethod):
		s.serverMethod = nextServerMethod(s.serverMethod)
	case key.Matches(msg, m.keys.ClientMethod):
		if s.clientMethod == appevents.Direct {
			s.clientMethod = appevents.CloudServer
		} else {
			s.clientMethod = appevents.Direct
		}
		if !m.visible(m.focus) {
			return m.moveFocus(1), true
		}
	case key.Matches(msg, m.keys.ToggleIPv6):
		s.isIPv6 = !s.isIPv6
	case key.Matches(msg, m.keys.RosterUp):
		if s.rosterCursor > 0 {
			s.rosterCursor--
		}
	case key.Matches(msg, m.keys.RosterDown):
		if s.rosterCursor < len(s.peers)-1 {
			s.rosterCursor++
		}
	case key.Matches(msg, m.keys.GiveControl):
		if p, ok := m.selectedPeer(); ok && !p.hasControl {
			m.send(appevents.TransferControlMsg{Target: p.name})
		}
	case key.Matches(msg, m.keys.PeerObserver):
		if p, ok := m.selectedPeer(); ok {
			m.send(appevents.SetObserverMsg{Target: p.name, IsObserver: !p.isObserver})
		}
	case key.Matches(msg, m.keys.TakeControl):
		m.send(appevents.ForceTakeControlMsg{})
	case key.Matches(msg, m.keys.GoObserver):
		m.send(appevents.GoObserverMsg{})
	case key.Matches(msg, m.keys.RunUpdater):
		m.send(appevents.RunUpdaterMsg{})
	case key.Matches(msg, m.keys.AircraftPrev):
		if m.aircraftCursor > 0 {
			m.aircraftCursor--
		}
	case key.Matches(msg, m.keys.AircraftNext):
		if m.aircraftCursor < len(s.aircraft)-1 {
			m.aircraftCursor++
		}
	case key.Matches(msg, m.keys.LoadAircraft):
		m.loadAircraft()
	case msg.Type == tea.KeyEnter && m.focus == fieldAircraft:
		m.loadAircraft()
	case key.Matches(msg, m.keys.Instructor):
		s.instructorMode = !s.instructorMode
	case key.Matches(msg, m.keys.Streamer):
		s.streamerMode = !s.streamerMode
	case key.Matches(msg, m.keys.Mute):
		s.soundMuted = !s.soundMuted
	case key.Matches(msg, m.keys.DarkTheme):
		s.darkTheme = !s.darkTheme
	case key.Matches(msg, m.keys.SaveSettings):
		m.saveSettings()
	default:
		return nil, false
	}
	return nil, true
}

func nextServerMethod(cur appevents.ConnectionMethod) appevents.ConnectionMethod {
	switch cur {
	case appevents.CloudServer:
		return appevents.Relay
	case appevents.Relay:
		return appevents.Direct
	default:
		return appevents.CloudServer
	}
}

// visible reports whether a field is shown for the current join method.
func (m *model) visible(f field) bool {
	switch f {
	case fieldIP:
		return m.state.clientMethod == appevents.Direct
	case fieldSession:
		return m.state.clientMethod != appevents.Direct
	default:
		return true
	}
}

func (m *model) moveFocus(step int) tea.Cmd {
	m.state.fields[m.focus].Blur()
	next := m.focus
	for {
		next = field((int(next) + step + int(numFields)) % int(numFields))
		if m.visible(next) {
			break
		}
	}
	m.focus = next
	return m.state.fields[m.focus].Focus()
}

func (m *model) selectedPeer() (peer, bool) {
	s := m.state
	if s.rosterCursor < 0 || s.rosterCursor >= len(s.peers) {
		return peer{}, false
	}
	return s.peers[s.rosterCursor], true
}

func (m *model) parsePort() (uint16, bool) {
	port, err := strconv.ParseUint(strings.TrimSpace(m.state.value(fieldPort)), 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(port), true
}

func (m *model) startServer() {
	s := m.state
	if s.connected {
		m.send(appevents.DisconnectMsg{})
		return
	}
	port, ok := m.parsePort()
	if !ok {
		port = uint16(m.cfg.DefaultPort)
	}
	m.send(appevents.StartServerMsg{
		Username: s.value(fieldUsername),
		IsIPv6:   s.isIPv6,
		UseUPnP:  true,
		Port:     port,
		Method:   s.serverMethod,
	})
}

func (m *model) connect() {
	s := m.state
	if s.connected {
		m.send(appevents.DisconnectMsg{})
		return
	}
	msg := appevents.ConnectMsg{
		Username: s.value(fieldUsername),
		IsIPv6:   s.isIPv6,
		Method:   s.clientMethod,
	}
	if s.clientMethod == appevents.Direct {
		if ip, err := netip.ParseAddr(strings.TrimSpace(s.value(fieldIP))); err == nil {
			msg.IP = &ip
		}
		if port, ok := m.parsePort(); ok {
			msg.Port = &port
		}
	} else {
		code := strings.TrimSpace(s.value(fieldSession))
		msg.SessionID = &code
	}
	m.send(msg)
}

func (m *model) loadAircraft() {
	s := m.state
	if !s.hasAircraft() {
		return
	}
	ranked := rankAircraft(s.aircraft, s.value(fieldAircraft))
	if m.aircraftCursor >= len(ranked) {
		return
	}
	s.selectedAircraft = ranked[m.aircraftCursor]
	m.send(appevents.LoadAircraftMsg{ConfigFileName: s.aircraft[s.selectedAircraft]})
}

// saveSettings sends the form as a configuration blob. An unparsable port or timeout
// falls back to the configured default.
func (m *model) saveSettings() {
	s := m.state
	port, ok := m.parsePort()
	if !ok {
		port = uint16(m.cfg.DefaultPort)
	}
	timeout, err := strconv.ParseUint(strings.TrimSpace(s.value(fieldTimeout)), 10, 32)
	if err != nil {
		timeout = uint64(m.cfg.DefaultTimeout)
	}
	blob, err := json.Marshal(map[string]any{
		protocol.ConfigKeyName:      s.value(fieldUsername),
		protocol.ConfigKeyPort:      port,
		protocol.ConfigKeyTimeout:   timeout,
		protocol.ConfigKeyDarkTheme: s.darkTheme,
		"instructor_mode":           s.instructorMode,
		"streamer_mode":             s.streamerMode,
		"sound_muted":               s.soundMuted,
	})
	if err != nil {
		slog.Error("Failed to encode settings", "error", err)
		return
	}
	m.send(appevents.UpdateConfigMsg{NewConfig: blob})
}
