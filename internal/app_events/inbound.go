package appevents

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/netip"
)

// ErrInvalidMethod is returned when a connection method token is not recognized.
var ErrInvalidMethod = errors.New("invalid connection method")

// ConnectionMethod selects how a session is established.
type ConnectionMethod int

const (
	Direct ConnectionMethod = iota
	Relay
	CloudServer
)

var methodTokens = map[ConnectionMethod]string{
	Direct:      "direct",
	Relay:       "relay",
	CloudServer: "cloudServer",
}

// String returns the wire token of the method.
func (m ConnectionMethod) String() string {
	if s, ok := methodTokens[m]; ok {
		return s
	}
	return fmt.Sprintf("ConnectionMethod(%d)", int(m))
}

// ParseConnectionMethod maps a wire token back to its method. Tokens are case-sensitive.
func ParseConnectionMethod(s string) (ConnectionMethod, error) {
	for m, token := range methodTokens {
		if token == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}

func (m ConnectionMethod) MarshalText() ([]byte, error) {
	s, ok := methodTokens[m]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMethod, int(m))
	}
	return []byte(s), nil
}

func (m *ConnectionMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseConnectionMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// --- UI Events (from UI to App) ---

// StartServerMsg asks the application to host a session.
type StartServerMsg struct {
	Event
	Username string           `json:"username"`
	IsIPv6   bool             `json:"isIpv6"`
	UseUPnP  bool             `json:"useUpnp"`
	Port     uint16           `json:"port"`
	Method   ConnectionMethod `json:"method"`
}

// ConnectMsg asks the application to join a session, either by session code or by address.
type ConnectMsg struct {
	Event
	Username  string           `json:"username"`
	SessionID *string          `json:"sessionId,omitempty"`
	IsIPv6    bool             `json:"isIpv6"`
	IP        *netip.Addr      `json:"ip,omitempty"`
	Hostname  *string          `json:"hostname,omitempty"`
	Port      *uint16          `json:"port,omitempty"`
	Method    ConnectionMethod `json:"method"`
}

// TransferControlMsg hands control of the aircraft to another peer.
type TransferControlMsg struct {
	Event
	Target string `json:"target"`
}

// SetObserverMsg toggles observer mode for a peer.
type SetObserverMsg struct {
	Event
	Target     string `json:"target"`
	IsObserver bool   `json:"isObserver"`
}

// LoadAircraftMsg selects an aircraft definition.
type LoadAircraftMsg struct {
	Event
	ConfigFileName string `json:"configFileName"`
}

// DisconnectMsg stops the server or leaves the session.
type DisconnectMsg struct{ Event }

// StartupMsg is sent once by the UI when it is ready.
type StartupMsg struct{ Event }

// RunUpdaterMsg asks the application to install an available update.
type RunUpdaterMsg struct{ Event }

// ForceTakeControlMsg takes control regardless of the current controller.
type ForceTakeControlMsg struct{ Event }

// UpdateConfigMsg carries a new configuration blob. The blob is opaque to the bridge.
type UpdateConfigMsg struct {
	Event
	NewConfig json.RawMessage `json:"newConfig"`
}

// GoObserverMsg puts the local user into observer mode.
type GoObserverMsg struct{ Event }

func (StartServerMsg) Type() string      { return "startServer" }
func (ConnectMsg) Type() string          { return "connect" }
func (TransferControlMsg) Type() string  { return "transferControl" }
func (SetObserverMsg) Type() string      { return "setObserver" }
func (LoadAircraftMsg) Type() string     { return "loadAircraft" }
func (DisconnectMsg) Type() string       { return "disconnect" }
func (StartupMsg) Type() string          { return "startup" }
func (RunUpdaterMsg) Type() string       { return "runUpdater" }
func (ForceTakeControlMsg) Type() string { return "forceTakeControl" }
func (UpdateConfigMsg) Type() string     { return "updateConfig" }
func (GoObserverMsg) Type() string       { return "goObserver" }

var (
	_ AppEvent = StartServerMsg{}
	_ AppEvent = ConnectMsg{}
	_ AppEvent = TransferControlMsg{}
	_ AppEvent = SetObserverMsg{}
	_ AppEvent = LoadAircraftMsg{}
	_ AppEvent = DisconnectMsg{}
	_ AppEvent = StartupMsg{}
	_ AppEvent = RunUpdaterMsg{}
	_ AppEvent = ForceTakeControlMsg{}
	_ AppEvent = UpdateConfigMsg{}
	_ AppEvent = GoObserverMsg{}
)
