package native

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextField    key.Binding
	PrevField    key.Binding
	StartServer  key.Binding
	Connect      key.Binding
	ServerMethod key.Binding
	ClientMethod key.Binding
	ToggleIPv6   key.Binding
	RosterUp     key.Binding
	RosterDown   key.Binding
	GiveControl  key.Binding
	PeerObserver key.Binding
	TakeControl  key.Binding
	GoObserver   key.Binding
	AircraftPrev key.Binding
	AircraftNext key.Binding
	LoadAircraft key.Binding
	Instructor   key.Binding
	Streamer     key.Binding
	Mute         key.Binding
	DarkTheme    key.Binding
	SaveSettings key.Binding
	RunUpdater   key.Binding
	Help         key.Binding
	Quit         key.Binding
}

var defaultKeyMap = keyMap{
	NextField:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevField:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	StartServer:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "start/stop server")),
	Connect:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "connect/disconnect")),
	ServerMethod: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "host method")),
	ClientMethod: key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "join method")),
	ToggleIPv6:   key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "ipv6")),
	RosterUp:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev peer")),
	RosterDown:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next peer")),
	GiveControl:  key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "give control")),
	PeerObserver: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "peer observer")),
	TakeControl:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "take control")),
	GoObserver:   key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "observe")),
	AircraftPrev: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev aircraft")),
	AircraftNext: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next aircraft")),
	LoadAircraft: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "load aircraft")),
	Instructor:   key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5", "instructor")),
	Streamer:     key.NewBinding(key.WithKeys("f6"), key.WithHelp("f6", "streamer")),
	Mute:         key.NewBinding(key.WithKeys("f7"), key.WithHelp("f7", "mute")),
	DarkTheme:    key.NewBinding(key.WithKeys("f8"), key.WithHelp("f8", "theme")),
	SaveSettings: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "save settings")),
	RunUpdater:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "update")),
	Help:         key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
	Quit:         key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+c", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.StartServer, k.Connect, k.GiveControl, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.StartServer, k.Connect, k.ServerMethod, k.ClientMethod},
		{k.ToggleIPv6, k.RosterUp, k.RosterDown, k.GiveControl, k.PeerObserver, k.TakeControl},
		{k.GoObserver, k.AircraftPrev, k.AircraftNext, k.LoadAircraft, k.SaveSettings, k.RunUpdater},
		{k.Instructor, k.Streamer, k.Mute, k.DarkTheme, k.Help, k.Quit},
	}
}
