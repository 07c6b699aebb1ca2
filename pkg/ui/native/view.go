package native

import (
	"fmt"
	"strings"
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
	"github.com/rescp17/yourcontrols/internal/util"
)

const (
	defaultWidth   = 100
	rosterNameCols = 20
	aircraftRows   = 5
	chartHeight    = 5
)

func (m *model) View() string {
	s := m.state
	st := stylesFor(s.darkTheme)

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	colWidth := width/2 - 4

	var b strings.Builder
	b.WriteString(st.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.statusLine(st))
	b.WriteString("\n\n")

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		st.Group.Width(colWidth).Render(m.hostView(st)),
		st.Group.Width(colWidth).Render(m.joinView(st)),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		st.Group.Width(colWidth).Render(m.rosterView(st)),
		st.Group.Width(colWidth).Render(m.settingsView(st)),
	)
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(bottom)
	b.WriteString("\n")

	if s.connected {
		b.WriteString(m.networkView(st, width))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *model) statusLine(st styles) string {
	dot := st.Offline.Render("●")
	if m.state.connected {
		dot = st.Online.Render("●")
	}
	line := dot + " " + st.Body.Render(m.state.status)
	if m.state.observing {
		line += "  " + st.Accent.Render("[observing]")
	}
	return line
}

func (m *model) input(st styles, label string, f field) string {
	style := st.Input
	if m.focus == f {
		style = st.Focused
	}
	return st.Muted.Render(label) + " " + style.Render(m.state.fields[f].View())
}

func radio(st styles, selected bool, label string) string {
	if selected {
		return st.Selected.Render("(•) " + label)
	}
	return st.Muted.Render("( ) " + label)
}

func checkbox(st styles, checked bool, label string) string {
	if checked {
		return st.Body.Render("[x] " + label)
	}
	return st.Muted.Render("[ ] " + label)
}

func (m *model) hostView(st styles) string {
	s := m.state
	button := "Start Server"
	if s.connected {
		button = "Stop Server"
	}
	return strings.Join([]string{
		st.Heading.Render("Host"),
		m.input(st, "Port:", fieldPort),
		radio(st, s.serverMethod == appevents.CloudServer, "Cloud P2P") + " " +
			radio(st, s.serverMethod == appevents.Relay, "Cloud Host") + " " +
			radio(st, s.serverMethod == appevents.Direct, "Direct"),
		checkbox(st, s.isIPv6, "Use IPv6"),
		st.Accent.Render("[ctrl+s] " + button),
	}, "\n")
}

func (m *model) joinView(st styles) string {
	s := m.state
	button := "Connect"
	if s.connected {
		button = "Disconnect"
	}
	lines := []string{
		st.Heading.Render("Join"),
		radio(st, s.clientMethod == appevents.CloudServer, "Cloud Server") + " " +
			radio(st, s.clientMethod == appevents.Direct, "Direct"),
	}
	if s.clientMethod == appevents.Direct {
		lines = append(lines, m.input(st, "IP Address:", fieldIP), m.input(st, "Port:", fieldPort))
	} else {
		lines = append(lines, m.input(st, "Session Code:", fieldSession))
	}
	lines = append(lines,
		checkbox(st, s.isIPv6, "Use IPv6"),
		st.Accent.Render("[ctrl+o] "+button),
	)
	return strings.Join(lines, "\n")
}

func (m *model) rosterView(st styles) string {
	s := m.state
	lines := []string{st.Heading.Render("Connected Clients")}
	if len(s.peers) == 0 {
		lines = append(lines, st.Muted.Render("No one else is here yet"))
	}
	for i, p := range s.peers {
		icon := "○"
		switch {
		case p.hasControl:
			icon = "✓"
		case p.isObserver:
			icon = "◌"
		}
		row := icon + " " + util.PadRight(p.name, rosterNameCols)
		if !p.hasControl {
			row += st.Muted.Render(" give control")
		}
		if i == s.rosterCursor {
			row = st.Selected.Render("> ") + row
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func (m *model) settingsView(st styles) string {
	s := m.state
	lines := []string{
		st.Heading.Render("Settings"),
		m.input(st, "Username:", fieldUsername),
		m.input(st, "Timeout (s):", fieldTimeout),
		st.Muted.Render("Aircraft:") + " " + st.Body.Render(s.aircraft[s.selectedAircraft]),
		m.input(st, "Search:", fieldAircraft),
	}

	ranked := rankAircraft(s.aircraft, s.value(fieldAircraft))
	start := 0
	if m.aircraftCursor >= aircraftRows {
		start = m.aircraftCursor - aircraftRows + 1
	}
	for i := start; i < len(ranked) && i < start+aircraftRows; i++ {
		name := s.aircraft[ranked[i]]
		if i == m.aircraftCursor {
			lines = append(lines, st.Selected.Render("> "+name))
		} else {
			lines = append(lines, "  "+st.Body.Render(name))
		}
	}

	lines = append(lines,
		checkbox(st, s.instructorMode, "Instructor Mode"),
		checkbox(st, s.streamerMode, "Streamer Mode"),
		checkbox(st, s.soundMuted, "Mute Sound"),
		checkbox(st, s.darkTheme, "Dark Theme"),
		st.Accent.Render("[ctrl+w] Save Settings"),
	)
	return strings.Join(lines, "\n")
}

func (m *model) networkView(st styles, width int) string {
	mt := m.state.metrics
	stats := strings.Join([]string{
		"↓ " + util.FormatRate(mt.ReceiveKbps),
		"↑ " + util.FormatRate(mt.SentKbps),
		"Loss: " + util.FormatLoss(mt.PacketLoss),
		"Ping: " + util.FormatPing(mt.Ping),
		fmt.Sprintf("Packets: %d/%d", mt.SentPackets, mt.ReceivedPackets),
	}, " │ ")
	out := st.Body.Render(stats)
	if chart := m.bandwidthChart(st, width); chart != "" {
		out += "\n" + chart
	}
	return out
}

// bandwidthChart plots combined throughput over the retained metrics samples.
func (m *model) bandwidthChart(st styles, width int) string {
	samples := m.state.history
	if len(samples) < 2 {
		return ""
	}
	maxVal := 0.0
	for _, s := range samples {
		maxVal = max(maxVal, s.kbps)
	}
	if maxVal == 0 {
		maxVal = 1
	}
	start, end := samples[0].at, samples[len(samples)-1].at
	if !end.After(start) {
		end = start.Add(time.Second)
	}

	chart := tslc.New(max(width-2, 10), chartHeight)
	chart.SetStyle(st.Chart)
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(0, maxVal)
	chart.SetViewYRange(0, maxVal)
	for _, s := range samples {
		chart.Push(tslc.TimePoint{Time: s.at, Value: s.kbps})
	}
	chart.DrawBraille()
	return chart.View()
}
