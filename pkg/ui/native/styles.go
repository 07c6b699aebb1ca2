package native

import "github.com/charmbracelet/lipgloss"

type palette struct {
	Primary   string
	Secondary string
	Accent    string
	Text      string
	Muted     string
	Success   string
	Error     string
	Border    string
}

var (
	darkPalette = palette{
		Primary:   "#58a6ff",
		Secondary: "#8b949e",
		Accent:    "#f2cc60",
		Text:      "#c9d1d9",
		Muted:     "#6e7681",
		Success:   "#3fb950",
		Error:     "#f85149",
		Border:    "#30363d",
	}
	lightPalette = palette{
		Primary:   "#0969da",
		Secondary: "#656d76",
		Accent:    "#bf8700",
		Text:      "#24292f",
		Muted:     "#8c959f",
		Success:   "#1a7f37",
		Error:     "#cf222e",
		Border:    "#d0d7de",
	}
)

// styles holds the precomputed lipgloss styles for one palette.
type styles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Online   lipgloss.Style
	Offline  lipgloss.Style
	Accent   lipgloss.Style
	Group    lipgloss.Style
	Input    lipgloss.Style
	Focused  lipgloss.Style
	Selected lipgloss.Style
	Chart    lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Primary)).
			Bold(true),
		Heading: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Secondary)).
			Bold(true).
			MarginBottom(1),
		Body: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),
		Online: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success)),
		Offline: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),
		Group: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),
		Input: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Underline(true),
		Focused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Underline(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Primary)).
			Bold(true),
		Chart: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Primary)),
	}
}

var (
	darkStyles  = newStyles(darkPalette)
	lightStyles = newStyles(lightPalette)
)

func stylesFor(dark bool) styles {
	if dark {
		return darkStyles
	}
	return lightStyles
}
