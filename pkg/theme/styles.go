package theme

import "github.com/charmbracelet/lipgloss/v2"

// Palette holds the hex colors for one mode.
type Palette struct {
	Primary    string // header background
	Text       string // header text
	Background string // navigation background
	Surface    string // panel background
	Box        string // highlighted box background
	Button     string
	Title      string
	Body       string
}

var (
	lightPalette = Palette{
		Primary:    "#72a657",
		Text:       "#05230d",
		Background: "#72a657",
		Surface:    "#b5f396",
		Box:        "#cafdb0",
		Button:     "#4e853d",
		Title:      "#0d1e00",
		Body:       "#000000",
	}
	darkPalette = Palette{
		Primary:    "#123000",
		Text:       "#c3ffcf",
		Background: "#123000",
		Surface:    "#0d1e00",
		Box:        "#0d2500",
		Button:     "#2b4320",
		Title:      "#b5f396",
		Body:       "#d5ffc2",
	}
)

// PaletteFor returns the palette of m. Unknown modes get the light palette.
func PaletteFor(m Mode) Palette {
	if m == Dark {
		return darkPalette
	}
	return lightPalette
}

// Styles centralizes Lip Gloss styles for the terminal UI.
type Styles struct {
	Header   lipgloss.Style
	Panel    lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Faint    lipgloss.Style
	Marker   lipgloss.Style
	Active   lipgloss.Style
	You      lipgloss.Style
	Button   lipgloss.Style
	Footer   lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
}

// NewStyles builds the styles for a palette.
func NewStyles(p Palette) Styles {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Title)).
		Bold(true)

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Background(lipgloss.Color(p.Primary)).
			Bold(true).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Button)).
			Padding(1, 2),
		Title:  title,
		Body:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Body)),
		Faint:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Marker: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Button)),
		Active: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Background(lipgloss.Color(p.Box)).
			Bold(true),
		You: lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Background(lipgloss.Color(p.Button)).
			Padding(0, 1),
		Footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Selected: title.Reverse(true),
	}
}
