package shop

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/selection"
	"tableflip.dev/shoptrack/pkg/viewport"
)

const (
	defaultPanelWidth = 40
	mapRows           = 12
)

// View renders the current screen.
func (m *Model) View() string {
	var sections []string

	title := "My Shop Tracker · Map"
	if m.screen == screenSaved {
		title = "My Shop Tracker · Saved"
	}
	sections = append(sections, m.styles.Header.Render(title))

	switch m.screen {
	case screenSaved:
		sections = append(sections, m.saved.View())
	default:
		gap := lipgloss.NewStyle().Padding(0, 1).Render
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, m.markers.View(), gap(" "), m.renderRightPane()))
	}

	switch m.mode {
	case modeSearch:
		sections = append(sections, "Search: "+m.input.View())
	case modeSavedNote:
		sections = append(sections, fmt.Sprintf("Notes for %s: %s", m.target, m.input.View()))
	case modeConfirmDelete:
		sections = append(sections, fmt.Sprintf("Are you sure you want to delete %s? (y/n)", m.target))
	}

	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n\n")
}

func (m *Model) panelWidth() int {
	if m.termWidth <= 0 {
		return defaultPanelWidth
	}
	w := m.termWidth - m.markers.Width() - 8
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) renderRightPane() string {
	if m.sess == nil {
		return ""
	}
	st := m.sess.Selection.State()
	if st.DetailOpen && st.Active != nil {
		return m.renderDetail(st)
	}
	return m.renderMap()
}

func (m *Model) renderDetail(st selection.State) string {
	w := m.panelWidth()
	p := *st.Active

	lines := []string{
		m.styles.Title.Render(p.Name),
		"",
		m.styles.Faint.Render("Opening hours: ") + p.Hours(),
		m.styles.Faint.Render("Address:"),
		wordwrap.String(p.Address, w),
		"",
		m.styles.Faint.Render("Notes:"),
	}
	if m.mode == modeEditNote {
		lines = append(lines, m.input.View())
	} else if strings.TrimSpace(st.NoteDraft) == "" {
		lines = append(lines, m.styles.Faint.Render("Add your notes here"))
	} else {
		lines = append(lines, wordwrap.String(st.NoteDraft, w))
	}
	lines = append(lines, "", m.styles.Button.Render("s Save")+" "+m.styles.Button.Render("esc Close"))

	return m.styles.Panel.Width(w).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderMap() string {
	w := m.panelWidth()
	region := m.sess.Region()
	grid := plot(region, m.sess.Markers(), m.sess.Position(), w, mapRows)

	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, r := range row {
			switch r {
			case '@':
				b.WriteString(m.styles.You.Render(string(r)))
			case '◉':
				b.WriteString(m.styles.Active.Render(string(r)))
			case '•', '★':
				b.WriteString(m.styles.Marker.Render(string(r)))
			default:
				b.WriteRune(r)
			}
		}
	}
	caption := m.styles.Faint.Render(region.String())
	if pos := m.sess.Position(); pos != nil {
		caption += "\n" + m.styles.Faint.Render("@ Your location "+pos.String())
	}
	return m.styles.Panel.Render(b.String() + "\n\n" + caption)
}

// plot projects the markers inside region onto a w x h character grid with
// north at the top. Later markers overwrite earlier ones; the active marker
// and the device position are drawn last.
func plot(region viewport.Region, markers []app.Marker, pos *poi.Position, w, h int) [][]rune {
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = []rune(strings.Repeat("·", w))
	}
	minLat, minLon, maxLat, maxLon := region.Bounds()
	put := func(lat, lon float64, r rune) {
		if lat < minLat || lat > maxLat || lon < minLon || lon > maxLon {
			return
		}
		col := int(math.Round((lon - minLon) / (maxLon - minLon) * float64(w-1)))
		row := int(math.Round((maxLat - lat) / (maxLat - minLat) * float64(h-1)))
		grid[row][col] = r
	}

	var active *app.Marker
	for i := range markers {
		mk := markers[i]
		if mk.Active {
			active = &markers[i]
			continue
		}
		glyph := '•'
		if mk.Saved {
			glyph = '★'
		}
		put(mk.Latitude, mk.Longitude, glyph)
	}
	if pos != nil {
		put(pos.Latitude, pos.Longitude, '@')
	}
	if active != nil {
		put(active.Latitude, active.Longitude, '◉')
	}
	return grid
}

func (m *Model) renderFooter() string {
	var help string
	switch {
	case m.mode == modeEditNote:
		help = "enter save · esc done"
	case m.mode == modeSearch || m.mode == modeSavedNote:
		help = "enter apply · esc cancel"
	case m.mode == modeConfirmDelete:
		help = "y delete · n cancel"
	case m.screen == screenSaved:
		help = "enter view on map · e edit notes · d delete · tab map · t theme · q quit"
	default:
		help = "enter select · e edit note · s save · esc close · / search · tab saved · t theme · q quit"
	}
	footer := m.styles.Footer.Render(help)
	if m.status != "" {
		style := m.styles.Footer
		if strings.HasPrefix(m.status, "ERR:") {
			style = m.styles.Error
		}
		footer = style.Render(m.status) + "\n" + footer
	}
	return footer
}

// applySizes recalculates list sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	left := m.termWidth / 3
	if left < 24 {
		left = 24
	}
	if left > 48 {
		left = 48
	}
	h := m.termHeight - 8
	if h < 5 {
		h = 5
	}
	m.markers.SetSize(left, h)
	m.saved.SetSize(m.termWidth-2, h)
}
