package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/favorites"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/selection"
	"tableflip.dev/shoptrack/pkg/viewport"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out   io.Writer
	Width int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return 60
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Markers prints the catalog as a table. The active marker is highlighted and
// saved entries are starred.
func (pp *PrettyPrint) Markers(markers []app.Marker) {
	if len(markers) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)
	active := color.New(color.FgHiGreen, color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow("", bold.Sprint("Name"), bold.Sprint("Hours"), bold.Sprint("Distance"), bold.Sprint("Address"))
	for _, m := range markers {
		star := " "
		if m.Saved {
			star = "★"
		}
		name := m.Name
		if m.Active {
			name = active.Sprint(name)
		}
		dist := faint.Sprint("-")
		if m.Distance >= 0 {
			dist = viewport.FormatDistance(m.Distance)
		}
		tbl.AddRow(star, name, m.Hours(), dist, m.Address)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Favorites prints the saved entries with their notes.
func (pp *PrettyPrint) Favorites(c favorites.Collection) {
	if len(c) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint, color.Italic)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Hours"), bold.Sprint("Notes"))
	for _, e := range c {
		notes := e.Notes
		if notes == "" {
			notes = faint.Sprint("no notes")
		}
		tbl.AddRow(e.Name, e.Hours(), notes)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Detail prints the detail view of the active selection.
func (pp *PrettyPrint) Detail(s selection.State) {
	if s.Active == nil {
		pp.none()
		return
	}
	p := *s.Active
	label := color.New(color.Faint)

	pp.Title(p.Name)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(label.Sprint("Hours"), p.Hours())
	tbl.AddRow(label.Sprint("Address"), p.Address)
	tbl.AddRow(label.Sprint("Position"), p.Position().String())
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	pp.Note(s.NoteDraft)
}

// Note prints a note wrapped to the printer width.
func (pp *PrettyPrint) Note(notes string) {
	label := color.New(color.Faint)
	_, _ = label.Fprintln(pp.out(), "Notes")
	if strings.TrimSpace(notes) == "" {
		pp.none()
		return
	}
	for _, line := range strings.Split(wordwrap.String(notes, pp.width()), "\n") {
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", line)
	}
	pp.NewLine()
}

// Region prints a camera region.
func (pp *PrettyPrint) Region(r viewport.Region) {
	faint := color.New(color.Faint)
	_, _ = fmt.Fprintf(pp.out(), "%s %s\n", faint.Sprint("Region"), r.String())
}

// Position prints the device position, if known.
func (pp *PrettyPrint) Position(p *poi.Position) {
	faint := color.New(color.Faint)
	if p == nil {
		_, _ = faint.Fprintln(pp.out(), "Location unknown")
		return
	}
	_, _ = fmt.Fprintf(pp.out(), "%s %s\n", faint.Sprint("You are at"), p.String())
}

// Notices prints recovered errors as warnings.
func (pp *PrettyPrint) Notices(ns []app.Notice) {
	warn := color.New(color.FgYellow)
	for _, n := range ns {
		_, _ = warn.Fprintf(pp.out(), "! %s\n", n.Message)
	}
}
