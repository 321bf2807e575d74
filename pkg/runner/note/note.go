// Package note edits the note of a saved entry.
package note

import (
	"context"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/printers"
)

type Note struct {
	Session *app.Session
	Name    string
	Text    string
	Out     io.Writer
}

func (n *Note) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := &printers.PrettyPrint{Out: out}
	pp.Notices(n.Session.StartLocal(ctx))

	if _, err := n.Session.UpdateNotes(ctx, poi.Identity(n.Name), n.Text); err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintf(out, "Updated notes for %s\n", n.Name)
	pp.Note(n.Text)
	return nil
}
