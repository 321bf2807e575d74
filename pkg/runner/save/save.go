// Package save adds a point of interest to the saved list.
package save

import (
	"context"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/printers"
)

type Save struct {
	Session *app.Session
	Name    string
	// Note replaces the saved note when set; otherwise the existing note is
	// kept.
	Note *string
	Out  io.Writer
}

func (s *Save) Do(ctx context.Context) error {
	out := s.Out
	if out == nil {
		out = color.Output
	}
	pp := &printers.PrettyPrint{Out: out}
	pp.Notices(s.Session.Start(ctx))

	st, err := s.Session.SelectByName(poi.Identity(s.Name))
	if err != nil {
		return err
	}
	if s.Note != nil {
		st = s.Session.Selection.Edit(*s.Note)
	}
	if err := s.Session.ConfirmSave(ctx); err != nil {
		return err
	}

	_, _ = color.New(color.FgGreen).Fprintf(out, "Saved %s\n", st.Active.Name)
	pp.Note(st.NoteDraft)
	return nil
}
