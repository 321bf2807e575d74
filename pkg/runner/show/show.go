// Package show selects a point of interest and prints its detail view.
package show

import (
	"context"
	"io"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/printers"
)

type Show struct {
	Session *app.Session
	Name    string
	Out     io.Writer
}

func (s *Show) Do(ctx context.Context) error {
	pp := &printers.PrettyPrint{Out: s.Out}
	pp.Notices(s.Session.Start(ctx))

	st, err := s.Session.SelectByName(poi.Identity(s.Name))
	if err != nil {
		return err
	}
	pp.Detail(st)
	pp.Region(s.Session.Region())
	return nil
}
