// Package region prints the map camera region.
package region

import (
	"context"
	"io"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/printers"
)

type Region struct {
	Session *app.Session
	// Name, when set, is selected first.
	Name string
	Out  io.Writer
}

func (r *Region) Do(ctx context.Context) error {
	pp := &printers.PrettyPrint{Out: r.Out}
	pp.Notices(r.Session.Start(ctx))

	if r.Name != "" {
		if _, err := r.Session.SelectByName(poi.Identity(r.Name)); err != nil {
			return err
		}
	}
	pp.Region(r.Session.Region())
	pp.Position(r.Session.Position())
	return nil
}
