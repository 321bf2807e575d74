// Package catalog lists the points of interest on the map.
package catalog

import (
	"context"
	"io"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/printers"
)

// Catalog prints the markers, optionally filtered by name.
type Catalog struct {
	Session *app.Session
	Query   string
	// InView limits the list to markers inside the current region.
	InView bool
	Out    io.Writer
}

func (c *Catalog) Do(ctx context.Context) error {
	pp := &printers.PrettyPrint{Out: c.Out}
	pp.Notices(c.Session.Start(ctx))

	keep := map[poi.Identity]bool{}
	for _, p := range poi.Search(c.Session.Catalog(), c.Query) {
		keep[p.Identity()] = true
	}
	var markers []app.Marker
	for _, m := range c.Session.Markers() {
		if !keep[m.Identity()] || (c.InView && !m.InView) {
			continue
		}
		markers = append(markers, m)
	}

	pp.TitleWithCount("Points of interest", len(markers))
	pp.Markers(markers)
	pp.Position(c.Session.Position())
	return nil
}
