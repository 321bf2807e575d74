package app

import (
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/viewport"
)

// Marker is a catalog entry as the map shows it.
type Marker struct {
	poi.PointOfInterest
	// Active is set on the selected marker, which is drawn highlighted.
	Active bool
	Saved  bool
	InView bool
	// Distance from the device in meters, negative when unknown.
	Distance float64
}

// Markers annotates the catalog for display.
func (s *Session) Markers() []Marker {
	state := s.Selection.State()
	region := viewport.Derive(state.Active, s.Position(), s.fallback)
	pos := s.Position()

	list := s.Catalog()
	out := make([]Marker, 0, len(list))
	for _, p := range list {
		m := Marker{
			PointOfInterest: p,
			Active:          state.Active != nil && state.Active.Identity() == p.Identity(),
			InView:          region.Contains(p.Latitude, p.Longitude),
			Distance:        -1,
		}
		_, m.Saved = s.Favorites.FindByIdentity(p.Identity())
		if pos != nil {
			m.Distance = viewport.Distance(*pos, p.Position())
		}
		out = append(out, m)
	}
	return out
}
