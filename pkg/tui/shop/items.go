package shop

import (
	"fmt"

	"github.com/charmbracelet/bubbles/v2/list"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/favorites"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/viewport"
)

// markerItem is a catalog row on the map screen.
type markerItem struct {
	marker app.Marker
}

func (i markerItem) Title() string {
	glyph := "○"
	if i.marker.Active {
		glyph = "●"
	}
	star := ""
	if i.marker.Saved {
		star = " ★"
	}
	return fmt.Sprintf("%s %s%s", glyph, i.marker.Name, star)
}

func (i markerItem) Description() string {
	if i.marker.Distance >= 0 {
		return fmt.Sprintf("%s · %s", i.marker.Hours(), viewport.FormatDistance(i.marker.Distance))
	}
	return i.marker.Hours()
}

func (i markerItem) FilterValue() string { return i.marker.Name }

// savedItem is a row on the saved screen.
type savedItem struct {
	entry poi.SavedEntry
}

func (i savedItem) Title() string { return i.entry.Name }

func (i savedItem) Description() string {
	if i.entry.Notes == "" {
		return i.entry.Hours()
	}
	return i.entry.Notes
}

func (i savedItem) FilterValue() string { return i.entry.Name }

func markerItems(markers []app.Marker, query string) []list.Item {
	keep := map[poi.Identity]bool{}
	pois := make([]poi.PointOfInterest, 0, len(markers))
	for _, m := range markers {
		pois = append(pois, m.PointOfInterest)
	}
	for _, p := range poi.Search(pois, query) {
		keep[p.Identity()] = true
	}

	items := make([]list.Item, 0, len(markers))
	for _, m := range markers {
		if keep[m.Identity()] {
			items = append(items, markerItem{marker: m})
		}
	}
	return items
}

func savedItems(c favorites.Collection) []list.Item {
	items := make([]list.Item, 0, len(c))
	for _, e := range c {
		items = append(items, savedItem{entry: e})
	}
	return items
}

func indexOf(items []list.Item, id poi.Identity) int {
	for i, it := range items {
		switch v := it.(type) {
		case markerItem:
			if v.marker.Identity() == id {
				return i
			}
		case savedItem:
			if v.entry.Identity() == id {
				return i
			}
		}
	}
	return -1
}
