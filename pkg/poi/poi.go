// Package poi holds the point of interest records shown on the map and the
// saved entries kept in the favorites list.
package poi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Identity is the natural key of a point of interest. The remote data has no
// stable id, so the display name is used, compared case sensitively.
type Identity string

// PointOfInterest is a single remote-supplied location record.
type PointOfInterest struct {
	Name        string  `json:"name" yaml:"name"`
	Latitude    float64 `json:"latitude" yaml:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude"`
	OpeningTime string  `json:"opening_time" yaml:"opening_time"`
	ClosingTime string  `json:"closing_time" yaml:"closing_time"`
	Address     string  `json:"address" yaml:"address"`
}

// Identity returns the key used for uniqueness in the favorites list.
func (p PointOfInterest) Identity() Identity {
	return Identity(p.Name)
}

// Hours formats the opening hours the way the detail view shows them.
func (p PointOfInterest) Hours() string {
	return fmt.Sprintf("%s - %s", p.OpeningTime, p.ClosingTime)
}

// Position returns the coordinate of the point of interest.
func (p PointOfInterest) Position() Position {
	return Position{Latitude: p.Latitude, Longitude: p.Longitude}
}

func (p PointOfInterest) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Hours())
}

// SavedEntry is a point of interest with the user's note attached.
type SavedEntry struct {
	PointOfInterest `yaml:",inline"`
	Notes           string `json:"notes" yaml:"notes"`
}

// NewSavedEntry attaches notes to a point of interest.
func NewSavedEntry(p PointOfInterest, notes string) SavedEntry {
	return SavedEntry{PointOfInterest: p, Notes: notes}
}

// MarshalJSON writes the flat on-disk shape
// {name, latitude, longitude, opening_time, closing_time, address, notes}.
func (e SavedEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(savedEntryJSON{
		Name:        e.Name,
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		OpeningTime: e.OpeningTime,
		ClosingTime: e.ClosingTime,
		Address:     e.Address,
		Notes:       e.Notes,
	})
}

// UnmarshalJSON reads the flat on-disk shape. A missing notes field decodes
// as an empty note.
func (e *SavedEntry) UnmarshalJSON(b []byte) error {
	var raw savedEntryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.PointOfInterest = PointOfInterest{
		Name:        raw.Name,
		Latitude:    raw.Latitude,
		Longitude:   raw.Longitude,
		OpeningTime: raw.OpeningTime,
		ClosingTime: raw.ClosingTime,
		Address:     raw.Address,
	}
	e.Notes = raw.Notes
	return nil
}

type savedEntryJSON struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	OpeningTime string  `json:"opening_time"`
	ClosingTime string  `json:"closing_time"`
	Address     string  `json:"address"`
	Notes       string  `json:"notes"`
}

// Position is a device or marker coordinate.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p Position) String() string {
	return fmt.Sprintf("%.5f, %.5f", p.Latitude, p.Longitude)
}

// Find returns the point of interest with the given identity.
func Find(list []PointOfInterest, id Identity) (PointOfInterest, bool) {
	for _, p := range list {
		if p.Identity() == id {
			return p, true
		}
	}
	return PointOfInterest{}, false
}

// Search returns the points of interest whose name contains query, ignoring
// case. An empty query matches everything.
func Search(list []PointOfInterest, query string) []PointOfInterest {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]PointOfInterest, 0, len(list))
	for _, p := range list {
		if query == "" || strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out
}
