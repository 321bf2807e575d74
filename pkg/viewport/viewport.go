// Package viewport derives the map camera region from the current selection,
// the device position and a fallback.
package viewport

import (
	"fmt"
	"math"

	"tableflip.dev/shoptrack/pkg/poi"
)

// Spans used for each source of the center point.
const (
	SelectionLatitudeDelta  = 0.005
	SelectionLongitudeDelta = 0.005
	AreaLatitudeDelta       = 0.0922
	AreaLongitudeDelta      = 0.0421
)

// Rotterdam city center.
const (
	DefaultLatitude  = 51.9225
	DefaultLongitude = 4.47917
)

// Source records which input a region was derived from.
type Source int

const (
	SourceFallback Source = iota
	SourcePosition
	SourceSelection
)

func (s Source) String() string {
	switch s {
	case SourceSelection:
		return "selection"
	case SourcePosition:
		return "position"
	default:
		return "fallback"
	}
}

// Region is a map camera: a center and the span shown around it, in degrees.
type Region struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitudeDelta"`
	LongitudeDelta float64 `json:"longitudeDelta"`
	Source         Source  `json:"-"`
}

// Fallback returns the region shown when nothing else is known.
func Fallback(lat, lon float64) Region {
	return Region{
		Latitude:       lat,
		Longitude:      lon,
		LatitudeDelta:  AreaLatitudeDelta,
		LongitudeDelta: AreaLongitudeDelta,
		Source:         SourceFallback,
	}
}

// DefaultFallback is Fallback centered on Rotterdam.
func DefaultFallback() Region {
	return Fallback(DefaultLatitude, DefaultLongitude)
}

// Derive picks the camera region. An active selection always wins, then the
// device position, then fallback. It is pure, so a late position reading can
// never move the camera off a selection.
func Derive(active *poi.PointOfInterest, position *poi.Position, fallback Region) Region {
	switch {
	case active != nil:
		return Region{
			Latitude:       active.Latitude,
			Longitude:      active.Longitude,
			LatitudeDelta:  SelectionLatitudeDelta,
			LongitudeDelta: SelectionLongitudeDelta,
			Source:         SourceSelection,
		}
	case position != nil:
		return Region{
			Latitude:       position.Latitude,
			Longitude:      position.Longitude,
			LatitudeDelta:  AreaLatitudeDelta,
			LongitudeDelta: AreaLongitudeDelta,
			Source:         SourcePosition,
		}
	default:
		fallback.Source = SourceFallback
		return fallback
	}
}

// Bounds returns the south-west and north-east corners of the region.
func (r Region) Bounds() (minLat, minLon, maxLat, maxLon float64) {
	return r.Latitude - r.LatitudeDelta/2, r.Longitude - r.LongitudeDelta/2,
		r.Latitude + r.LatitudeDelta/2, r.Longitude + r.LongitudeDelta/2
}

// Contains reports whether the coordinate is visible in the region.
func (r Region) Contains(lat, lon float64) bool {
	minLat, minLon, maxLat, maxLon := r.Bounds()
	return lat >= minLat && lat <= maxLat && lon >= minLon && lon <= maxLon
}

func (r Region) String() string {
	return fmt.Sprintf("%.5f, %.5f (±%.4f, ±%.4f) from %s",
		r.Latitude, r.Longitude, r.LatitudeDelta/2, r.LongitudeDelta/2, r.Source)
}

const earthRadiusKm = 6371.0

// Distance is the great-circle distance between two positions in meters.
func Distance(a, b poi.Position) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c * 1000
}

// FormatDistance renders meters as "850 m" or "2.4 km".
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
