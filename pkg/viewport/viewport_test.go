package viewport

import (
	"math"
	"testing"

	"tableflip.dev/shoptrack/pkg/poi"
)

func TestDerivePrecedence(t *testing.T) {
	active := &poi.PointOfInterest{Name: "Bean", Latitude: 51.92, Longitude: 4.48}
	pos := &poi.Position{Latitude: 52.0, Longitude: 4.3}
	fallback := DefaultFallback()

	tests := []struct {
		name   string
		active *poi.PointOfInterest
		pos    *poi.Position
		want   Region
	}{
		{
			name:   "selection wins over position",
			active: active,
			pos:    pos,
			want:   Region{Latitude: 51.92, Longitude: 4.48, LatitudeDelta: 0.005, LongitudeDelta: 0.005, Source: SourceSelection},
		},
		{
			name: "position without selection",
			pos:  pos,
			want: Region{Latitude: 52.0, Longitude: 4.3, LatitudeDelta: 0.0922, LongitudeDelta: 0.0421, Source: SourcePosition},
		},
		{
			name: "fallback",
			want: Region{Latitude: 51.9225, Longitude: 4.47917, LatitudeDelta: 0.0922, LongitudeDelta: 0.0421, Source: SourceFallback},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(tt.active, tt.pos, fallback); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	r := DefaultFallback()
	if !r.Contains(51.92, 4.48) {
		t.Fatal("expected center to be contained")
	}
	if r.Contains(52.5, 4.48) {
		t.Fatal("expected far latitude to be outside")
	}
	minLat, _, maxLat, _ := r.Bounds()
	if math.Abs((maxLat-minLat)-r.LatitudeDelta) > 1e-9 {
		t.Fatalf("bounds span %v, want %v", maxLat-minLat, r.LatitudeDelta)
	}
}

func TestDistance(t *testing.T) {
	// Rotterdam Centraal to Erasmusbrug is roughly 2 km.
	a := poi.Position{Latitude: 51.9244, Longitude: 4.4699}
	b := poi.Position{Latitude: 51.9094, Longitude: 4.4868}
	d := Distance(a, b)
	if d < 1800 || d > 2200 {
		t.Fatalf("unexpected distance %v", d)
	}
	if Distance(a, a) != 0 {
		t.Fatal("expected zero distance to self")
	}
	if got := FormatDistance(d); got != "2.0 km" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatDistance(850); got != "850 m" {
		t.Fatalf("unexpected format %q", got)
	}
}
