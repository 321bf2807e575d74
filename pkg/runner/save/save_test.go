package save

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"tableflip.dev/shoptrack/pkg/app"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/store"
)

type staticCatalog []poi.PointOfInterest

func (c staticCatalog) Fetch(context.Context) ([]poi.PointOfInterest, error) { return c, nil }

var bean = poi.PointOfInterest{Name: "Bean", Latitude: 51.92, Longitude: 4.48}

func newSession(mem store.Store) *app.Session {
	return app.New(app.Options{Store: mem, Catalog: staticCatalog{bean}, Log: zerolog.Nop()})
}

func TestSaveKeepsExistingNoteWithoutFlag(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	note := "great espresso"
	first := &Save{Session: newSession(mem), Name: "Bean", Note: &note, Out: &bytes.Buffer{}}
	if err := first.Do(ctx); err != nil {
		t.Fatalf("first save: %v", err)
	}

	again := newSession(mem)
	second := &Save{Session: again, Name: "Bean", Out: &bytes.Buffer{}}
	if err := second.Do(ctx); err != nil {
		t.Fatalf("second save: %v", err)
	}
	e, ok := again.Favorites.FindByIdentity("Bean")
	if !ok || e.Notes != "great espresso" {
		t.Fatalf("expected note kept, got %#v", e)
	}
	if n := len(again.Favorites.All()); n != 1 {
		t.Fatalf("expected one entry, got %d", n)
	}
}

func TestSaveUnknownName(t *testing.T) {
	s := &Save{Session: newSession(store.NewMemory()), Name: "Nowhere", Out: &bytes.Buffer{}}
	if err := s.Do(context.Background()); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
