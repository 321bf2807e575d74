package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/shoptrack/pkg/catalog"
	"tableflip.dev/shoptrack/pkg/favorites"
	"tableflip.dev/shoptrack/pkg/location"
	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/selection"
	"tableflip.dev/shoptrack/pkg/store"
	"tableflip.dev/shoptrack/pkg/theme"
	"tableflip.dev/shoptrack/pkg/viewport"
)

type staticCatalog struct {
	list []poi.PointOfInterest
	err  error
}

func (c staticCatalog) Fetch(context.Context) ([]poi.PointOfInterest, error) {
	return c.list, c.err
}

// flakyStore wraps a Memory store and can fail reads or writes.
type flakyStore struct {
	*store.Memory

	mu      sync.Mutex
	failGet error
	failSet error
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	err := f.failGet
	f.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return f.Memory.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	err := f.failSet
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flakyStore) setFailure(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSet = err
}

var (
	bean = poi.PointOfInterest{Name: "Bean", Latitude: 51.92, Longitude: 4.48, OpeningTime: "08:00", ClosingTime: "18:00"}
	cup  = poi.PointOfInterest{Name: "Cup", Latitude: 51.91, Longitude: 4.46}
)

func newSession(t *testing.T, s store.Store, cat catalog.Loader, loc location.Provider) *Session {
	t.Helper()
	return New(Options{
		Store:    s,
		Catalog:  cat,
		Location: loc,
		Log:      zerolog.Nop(),
	})
}

func TestStartHappyPath(t *testing.T) {
	s := newSession(t, store.NewMemory(),
		staticCatalog{list: []poi.PointOfInterest{bean, cup}},
		location.Static{Position: poi.Position{Latitude: 52, Longitude: 4.3}})

	if notices := s.Start(context.Background()); len(notices) != 0 {
		t.Fatalf("unexpected notices %v", notices)
	}
	if len(s.Catalog()) != 2 {
		t.Fatalf("expected catalog of 2, got %v", s.Catalog())
	}
	r := s.Region()
	if r.Source != viewport.SourcePosition || r.Latitude != 52 {
		t.Fatalf("expected region on device position, got %+v", r)
	}
}

func TestStartRecoversEveryFailure(t *testing.T) {
	fs := &flakyStore{Memory: store.NewMemory(), failGet: errors.New("io error")}
	s := newSession(t, fs,
		staticCatalog{err: &catalog.FetchError{URL: "x", Err: errors.New("offline")}},
		location.DeniedProvider{})

	notices := s.Start(context.Background())

	kinds := map[NoticeKind]bool{}
	for _, n := range notices {
		kinds[n.Kind] = true
	}
	for _, k := range []NoticeKind{NoticeStorageRead, NoticeTheme, NoticeCatalog, NoticeLocation} {
		if !kinds[k] {
			t.Errorf("expected %s notice in %v", k, notices)
		}
	}

	if len(s.Favorites.All()) != 0 {
		t.Fatal("expected empty favorites")
	}
	if s.Theme.Mode() != theme.Light {
		t.Fatal("expected light theme")
	}
	if c := s.Catalog(); c == nil || len(c) != 0 {
		t.Fatalf("expected empty catalog, got %#v", c)
	}
	if r := s.Region(); r != viewport.DefaultFallback() {
		t.Fatalf("expected fallback region, got %+v", r)
	}
}

func TestPermissionDeniedNotice(t *testing.T) {
	s := newSession(t, store.NewMemory(), staticCatalog{}, location.DeniedProvider{})
	notices := s.Start(context.Background())
	if len(notices) != 1 || !errors.Is(notices[0].Err, location.ErrPermissionDenied) {
		t.Fatalf("expected permission notice, got %v", notices)
	}
}

// First visit: select, write a note, save. The detail closes, the entry is
// saved and selecting again brings the note back.
func TestSaveNoteScenario(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, store.NewMemory(), staticCatalog{list: []poi.PointOfInterest{bean}}, nil)
	s.Start(ctx)

	if st := s.Select(bean); st.NoteDraft != "" {
		t.Fatalf("expected empty draft, got %q", st.NoteDraft)
	}
	if r := s.Region(); r.Source != viewport.SourceSelection || r.LatitudeDelta != 0.005 {
		t.Fatalf("expected tight region on selection, got %+v", r)
	}
	s.Selection.Edit("great espresso")
	if err := s.ConfirmSave(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if st := s.Selection.State(); st.Phase() != selection.Idle {
		t.Fatalf("expected idle, got %v", st.Phase())
	}
	got := s.Favorites.All()
	if len(got) != 1 || got[0].Notes != "great espresso" {
		t.Fatalf("unexpected favorites %v", got)
	}
	if st := s.Select(bean); st.NoteDraft != "great espresso" {
		t.Fatalf("expected pre-filled note, got %q", st.NoteDraft)
	}
}

func TestFailedSaveCanBeRetried(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Memory: store.NewMemory()}
	s := newSession(t, fs, staticCatalog{list: []poi.PointOfInterest{bean}}, nil)
	s.Start(ctx)

	if err := s.RetrySave(ctx); !errors.Is(err, ErrNoPendingWrite) {
		t.Fatalf("expected ErrNoPendingWrite, got %v", err)
	}

	fs.setFailure(errors.New("disk full"))
	s.Select(bean)
	s.Selection.Edit("note")
	err := s.ConfirmSave(ctx)
	var writeErr *favorites.StorageWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected StorageWriteError, got %v", err)
	}
	if st := s.Selection.State(); st.Phase() != selection.Editing || st.NoteDraft != "note" {
		t.Fatalf("expected draft kept after failure, got %#v", st)
	}
	if s.PendingWrite() == nil {
		t.Fatal("expected pending write")
	}

	fs.setFailure(nil)
	if err := s.RetrySave(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s.PendingWrite() != nil {
		t.Fatal("expected pending write cleared")
	}
	if v, ok, _ := fs.Memory.Get(ctx, favorites.Key); !ok || v == "" {
		t.Fatal("expected favorites persisted after retry")
	}
}

func TestNavigateFromSavedList(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, store.NewMemory(), staticCatalog{}, nil)
	s.Start(ctx)
	if _, err := s.Favorites.Save(ctx, poi.NewSavedEntry(cup, "quiet")); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Catalog is empty, so the saved entry is the only way to find Cup.
	p, err := s.Lookup("Cup")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	st := s.Navigate(p)
	if st.Active == nil || st.Active.Name != "Cup" || st.NoteDraft != "quiet" {
		t.Fatalf("unexpected state %#v", st)
	}
	if _, err := s.Lookup("Nowhere"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkersHighlightActive(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, store.NewMemory(),
		staticCatalog{list: []poi.PointOfInterest{bean, cup}},
		location.Static{Position: poi.Position{Latitude: 51.92, Longitude: 4.48}})
	s.Start(ctx)
	s.Select(cup)

	ms := s.Markers()
	if len(ms) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(ms))
	}
	if ms[0].Active || !ms[1].Active {
		t.Fatalf("expected only Cup active: %+v", ms)
	}
	if ms[0].Distance != 0 {
		t.Fatalf("expected zero distance to Bean, got %v", ms[0].Distance)
	}
	if ms[0].InView {
		t.Fatal("Bean should be outside the tight region around Cup")
	}
}

func TestWatchReloadsFavorites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	d, err := store.NewDisk(dir)
	if err != nil {
		t.Fatalf("disk: %v", err)
	}
	if _, err := favorites.New(d).Save(ctx, poi.NewSavedEntry(bean, "old")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := newSession(t, d, staticCatalog{}, nil)
	s.Start(ctx)
	if e, ok := s.Favorites.FindByIdentity("Bean"); !ok || e.Notes != "old" {
		t.Fatalf("expected seeded entry, got %#v %v", e, ok)
	}

	events, err := s.Watch(ctx)
	if err != nil || events == nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	// Another process writes the favorites through its own store.
	elsewhere, err := store.NewDisk(dir)
	if err != nil {
		t.Fatalf("disk: %v", err)
	}
	if _, err := favorites.New(elsewhere).Save(ctx, poi.NewSavedEntry(bean, "from elsewhere")); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("watch closed before the favorites changed")
			}
			if ev.Key != favorites.Key && ev.Type != store.EventInvalidated {
				continue
			}
			if e, found := s.Favorites.FindByIdentity("Bean"); found && e.Notes == "from elsewhere" {
				return
			}
		case <-deadline:
			e, _ := s.Favorites.FindByIdentity("Bean")
			t.Fatalf("reload did not pick up outside change, notes %q", e.Notes)
		}
	}
}

func TestWatchUnsupported(t *testing.T) {
	s := newSession(t, store.NewMemory(), nil, nil)
	events, err := s.Watch(context.Background())
	if err != nil || events != nil {
		t.Fatalf("expected nil channel for memory store, got %v %v", events, err)
	}
}

func TestStartLocalSkipsCatalog(t *testing.T) {
	called := false
	s := New(Options{
		Store:   store.NewMemory(),
		Catalog: loaderFunc(func(context.Context) ([]poi.PointOfInterest, error) { called = true; return nil, nil }),
		Log:     zerolog.Nop(),
	})
	if notices := s.StartLocal(context.Background()); len(notices) != 0 {
		t.Fatalf("unexpected notices %v", notices)
	}
	if called {
		t.Fatal("catalog fetched by StartLocal")
	}
}

type loaderFunc func(context.Context) ([]poi.PointOfInterest, error)

func (f loaderFunc) Fetch(ctx context.Context) ([]poi.PointOfInterest, error) { return f(ctx) }
