// Package app wires the favorites repository, the selection controller, the
// catalog, the location provider and the theme into the map screen session
// that the CLI and the terminal UI share.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

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

// ErrNotFound is returned when a name matches neither the catalog nor the
// favorites.
var ErrNotFound = errors.New("app: point of interest not found")

// ErrNoPendingWrite is returned by RetrySave when the last save succeeded.
var ErrNoPendingWrite = errors.New("app: no failed save to retry")

// Options configures a Session.
type Options struct {
	Store    store.Store
	Catalog  catalog.Loader
	Location location.Provider
	Fallback viewport.Region
	Log      zerolog.Logger
}

// Session is the map screen: it owns the selection and theme state and is the
// one place the user interfaces talk to.
type Session struct {
	store    store.Store
	loader   catalog.Loader
	provider location.Provider
	fallback viewport.Region
	log      zerolog.Logger

	Favorites *favorites.Repository
	Selection *selection.Controller
	Theme     *theme.State

	mu       sync.Mutex
	catalog  []poi.PointOfInterest
	position *poi.Position
	notices  []Notice
	pending  *favorites.StorageWriteError
}

// New builds a session. Nothing is read until Start.
func New(opts Options) *Session {
	s := &Session{
		store:    opts.Store,
		loader:   opts.Catalog,
		provider: opts.Location,
		fallback: opts.Fallback,
		log:      opts.Log,
		catalog:  []poi.PointOfInterest{},
	}
	if s.fallback == (viewport.Region{}) {
		s.fallback = viewport.DefaultFallback()
	}
	if s.provider == nil {
		s.provider = location.DeniedProvider{}
	}
	s.Favorites = favorites.New(opts.Store)
	s.Theme = theme.New(opts.Store)
	s.Selection = selection.New(s.Favorites, selection.SaverFunc(s.save))
	return s
}

// Start loads the favorites, the theme, the catalog and the device position.
// Every failure is recovered into a safe default and reported as a Notice:
// an empty favorites list, the light theme, an empty catalog or the fallback
// region.
func (s *Session) Start(ctx context.Context) []Notice {
	var (
		wg      sync.WaitGroup
		list    []poi.PointOfInterest
		listErr error
		pos     poi.Position
		posErr  error
	)

	if s.loader != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			list, listErr = s.loader.Fetch(ctx)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		pos, posErr = location.Locate(ctx, s.provider)
	}()

	s.loadLocal(ctx)

	wg.Wait()

	s.mu.Lock()
	if listErr == nil && list != nil {
		s.catalog = list
	}
	if posErr == nil {
		p := pos
		s.position = &p
	}
	s.mu.Unlock()

	if listErr != nil {
		s.notify(NoticeCatalog, "Points of interest could not be fetched.", listErr)
	}
	if posErr != nil {
		if errors.Is(posErr, location.ErrPermissionDenied) {
			s.notify(NoticeLocation, "Permission to access location was denied.", posErr)
		} else {
			s.notify(NoticeLocation, "Current location is unavailable.", posErr)
		}
	}

	return s.Notices()
}

// StartLocal loads only what lives in the store: the favorites and the theme.
// Commands that never show the map use it to skip the catalog fetch.
func (s *Session) StartLocal(ctx context.Context) []Notice {
	s.loadLocal(ctx)
	return s.Notices()
}

func (s *Session) loadLocal(ctx context.Context) {
	if _, err := s.Favorites.Load(ctx); err != nil {
		s.notify(NoticeStorageRead, "Saved points of interest could not be loaded; starting with an empty list.", err)
	}
	if _, err := s.Theme.Load(ctx); err != nil {
		s.notify(NoticeTheme, "Theme preference could not be loaded; using light.", err)
	}
}

// Catalog returns the fetched points of interest.
func (s *Session) Catalog() []poi.PointOfInterest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]poi.PointOfInterest, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Position returns the device position, or nil when unknown.
func (s *Session) Position() *poi.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position == nil {
		return nil
	}
	p := *s.position
	return &p
}

// Region derives the camera from the current selection and position.
func (s *Session) Region() viewport.Region {
	return viewport.Derive(s.Selection.State().Active, s.Position(), s.fallback)
}

// Lookup finds a point of interest by exact name in the catalog, then in the
// favorites so saved entries stay reachable when the catalog is unavailable.
func (s *Session) Lookup(id poi.Identity) (poi.PointOfInterest, error) {
	if p, ok := poi.Find(s.Catalog(), id); ok {
		return p, nil
	}
	if e, ok := s.Favorites.FindByIdentity(id); ok {
		return e.PointOfInterest, nil
	}
	return poi.PointOfInterest{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Select opens the detail of p.
func (s *Session) Select(p poi.PointOfInterest) selection.State {
	return s.Selection.Select(p)
}

// Navigate is the entry point used by other screens, such as the saved
// list's "view on map". It behaves exactly like Select.
func (s *Session) Navigate(p poi.PointOfInterest) selection.State {
	return s.Selection.Navigate(p)
}

// SelectByName looks up id and selects it.
func (s *Session) SelectByName(id poi.Identity) (selection.State, error) {
	p, err := s.Lookup(id)
	if err != nil {
		return selection.State{}, err
	}
	return s.Select(p), nil
}

// ConfirmSave saves the active selection with its draft. A write failure is
// kept as the pending write so RetrySave can re-issue it.
func (s *Session) ConfirmSave(ctx context.Context) error {
	return s.Selection.ConfirmSave(ctx)
}

func (s *Session) save(ctx context.Context, entry poi.SavedEntry) error {
	_, err := s.Favorites.Save(ctx, entry)
	s.track(err)
	return err
}

// UpdateNotes replaces the notes of a saved entry.
func (s *Session) UpdateNotes(ctx context.Context, id poi.Identity, notes string) (favorites.Collection, error) {
	c, err := s.Favorites.UpdateNotes(ctx, id, notes)
	s.track(err)
	return c, err
}

// Delete removes a saved entry.
func (s *Session) Delete(ctx context.Context, id poi.Identity) (favorites.Collection, error) {
	c, err := s.Favorites.Delete(ctx, id)
	s.track(err)
	return c, err
}

func (s *Session) track(err error) {
	var writeErr *favorites.StorageWriteError
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err == nil:
		s.pending = nil
	case errors.As(err, &writeErr):
		s.pending = writeErr
	}
	if writeErr != nil {
		s.log.Warn().Err(writeErr.Err).Str("key", writeErr.Key).Msg("favorites write failed")
	}
}

// PendingWrite returns the last failed write, or nil.
func (s *Session) PendingWrite() *favorites.StorageWriteError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// RetrySave writes the favorites again after a failed save.
func (s *Session) RetrySave(ctx context.Context) error {
	pending := s.PendingWrite()
	if pending == nil {
		return ErrNoPendingWrite
	}
	if err := pending.Retry(ctx); err != nil {
		return fmt.Errorf("app: retry save: %w", err)
	}
	s.mu.Lock()
	if s.pending == pending {
		s.pending = nil
	}
	s.mu.Unlock()
	return nil
}

// Watch reloads the favorites whenever the store reports an outside change
// and forwards the event. Stores that cannot watch return a nil channel.
func (s *Session) Watch(ctx context.Context) (<-chan store.Event, error) {
	w, ok := s.store.(store.Watcher)
	if !ok {
		return nil, nil
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan store.Event)
	go func() {
		defer close(out)
		for ev := range events {
			if ev.Type == store.EventInvalidated || ev.Key == favorites.Key {
				if _, err := s.Favorites.Reload(ctx); err != nil {
					s.log.Warn().Err(err).Msg("favorites reload failed")
				}
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
