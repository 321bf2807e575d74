// Package favorites keeps the user's saved points of interest, with notes,
// in a Store under a single key.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"tableflip.dev/shoptrack/pkg/poi"
	"tableflip.dev/shoptrack/pkg/store"
)

// Key is the store key the whole collection is serialized under.
const Key = "savedCoffeeshops"

// BackupKey holds a copy of a stored value that could not be decoded, taken
// before the repository writes over it.
const BackupKey = Key + ".unreadable"

// ErrNotSaved is returned when a note update targets an entry that is not in
// the collection.
var ErrNotSaved = errors.New("favorites: entry not saved")

// Collection is the ordered favorites list. Insertion order is preserved and
// there is at most one entry per identity.
type Collection []poi.SavedEntry

func (c Collection) clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

func (c Collection) index(id poi.Identity) int {
	for i, e := range c {
		if e.Identity() == id {
			return i
		}
	}
	return -1
}

// Repository owns the in-memory collection and keeps the store in step with
// it. Each mutation holds the lock across the read-modify-write and the store
// write, so concurrent callers never lose each other's updates.
//
// The whole collection is rewritten on every change. That keeps the on-disk
// format stable and bounds practical size to what fits comfortably in one
// value.
type Repository struct {
	store store.Store

	mu     sync.Mutex
	items  Collection
	loaded bool
}

// New returns a repository backed by s. Call Load before reading.
func New(s store.Store) *Repository {
	return &Repository{store: s}
}

// Load reads the collection from the store. An absent key is an empty
// collection. A read or decode failure also leaves the collection empty and
// is reported as *StorageReadError.
func (r *Repository) Load(ctx context.Context) (Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked(ctx)
}

// Reload re-reads the store, e.g. after another process changed it.
func (r *Repository) Reload(ctx context.Context) (Collection, error) {
	return r.Load(ctx)
}

func (r *Repository) loadLocked(ctx context.Context) (Collection, error) {
	r.items = Collection{}
	r.loaded = true

	raw, ok, err := r.store.Get(ctx, Key)
	if err != nil {
		return r.items.clone(), &StorageReadError{Key: Key, Err: err}
	}
	if !ok || raw == "" {
		return r.items.clone(), nil
	}

	var decoded Collection
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		readErr := &StorageReadError{Key: Key, Err: err}
		if berr := r.store.Set(ctx, BackupKey, raw); berr != nil {
			readErr.Err = errors.Join(err, fmt.Errorf("backup to %q: %w", BackupKey, berr))
		} else {
			readErr.Backup = BackupKey
		}
		return r.items.clone(), readErr
	}
	r.items = dedupe(decoded)
	return r.items.clone(), nil
}

// Save upserts entry by identity: an existing entry is replaced in place,
// otherwise it is appended. The whole collection is written before Save
// returns.
func (r *Repository) Save(ctx context.Context, entry poi.SavedEntry) (Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return r.items.clone(), err
	}

	prev := r.items.clone()
	next := r.items.clone()
	if i := next.index(entry.Identity()); i >= 0 {
		next[i] = entry
	} else {
		next = append(next, entry)
	}
	return r.commit(ctx, prev, next)
}

// UpdateNotes replaces the notes of an entry that is already saved. Unknown
// identities return ErrNotSaved and nothing is written.
func (r *Repository) UpdateNotes(ctx context.Context, id poi.Identity, notes string) (Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return r.items.clone(), err
	}

	i := r.items.index(id)
	if i < 0 {
		return r.items.clone(), ErrNotSaved
	}
	prev := r.items.clone()
	next := r.items.clone()
	next[i].Notes = notes
	return r.commit(ctx, prev, next)
}

// Delete removes the entry with the given identity. Deleting something that
// is not saved is a no-op and writes nothing.
func (r *Repository) Delete(ctx context.Context, id poi.Identity) (Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return r.items.clone(), err
	}

	i := r.items.index(id)
	if i < 0 {
		return r.items.clone(), nil
	}
	prev := r.items.clone()
	next := make(Collection, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	return r.commit(ctx, prev, next)
}

// FindByIdentity looks up a saved entry. Matching is exact and case
// sensitive.
func (r *Repository) FindByIdentity(id poi.Identity) (poi.SavedEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.items.index(id); i >= 0 {
		return r.items[i], true
	}
	return poi.SavedEntry{}, false
}

// All returns a copy of the current collection.
func (r *Repository) All() Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items.clone()
}

// ensureLoaded lets mutations run before an explicit Load. A read failure is
// not fatal here: the mutation proceeds against the empty fallback.
func (r *Repository) ensureLoaded(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	_, err := r.loadLocked(ctx)
	var readErr *StorageReadError
	if errors.As(err, &readErr) {
		return nil
	}
	return err
}

// commit swaps in next and writes it. On failure next stays in memory and the
// returned *StorageWriteError carries prev.
func (r *Repository) commit(ctx context.Context, prev, next Collection) (Collection, error) {
	r.items = next
	if err := r.writeLocked(ctx); err != nil {
		return r.items.clone(), &StorageWriteError{Key: Key, Previous: prev, Err: err, repo: r}
	}
	return r.items.clone(), nil
}

func (r *Repository) writeLocked(ctx context.Context) error {
	b, err := json.Marshal(r.items)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, Key, string(b))
}

func (r *Repository) flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(ctx)
}

func (r *Repository) restore(prev Collection) Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = prev.clone()
	return r.items.clone()
}

// dedupe keeps the last entry per identity at the position of the first.
// Files written by this package never need it; hand-edited ones might.
func dedupe(c Collection) Collection {
	out := make(Collection, 0, len(c))
	for _, e := range c {
		if i := out.index(e.Identity()); i >= 0 {
			out[i] = e
			continue
		}
		out = append(out, e)
	}
	return out
}
