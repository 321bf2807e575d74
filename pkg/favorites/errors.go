package favorites

import (
	"context"
	"fmt"
)

// StorageReadError reports that the stored favorites could not be read or
// decoded. The repository falls back to an empty collection when it occurs.
// Backup names the key an undecodable value was copied to, if any.
type StorageReadError struct {
	Key    string
	Backup string
	Err    error
}

func (e *StorageReadError) Error() string {
	if e.Backup != "" {
		return fmt.Sprintf("favorites: read %q (copied to %q): %v", e.Key, e.Backup, e.Err)
	}
	return fmt.Sprintf("favorites: read %q: %v", e.Key, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

// StorageWriteError reports that a mutation could not be persisted. The
// in-memory collection already holds the new value; Previous is what it held
// before the mutation.
type StorageWriteError struct {
	Key      string
	Previous Collection
	Err      error

	repo *Repository
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("favorites: write %q: %v", e.Key, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// Retry writes the repository's current collection again.
func (e *StorageWriteError) Retry(ctx context.Context) error {
	if e.repo == nil {
		return e
	}
	return e.repo.flush(ctx)
}

// Rollback restores Previous as the in-memory collection. Nothing is written;
// Previous is what the store last accepted.
func (e *StorageWriteError) Rollback() Collection {
	if e.repo == nil {
		return e.Previous.clone()
	}
	return e.repo.restore(e.Previous)
}
