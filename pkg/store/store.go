// Package store provides the durable key-value storage the favorites list
// and the theme preference are persisted in.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store is string-keyed durable storage with whole-value get and set. There
// are no transactions; callers serialize their own read-modify-write cycles.
type Store interface {
	// Get returns the value for key. ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set replaces the value for key. It returns once the value is durable.
	Set(ctx context.Context, key, value string) error
	// Close releases any resources held by the store.
	Close() error
}

// Watcher is implemented by stores that can report changes made outside the
// running process.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Backend names a Store implementation.
type Backend string

const (
	BackendDisk   Backend = "disk"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// ErrEmptyKey is returned when a caller passes a blank key.
var ErrEmptyKey = errors.New("store: key required")

// Options selects and configures a backend.
type Options struct {
	Backend   Backend
	Path      string
	RedisAddr string
	RedisDB   int
}

// Open creates the Store described by opts.
func Open(opts Options) (Store, error) {
	switch Backend(strings.ToLower(string(opts.Backend))) {
	case "", BackendDisk:
		return NewDisk(opts.Path)
	case BackendRedis:
		return NewRedis(opts.RedisAddr, opts.RedisDB)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", opts.Backend)
	}
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}
