package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const tempDirName = ".tmp"

// Disk is a Store backed by diskv: one file per key under a base directory.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// NewDisk opens (and creates when needed) a diskv store rooted at basePath.
func NewDisk(basePath string) (*Disk, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath:  basePath,
			TempDir:   filepath.Join(basePath, tempDirName),
			Transform: flatTransform,
		}),
		basePath: basePath,
	}, nil
}

// BasePath is the directory values are written to.
func (s *Disk) BasePath() string {
	return s.basePath
}

func (s *Disk) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if !s.d.Has(key) {
		return "", false, nil
	}
	// Other processes write the same directory, so always go to the file.
	rc, err := s.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %q: %w", key, err)
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return "", false, fmt.Errorf("store: read %q: %w", key, err)
	}
	return string(val), true, nil
}

func (s *Disk) Set(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.WriteStream(key, strings.NewReader(value), true); err != nil {
		return fmt.Errorf("store: write %q: %w", key, err)
	}
	return nil
}

func (s *Disk) Close() error {
	return nil
}

// flatTransform keeps every key directly under the base path.
func flatTransform(string) []string {
	return []string{}
}
