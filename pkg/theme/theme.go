// Package theme persists the light/dark preference and provides the matching
// palettes and Lip Gloss styles.
package theme

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/shoptrack/pkg/store"
)

// Key is the store key holding "dark" or "light".
const Key = "theme"

// Mode is the selected theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts "dark" and "light" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	default:
		return "", fmt.Errorf("theme: unknown mode %q, want dark or light", s)
	}
}

// State is the single owner of the theme preference.
type State struct {
	store store.Store

	mu   sync.Mutex
	mode Mode
}

// New returns a State in light mode. Call Load to read the stored preference.
func New(s store.Store) *State {
	return &State{store: s, mode: Light}
}

// Load reads the stored mode. Anything other than "dark" is light. On a read
// failure the mode stays light and the error is returned.
func (s *State) Load(ctx context.Context) (Mode, error) {
	v, _, err := s.store.Get(ctx, Key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = Light
	if err != nil {
		return s.mode, fmt.Errorf("theme: load: %w", err)
	}
	if Mode(v) == Dark {
		s.mode = Dark
	}
	return s.mode, nil
}

// Mode returns the current mode.
func (s *State) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Set switches to m and persists it. The in-memory mode changes even when the
// write fails.
func (s *State) Set(ctx context.Context, m Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	if err := s.store.Set(ctx, Key, string(m)); err != nil {
		return fmt.Errorf("theme: save: %w", err)
	}
	return nil
}

// Toggle flips between dark and light.
func (s *State) Toggle(ctx context.Context) (Mode, error) {
	next := Dark
	if s.Mode() == Dark {
		next = Light
	}
	return next, s.Set(ctx, next)
}

// Palette returns the colors for the current mode.
func (s *State) Palette() Palette {
	return PaletteFor(s.Mode())
}
