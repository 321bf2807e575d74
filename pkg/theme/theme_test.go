package theme

import (
	"context"
	"testing"

	"tableflip.dev/shoptrack/pkg/store"
)

func TestDefaultsToLight(t *testing.T) {
	s := New(store.NewMemory())
	m, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m != Light {
		t.Fatalf("expected light, got %s", m)
	}
	if s.Palette() != lightPalette {
		t.Fatal("expected light palette")
	}
}

func TestTogglePersists(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	s := New(mem)
	if _, err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	m, err := s.Toggle(ctx)
	if err != nil || m != Dark {
		t.Fatalf("expected dark, got %s %v", m, err)
	}
	if v, _, _ := mem.Get(ctx, Key); v != "dark" {
		t.Fatalf("expected stored dark, got %q", v)
	}

	again := New(mem)
	if m, _ := again.Load(ctx); m != Dark {
		t.Fatalf("expected dark after reload, got %s", m)
	}
	if m, _ := again.Toggle(ctx); m != Light {
		t.Fatalf("expected light, got %s", m)
	}
}

func TestUnknownStoredValueIsLight(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	_ = mem.Set(ctx, Key, "solarized")
	if m, _ := New(mem).Load(ctx); m != Light {
		t.Fatalf("expected light, got %s", m)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" DARK "); err != nil || m != Dark {
		t.Fatalf("unexpected %s %v", m, err)
	}
	if _, err := ParseMode("sepia"); err == nil {
		t.Fatal("expected error")
	}
}
