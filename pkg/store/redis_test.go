package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r, err := NewRedis(mr.Addr(), 0)
	if err != nil {
		t.Fatalf("new redis: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisGetMissingKey(t *testing.T) {
	r, _ := newTestRedis(t)
	v, ok, err := r.Get(context.Background(), "savedCoffeeshops")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("expected absent key, got %q %v", v, ok)
	}
}

func TestRedisSetRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	if err := r.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := r.Get(ctx, "theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("get: %q %v %v", v, ok, err)
	}
	if got, _ := mr.Get("theme"); got != "dark" {
		t.Fatalf("server holds %q", got)
	}
	if ttl := mr.TTL("theme"); ttl != 0 {
		t.Fatalf("expected no expiry, got %v", ttl)
	}
}

func TestRedisRejectsEmptyKey(t *testing.T) {
	r, _ := newTestRedis(t)
	if _, _, err := r.Get(context.Background(), " "); err != ErrEmptyKey {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestNewRedisRequiresAddress(t *testing.T) {
	if _, err := NewRedis("", 0); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestRedisServerDown(t *testing.T) {
	r, mr := newTestRedis(t)
	mr.Close()
	if _, _, err := r.Get(context.Background(), "theme"); err == nil {
		t.Fatal("expected error once the server is gone")
	}
}
