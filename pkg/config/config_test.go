package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableflip.dev/shoptrack/pkg/store"
)

func validConfig() Config {
	return Config{
		Store:   StoreConfig{Backend: "disk", Path: "/tmp/shoptrack"},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		Catalog: CatalogConfig{URL: DefaultCatalogURL, Timeout: time.Second},
		Region:  RegionConfig{Latitude: 51.9225, Longitude: 4.47917},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	c := validConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	c := validConfig()
	c.Store.Backend = "floppy"
	c.Catalog.URL = ""
	c.Region.Latitude = 123

	err := c.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"store.backend", "catalog.url", "region.latitude"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("SHOPTRACK_CONFIG_PATH", dir)
	t.Setenv("SHOPTRACK_STORE_BACKEND", "memory")
	t.Setenv("SHOPTRACK_CATALOG_URL", "file:///tmp/shops.json")

	yaml := "location:\n  enabled: true\n  latitude: 51.9\n  longitude: 4.4\n"
	if err := os.WriteFile(filepath.Join(dir, ".shoptrack.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreOptions().Backend != store.BackendMemory {
		t.Fatalf("expected memory backend, got %q", cfg.Store.Backend)
	}
	if cfg.Catalog.URL != "file:///tmp/shops.json" {
		t.Fatalf("unexpected catalog url %q", cfg.Catalog.URL)
	}
	if !cfg.Location.Enabled || cfg.Location.Latitude != 51.9 {
		t.Fatalf("expected location from config file, got %#v", cfg.Location)
	}
	if cfg.Catalog.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.Catalog.Timeout)
	}
}
