// Package config loads shoptrack settings from .shoptrack.yaml, a .env file
// and SHOPTRACK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/shoptrack/pkg/store"
)

// DefaultCatalogURL is the coffee shop list the app was built around.
const DefaultCatalogURL = "https://stud.hosted.hr.nl/1055759/CoffeeShopDataRotterdam.JSON"

// Config holds all application configuration.
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Location LocationConfig `mapstructure:"location"`
	Region   RegionConfig   `mapstructure:"region"`
	Log      LogConfig      `mapstructure:"log"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	DB   int    `mapstructure:"db"`
}

type CatalogConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LocationConfig stands in for the device location subsystem: when enabled,
// permission is granted and the configured coordinate is the current
// position.
type LocationConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
}

// RegionConfig is the map center used when nothing is selected and no
// position is known.
type RegionConfig struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	// A missing .env is fine; anything else is worth reporting.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("store.backend", string(store.BackendDisk))
	v.SetDefault("store.path", "~/.shoptrack.db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("catalog.url", DefaultCatalogURL)
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("location.enabled", false)
	v.SetDefault("location.latitude", 0.0)
	v.SetDefault("location.longitude", 0.0)
	v.SetDefault("region.latitude", 51.9225)
	v.SetDefault("region.longitude", 4.47917)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetConfigName(".shoptrack") // .yaml is implicit
	if override := os.Getenv("SHOPTRACK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	// SHOPTRACK_STORE_PATH -> store.path
	v.SetEnvPrefix("SHOPTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	path, err := homedir.Expand(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("config: expand store.path: %w", err)
	}
	cfg.Store.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	switch store.Backend(strings.ToLower(c.Store.Backend)) {
	case store.BackendDisk:
		if c.Store.Path == "" {
			errs = append(errs, "store.path is required for the disk backend")
		}
	case store.BackendRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, "redis.addr is required for the redis backend")
		}
		if c.Redis.DB < 0 {
			errs = append(errs, fmt.Sprintf("redis.db must not be negative, got %d", c.Redis.DB))
		}
	case store.BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("store.backend must be one of disk, redis, memory, got %q", c.Store.Backend))
	}
	if c.Catalog.URL == "" {
		errs = append(errs, "catalog.url is required")
	}
	if c.Catalog.Timeout <= 0 {
		errs = append(errs, "catalog.timeout must be positive")
	}
	if !validCoordinate(c.Location.Latitude, c.Location.Longitude) {
		errs = append(errs, "location.latitude/longitude out of range")
	}
	if !validCoordinate(c.Region.Latitude, c.Region.Longitude) {
		errs = append(errs, "region.latitude/longitude out of range")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// StoreOptions converts the store settings for store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:   store.Backend(strings.ToLower(c.Store.Backend)),
		Path:      c.Store.Path,
		RedisAddr: c.Redis.Addr,
		RedisDB:   c.Redis.DB,
	}
}

func validCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
