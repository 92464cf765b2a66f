// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Xuanwo/go-locale"
	"github.com/joho/godotenv"
	"github.com/kkyr/fig"
	"golang.org/x/text/language"

	"github.com/wneessen/placeutil/internal/places"
)

const (
	configEnv = "PLACEUTIL"
	dotEnv    = ".env"

	ProviderGoogle        = "google"
	ProviderOpenStreetMap = "openstreetmap"
)

// DefaultCategories maps category labels to raw place types if no categories are configured.
var DefaultCategories = map[string][]string{
	"restaurant": {"restaurant", "food", "cafe", "bar", "bakery", "meal_takeaway", "meal_delivery"},
	"lodging":    {"lodging", "campground", "rv_park"},
	"shopping": {
		"shopping_mall", "store", "clothing_store", "department_store", "supermarket",
		"book_store", "electronics_store",
	},
}

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Places struct {
		// Allowed value: google
		Provider string `fig:"provider" default:"google"`
		APIKey   string `fig:"apikey"`
		// ISO 3166-1 alpha-2 country code that autocomplete suggestions are restricted to
		Region  string        `fig:"region"`
		Timeout time.Duration `fig:"timeout" default:"10s"`
	} `fig:"places"`

	Geocoder struct {
		// Allowed values: google, openstreetmap
		Provider string `fig:"provider" default:"openstreetmap"`
		APIKey   string `fig:"apikey"`
	} `fig:"geocoder"`

	Cache struct {
		Disable       bool          `fig:"disable"`
		HitTTL        time.Duration `fig:"hit_ttl" default:"24h"`
		MissTTL       time.Duration `fig:"miss_ttl" default:"5m"`
		PurgeInterval time.Duration `fig:"purge_interval" default:"10m"`
	} `fig:"cache"`

	RateLimit struct {
		RequestsPerSecond float64 `fig:"requests_per_second" default:"10"`
		Burst             int     `fig:"burst" default:"1"`
	} `fig:"ratelimit"`

	Server struct {
		Address string `fig:"address" default:"127.0.0.1:8080"`
	} `fig:"server"`

	Categories map[string][]string `fig:"categories"`
}

// LoadDotEnv loads environment variables from a .env file in the current working directory.
// A missing file is not an error. Variables that are already set are not overwritten.
func LoadDotEnv() error {
	if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s file: %w", dotEnv, err)
	}
	return nil
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// DefaultDir returns the directory searched for a config file if none is given.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "placeutil")
}

func (c *Config) Validate() error {
	c.Places.Provider = strings.ToLower(c.Places.Provider)
	if c.Places.Provider != ProviderGoogle {
		return fmt.Errorf("invalid places provider: %s", c.Places.Provider)
	}
	if c.Places.Region != "" {
		region, err := language.ParseRegion(c.Places.Region)
		if err != nil || !region.IsCountry() {
			return fmt.Errorf("invalid places region: %s", c.Places.Region)
		}
	}
	if c.Places.Timeout <= 0 {
		return fmt.Errorf("invalid places timeout: %s", c.Places.Timeout)
	}
	c.Geocoder.Provider = strings.ToLower(c.Geocoder.Provider)
	if c.Geocoder.Provider != ProviderGoogle && c.Geocoder.Provider != ProviderOpenStreetMap {
		return fmt.Errorf("invalid geocoder provider: %s", c.Geocoder.Provider)
	}
	if c.Cache.HitTTL < 0 || c.Cache.MissTTL < 0 {
		return fmt.Errorf("invalid cache TTL: hit %s, miss %s", c.Cache.HitTTL, c.Cache.MissTTL)
	}
	if c.Cache.PurgeInterval <= 0 {
		return fmt.Errorf("invalid cache purge interval: %s", c.Cache.PurgeInterval)
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("invalid rate limit: %g requests per second", c.RateLimit.RequestsPerSecond)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("invalid rate limit burst: %d", c.RateLimit.Burst)
	}
	if len(c.Categories) == 0 {
		c.Categories = DefaultCategories
	}

	return nil
}

// Language returns the configured locale as language tag. If no locale is configured, the
// system locale is detected, falling back to English.
func (c *Config) Language() language.Tag {
	if c.Locale != "" {
		if tag, err := language.Parse(c.Locale); err == nil {
			return tag
		}
	}
	tag, err := locale.Detect()
	if err != nil {
		return language.English
	}
	return tag
}

// TypeMap returns the configured categories as places.TypeMap.
func (c *Config) TypeMap() places.TypeMap {
	return places.NewTypeMap(c.Categories)
}
