package pnmview

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ConvertConfig controls how decoded images are written out.
type ConvertConfig struct {
	// Format is used when the destination has no extension
	Format      string `toml:"format"`
	JPEGQuality int    `toml:"jpeg_quality"`
	GIFColors   int    `toml:"gif_colors"`
}

type WatchConfig struct {
	Debounce int `toml:"debounce"` // milliseconds
}

// DebounceDuration returns the debounce delay, 500ms if unset.
func (w WatchConfig) DebounceDuration() time.Duration {
	if w.Debounce > 0 {
		return time.Duration(w.Debounce) * time.Millisecond
	}
	return 500 * time.Millisecond
}

// Config is the optional TOML configuration file.
type Config struct {
	Workers int           `toml:"workers"`
	Convert ConvertConfig `toml:"convert"`
	Watch   WatchConfig   `toml:"watch"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Workers: 10,
		Convert: ConvertConfig{
			Format:      "png",
			JPEGQuality: 90,
			GIFColors:   256,
		},
	}
}

// LoadConfig reads the TOML file at path over the defaults. A missing file
// is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.Convert.JPEGQuality < 1 || c.Convert.JPEGQuality > 100:
		return fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", c.Convert.JPEGQuality)
	case c.Convert.GIFColors < 2 || c.Convert.GIFColors > 256:
		return fmt.Errorf("gif_colors must be between 2 and 256, got %d", c.Convert.GIFColors)
	case c.Watch.Debounce < 0:
		return fmt.Errorf("debounce must not be negative, got %d", c.Watch.Debounce)
	}
	_, err := encoderFor(c.Convert.Format)
	return err
}
