// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all riftwatch configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Leagues Leagues `yaml:"leagues"`
	Display Display `yaml:"display"`
}

// Storage holds filesystem settings.
type Storage struct {
	DataDir string `yaml:"data_dir"` // Cache and log files live under here.
}

// Leagues holds league selection settings.
type Leagues struct {
	Defaults        []string `yaml:"defaults"`         // League names activated at startup.
	AutomaticReload bool     `yaml:"automatic_reload"` // Fetch a league's schedule when it is selected.
}

// Display holds spoiler settings.
type Display struct {
	SpoilResults bool `yaml:"spoil_results"` // Show scores of finished matches.
	SpoilMatches bool `yaml:"spoil_matches"` // Show team names of unstarted matches.
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			DataDir: defaultDataDir(),
		},
		Leagues: Leagues{
			AutomaticReload: true,
		},
		Display: Display{
			SpoilResults: false,
			SpoilMatches: true,
		},
	}
}

// defaultDataDir resolves the per-user data directory, falling back to a
// dotdir in the working directory when the platform dir is unavailable.
func defaultDataDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".riftwatch"
	}
	return filepath.Join(base, "riftwatch")
}

// UserConfigPath returns the per-user config file location, or "" when
// the platform config directory cannot be resolved.
func UserConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "riftwatch", "config.yaml")
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files and empty paths are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Storage.DataDir == "" {
		return errors.New("config: storage.data_dir cannot be empty")
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: RIFTWATCH_DATA_DIR, RIFTWATCH_SPOIL_RESULTS.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("RIFTWATCH_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("RIFTWATCH_SPOIL_RESULTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid RIFTWATCH_SPOIL_RESULTS %q: %w", v, err)
		}
		c.Display.SpoilResults = b
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Storage *rawStorage `yaml:"storage"`
	Leagues *rawLeagues `yaml:"leagues"`
	Display *rawDisplay `yaml:"display"`
}

type rawStorage struct {
	DataDir *string `yaml:"data_dir"`
}

type rawLeagues struct {
	Defaults        *[]string `yaml:"defaults"`
	AutomaticReload *bool     `yaml:"automatic_reload"`
}

type rawDisplay struct {
	SpoilResults *bool `yaml:"spoil_results"`
	SpoilMatches *bool `yaml:"spoil_matches"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Storage != nil {
		if layer.Storage.DataDir != nil {
			c.Storage.DataDir = *layer.Storage.DataDir
		}
	}
	if layer.Leagues != nil {
		if layer.Leagues.Defaults != nil {
			c.Leagues.Defaults = append([]string(nil), (*layer.Leagues.Defaults)...)
		}
		if layer.Leagues.AutomaticReload != nil {
			c.Leagues.AutomaticReload = *layer.Leagues.AutomaticReload
		}
	}
	if layer.Display != nil {
		if layer.Display.SpoilResults != nil {
			c.Display.SpoilResults = *layer.Display.SpoilResults
		}
		if layer.Display.SpoilMatches != nil {
			c.Display.SpoilMatches = *layer.Display.SpoilMatches
		}
	}
}
