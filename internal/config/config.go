package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the optional covidspark configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Source   SourceConfig   `toml:"source"`
	Theme    ThemeConfig    `toml:"theme"`
}

// DefaultsConfig holds persistent flag defaults.
type DefaultsConfig struct {
	Metric     *string `toml:"metric"`
	Scale      *string `toml:"scale"`
	State      *string `toml:"state"`
	TUI        *bool   `toml:"tui"`
	Width      *int    `toml:"width"`
	Locale     *string `toml:"locale"`
	LegacyDate *bool   `toml:"legacy_date"`
}

// SourceConfig configures the data source.
type SourceConfig struct {
	BaseURL *string `toml:"base_url"`
	Timeout *string `toml:"timeout"`
	Retries *int    `toml:"retries"`
}

// ThemeConfig holds optional color overrides.
type ThemeConfig struct {
	Green  *string `toml:"green"`
	Blue   *string `toml:"blue"`
	Yellow *string `toml:"yellow"`
	Red    *string `toml:"red"`
	Mauve  *string `toml:"mauve"`
	Muted  *string `toml:"muted"`
	Dim    *string `toml:"dim"`
	Bright *string `toml:"bright"`
}

// TimeoutDuration parses Source.Timeout. It returns 0 when unset.
func (s SourceConfig) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == nil {
		return 0, nil
	}
	d, err := time.ParseDuration(*s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("source.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("source.timeout: negative duration %s", d)
	}
	return d, nil
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "covidspark", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path. A missing file yields a zero
// Config.
func LoadFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
