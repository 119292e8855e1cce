// Package config loads and saves the famcal YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bfsmith/family-calendar/internal/constants"
)

// CalendarConfig names a calendar created by 'famcal init'.
type CalendarConfig struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type Config struct {
	// Storage selects the backend: sqlite, postgres or json.
	Storage string `yaml:"storage"`

	// Path is the store file for sqlite and json. PostgreSQL connection
	// strings are never written here.
	Path string `yaml:"path"`

	// Timezone is the IANA zone that day and week boundaries are computed in.
	// Empty means the system zone.
	Timezone string `yaml:"timezone"`

	Debug bool `yaml:"debug"`

	DefaultCalendars []CalendarConfig `yaml:"default_calendars"`
}

// Dir returns the expanded default configuration directory.
func Dir() string {
	return ExpandPath(constants.DefaultConfigDir)
}

// DefaultPath is where the configuration file lives unless --config says otherwise.
func DefaultPath() string {
	return filepath.Join(Dir(), constants.DefaultConfigFile)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func defaultCalendars() []CalendarConfig {
	out := make([]CalendarConfig, 0, len(constants.DefaultCalendars))
	for _, c := range constants.DefaultCalendars {
		out = append(out, CalendarConfig{Name: c.Name, Color: c.Color})
	}
	return out
}

func Default() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills in missing values so partial files behave like full ones.
func (c *Config) Normalize() {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case constants.StorageSQLite, constants.StoragePostgres, constants.StorageJSON:
	default:
		c.Storage = constants.StorageSQLite
	}

	if c.Path == "" {
		switch c.Storage {
		case constants.StorageJSON:
			c.Path = filepath.Join(constants.DefaultConfigDir, constants.DefaultJSONFile)
		case constants.StorageSQLite:
			c.Path = filepath.Join(constants.DefaultConfigDir, constants.DefaultDBFile)
		}
	}

	if c.DefaultCalendars == nil {
		c.DefaultCalendars = defaultCalendars()
	}
}

// Location resolves Timezone, falling back to time.Local when it is empty.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// StorePath is Path with ~ expanded.
func (c *Config) StorePath() string {
	return ExpandPath(c.Path)
}

// Load reads the file at path. A missing file is created with defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		return cfg, Save(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg atomically with mode 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".famcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
