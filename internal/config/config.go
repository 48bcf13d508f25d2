package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Source layout modes.
const (
	ModeRenewal    = "re"
	ModePreRenewal = "pre-re"
)

// Config holds all configuration for the converter.
type Config struct {
	// Source layout
	DBPath    string `yaml:"db_path" toml:"db_path"`
	Mode      string `yaml:"mode" toml:"mode"`
	ImportDir string `yaml:"import_dir" toml:"import_dir"`
	Delimiter string `yaml:"delimiter" toml:"delimiter"`

	// Prompts
	AssumeYes bool `yaml:"assume_yes" toml:"assume_yes"`

	LogLevel string `yaml:"log_level" toml:"log_level"`

	Journal JournalConfig `yaml:"journal" toml:"journal"`
}

// JournalConfig holds the PostgreSQL conversion journal parameters.
// An empty DSN disables the journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	DSN     string `yaml:"dsn" toml:"dsn"`
}

// Active reports whether conversions should be journaled.
func (j JournalConfig) Active() bool {
	return j.Enabled && j.DSN != ""
}

// Default returns Config with the stock source layout.
func Default() Config {
	return Config{
		DBPath:    "db",
		Mode:      ModeRenewal,
		ImportDir: "import",
		Delimiter: ",",
		LogLevel:  "info",
		Journal: JournalConfig{
			Enabled: true,
		},
	}
}

// Load loads config from a YAML file, or a TOML file when path ends in
// .toml. If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that have no usable fallback.
func (c Config) Validate() error {
	if c.Mode != ModeRenewal && c.Mode != ModePreRenewal {
		return fmt.Errorf("mode %q: must be %q or %q", c.Mode, ModeRenewal, ModePreRenewal)
	}
	if len(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter %q: must be a single byte", c.Delimiter)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Renewal reports whether the renewal layout is selected.
func (c Config) Renewal() bool {
	return c.Mode == ModeRenewal
}

// Delim returns the column delimiter. Defaults to ','.
func (c Config) Delim() byte {
	if len(c.Delimiter) == 0 {
		return ','
	}
	return c.Delimiter[0]
}

// RootDir is the database root, home of mode independent tables.
func (c Config) RootDir() string {
	return c.DBPath
}

// BaseDir is the mode specific table directory, e.g. db/re.
func (c Config) BaseDir() string {
	return filepath.Join(c.DBPath, c.Mode)
}

// ImportPath is the overlay directory, e.g. db/import.
func (c Config) ImportPath() string {
	return filepath.Join(c.DBPath, c.ImportDir)
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return lvl, fmt.Errorf("log_level %q: %w", s, err)
	}
	return lvl, nil
}
