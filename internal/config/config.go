// Package config loads shelflog settings from layered YAML files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/roach88/shelflog/internal/book"
	"github.com/roach88/shelflog/internal/kv"
)

// Config is the complete shelflog configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Display DisplayConfig `yaml:"display" json:"display"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// StorageConfig selects where the collection is kept.
type StorageConfig struct {
	// Backend is one of sqlite, file, memory.
	Backend string `yaml:"backend" json:"backend"`
	// Path is the database file (sqlite) or directory (file). Empty means
	// the per-user default for the backend.
	Path string `yaml:"path" json:"path"`
	// Key names the slot holding the collection.
	Key string `yaml:"key" json:"key"`
}

// DisplayConfig controls how books are listed.
type DisplayConfig struct {
	// Locale is a BCP 47 tag used for name collation.
	Locale string `yaml:"locale" json:"locale"`
	// Sort is the default sort key: name, rating or date.
	Sort string `yaml:"sort" json:"sort"`
	// DateLayout is the Go time layout used for new records.
	DateLayout string `yaml:"date_layout" json:"date_layout"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: kv.BackendSQLite,
			Path:    "", // per-user default
			Key:     "books",
		},
		Display: DisplayConfig{
			Locale:     "he",
			Sort:       string(book.DefaultSort),
			DateLayout: book.DefaultDateLayout,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !slices.Contains(kv.Backends, c.Storage.Backend) {
		return fmt.Errorf("storage.backend %q must be one of %v", c.Storage.Backend, kv.Backends)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage.key is required")
	}
	if _, err := language.Parse(c.Display.Locale); err != nil {
		return fmt.Errorf("display.locale: %w", err)
	}
	if _, err := book.ParseSortOption(c.Display.Sort); err != nil {
		return fmt.Errorf("display.sort: %w", err)
	}
	if c.Display.DateLayout == "" {
		return fmt.Errorf("display.date_layout is required")
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Locale returns the parsed display locale, falling back to Hebrew.
func (c *Config) Locale() language.Tag {
	tag, err := language.Parse(c.Display.Locale)
	if err != nil {
		return language.Hebrew
	}
	return tag
}

// SortOption returns the parsed default sort key.
func (c *Config) SortOption() book.SortOption {
	key, err := book.ParseSortOption(c.Display.Sort)
	if err != nil {
		return book.DefaultSort
	}
	return key
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// StoragePath returns Storage.Path, or the per-user default for the
// configured backend when it is empty.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return DefaultStoragePath(c.Storage.Backend)
}

// DefaultStoragePath returns where a backend keeps data when no path is
// configured: under $XDG_DATA_HOME/shelflog, or ~/.local/share/shelflog.
func DefaultStoragePath(backend string) string {
	dir := dataDir()
	switch backend {
	case kv.BackendFile:
		return filepath.Join(dir, "slots")
	case kv.BackendMemory:
		return ""
	default:
		return filepath.Join(dir, "shelflog.db")
	}
}

func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "shelflog")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shelflog"
	}
	return filepath.Join(home, ".local", "share", "shelflog")
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile writes the configuration as YAML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge copies the non-zero fields of other into c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Storage.Backend != "" {
		c.Storage.Backend = other.Storage.Backend
	}
	if other.Storage.Path != "" {
		c.Storage.Path = other.Storage.Path
	}
	if other.Storage.Key != "" {
		c.Storage.Key = other.Storage.Key
	}

	if other.Display.Locale != "" {
		c.Display.Locale = other.Display.Locale
	}
	if other.Display.Sort != "" {
		c.Display.Sort = other.Display.Sort
	}
	if other.Display.DateLayout != "" {
		c.Display.DateLayout = other.Display.DateLayout
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
