package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// UserConfigDir is the directory for user-level config, relative to home.
	UserConfigDir = ".config/shelflog"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger   *slog.Logger
	userPath string
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, userPath: userConfigPath()}
}

// Load loads configuration with layered precedence:
//  1. Default config
//  2. User config (~/.config/shelflog/config.yaml), if present
//  3. explicitPath, if not empty; it must exist
//
// Command-line flags are applied by the caller on top of the result.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	config := DefaultConfig()

	if l.userPath != "" {
		if userConfig, err := LoadFromFile(l.userPath); err == nil {
			l.logger.Debug("loaded user config", slog.String("path", l.userPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("failed to load user config", slog.String("path", l.userPath), slog.String("error", err.Error()))
		}
	}

	if explicitPath != "" {
		explicitConfig, err := LoadFromFile(explicitPath)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded config", slog.String("path", explicitPath))
		config.Merge(explicitConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// EnsureUserConfig writes the default config to the user config path if no
// file exists there yet. It returns the path.
func (l *Loader) EnsureUserConfig() (string, error) {
	if _, err := os.Stat(l.userPath); err == nil {
		return l.userPath, nil
	}

	if err := DefaultConfig().SaveToFile(l.userPath); err != nil {
		return "", err
	}
	l.logger.Info("created default user config", slog.String("path", l.userPath))
	return l.userPath, nil
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}
