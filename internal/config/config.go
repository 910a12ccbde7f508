// Package config loads the editor's TOML settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds user settings. The zero value is not valid; use Default.
type Config struct {
	LogFile             string `toml:"log_file"`
	LogLevel            string `toml:"log_level"`
	ConfirmOverwrite    bool   `toml:"confirm_overwrite"`
	InitialLineCapacity int    `toml:"initial_line_capacity"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:            "info",
		InitialLineCapacity: 80,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/veer/config.toml, falling back to
// the OS user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "veer", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks the settings.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.InitialLineCapacity < 2 {
		return fmt.Errorf("initial_line_capacity must be at least 2, got %d", c.InitialLineCapacity)
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (c Config) Level() (slog.Level, error) {
	switch c.LogLevel {
	case "debug", "DEBUG":
		return slog.LevelDebug, nil
	case "info", "INFO", "":
		return slog.LevelInfo, nil
	case "warn", "WARN", "warning", "WARNING":
		return slog.LevelWarn, nil
	case "error", "ERROR":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", c.LogLevel)
}

// Logger opens the configured log file. Without one, logs are discarded.
// The returned close function is never nil.
func (c Config) Logger() (*slog.Logger, func() error, error) {
	level, err := c.Level()
	if err != nil {
		return nil, nil, err
	}
	if c.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", c.LogFile, err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("pid", os.Getpid()), f.Close, nil
}
