// Package config provides configuration file parsing for bizlens.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file inside Dir.
const FileName = "config.yaml"

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all bizlens configuration.
type Config struct {
	Refresh RefreshConfig `yaml:"refresh"`
	Watch   WatchConfig   `yaml:"watch"`
	Log     LogConfig     `yaml:"log"`
}

// RefreshConfig controls the simulated analysis.
type RefreshConfig struct {
	// Delay between an upload and the refresh it triggers.
	Delay time.Duration `yaml:"delay"`
	// Seed for the mock generator. Zero seeds from the clock.
	Seed uint64 `yaml:"seed"`
}

// WatchConfig controls the drop-directory watcher.
type WatchConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
	// Schedule is a five-field cron expression. Empty disables scheduled
	// refreshes.
	Schedule string `yaml:"schedule"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Dir returns the bizlens config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/bizlens if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "bizlens"), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Refresh: RefreshConfig{Delay: 1500 * time.Millisecond},
		Watch:   WatchConfig{Extensions: []string{".csv", ".xlsx", ".json"}},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads config.yaml from Dir, falling back to defaults when the
// directory or file does not exist.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return Default(), nil
	}
	return LoadFromPath(filepath.Join(dir, FileName))
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	merged := Merge(loaded, Default())
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Merge fills every zero field of loaded from defaults.
func Merge(loaded, defaults *Config) *Config {
	result := *loaded

	if result.Refresh.Delay == 0 {
		result.Refresh.Delay = defaults.Refresh.Delay
	}
	if result.Refresh.Seed == 0 {
		result.Refresh.Seed = defaults.Refresh.Seed
	}

	if result.Watch.Dir == "" {
		result.Watch.Dir = defaults.Watch.Dir
	}
	if len(result.Watch.Extensions) == 0 {
		result.Watch.Extensions = append([]string(nil), defaults.Watch.Extensions...)
	}
	if result.Watch.Schedule == "" {
		result.Watch.Schedule = defaults.Watch.Schedule
	}

	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}

	return &result
}

// ScheduleParser parses the five-field cron expressions accepted by
// watch.schedule.
var ScheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if cfg.Refresh.Delay < 0 {
		return fmt.Errorf("%w: refresh.delay must not be negative, got %s",
			ErrInvalidConfig, cfg.Refresh.Delay)
	}

	for _, ext := range cfg.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: watch.extensions entries must look like \".csv\", got %q",
				ErrInvalidConfig, ext)
		}
	}

	if s := strings.TrimSpace(cfg.Watch.Schedule); s != "" {
		if _, err := ScheduleParser.Parse(s); err != nil {
			return fmt.Errorf("%w: watch.schedule %q: %v", ErrInvalidConfig, s, err)
		}
	}

	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q: %v", ErrInvalidConfig, cfg.Log.Level, err)
	}

	return nil
}
