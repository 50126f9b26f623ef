// Package config loads the optional TOML file that controls where data
// lives, which timezone "today" is computed in, logging, and the
// check-in animation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "gymstreak"

// Config holds the top-level gymstreak configuration.
type Config struct {
	// DBPath overrides the SQLite file location.
	DBPath string `toml:"db_path"`
	// Timezone is an IANA name, or "Local" for the system zone.
	Timezone string         `toml:"timezone"`
	Log      LogConfig      `toml:"log"`
	Confetti ConfettiConfig `toml:"confetti"`
	Calendar CalendarConfig `toml:"calendar"`

	// Undecoded lists keys in the file that matched no field.
	Undecoded []string `toml:"-"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

type ConfettiConfig struct {
	Count int `toml:"count"`
	// Seed fixes the particle RNG. 0 seeds from the clock.
	Seed uint64 `toml:"seed"`
	FPS  int    `toml:"fps"`
}

type CalendarConfig struct {
	// WeekStart is "sunday" or "monday". Empty defers to the in-app setting.
	WeekStart string `toml:"week_start"`
}

// Dir returns ~/.config/gymstreak (or the platform equivalent).
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, appName), nil
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Timezone: "Local",
		Log: LogConfig{
			Level: "info",
		},
		Confetti: ConfettiConfig{
			Count: 80,
			FPS:   30,
		},
	}
	if dir, err := Dir(); err == nil {
		cfg.DBPath = filepath.Join(dir, appName+".db")
		cfg.Log.File = filepath.Join(dir, appName+".log")
	}
	return cfg
}

// Load reads the config at path, layered over Default. An empty path means
// DefaultPath. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	for _, k := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, k.String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Confetti.Count < 0 {
		return fmt.Errorf("confetti.count must not be negative, got %d", c.Confetti.Count)
	}
	if c.Confetti.FPS < 1 || c.Confetti.FPS > 120 {
		return fmt.Errorf("confetti.fps must be between 1 and 120, got %d", c.Confetti.FPS)
	}
	switch strings.ToLower(c.Calendar.WeekStart) {
	case "", "sunday", "monday":
	default:
		return fmt.Errorf("calendar.week_start must be sunday or monday, got %q", c.Calendar.WeekStart)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// WeekStart returns the configured first weekday, and false when the file
// leaves it to the in-app setting.
func (c *Config) WeekStart() (time.Weekday, bool) {
	switch strings.ToLower(c.Calendar.WeekStart) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	}
	return time.Sunday, false
}

// FrameInterval is the delay between animation frames.
func (c *Config) FrameInterval() time.Duration {
	fps := c.Confetti.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}
