package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/penwyp/yt-slicer/internal/core/videourl"
	"github.com/penwyp/yt-slicer/internal/data/csvio"
	"github.com/penwyp/yt-slicer/internal/data/storage"
	"github.com/penwyp/yt-slicer/internal/util"
)

const (
	DefaultDir        = "~/.yt-slicer"
	DefaultConfigFile = "~/.yt-slicer/config.toml"
	DefaultLogFile    = "~/.yt-slicer/logs/app.log"
)

// Config is the on-disk configuration. Command-line flags override it.
type Config struct {
	// Where the store and the jump inbox live
	DataDir string `toml:"data_dir"`
	Backend string `toml:"backend"`

	// SQLite backend only
	PollInterval string `toml:"poll_interval"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// 0 sizes pages from the terminal height
	DefaultPageSize int `toml:"default_page_size"`

	PlatformDomains []string `toml:"platform_domains"`
	ExportFile      string   `toml:"export_file"`
}

// Default returns a validated configuration with every default filled in
func Default() *Config {
	c := &Config{}
	_ = c.Validate()
	return c
}

// Validate fills unset fields with defaults and rejects invalid values
func (c *Config) Validate() error {
	if c.DataDir == "" {
		c.DataDir = DefaultDir
	}
	if c.Backend == "" {
		c.Backend = storage.BackendFile
	}
	if c.PollInterval == "" {
		c.PollInterval = storage.DefaultPollInterval.String()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = string(util.FormatText)
	}
	if len(c.PlatformDomains) == 0 {
		c.PlatformDomains = append([]string(nil), videourl.DefaultDomains...)
	}
	if c.ExportFile == "" {
		c.ExportFile = csvio.DefaultFileName
	}

	var errs []error
	if c.Backend != storage.BackendFile && c.Backend != storage.BackendSQLite {
		errs = append(errs, fmt.Errorf("backend must be %q or %q, got %q", storage.BackendFile, storage.BackendSQLite, c.Backend))
	}
	if d, err := time.ParseDuration(c.PollInterval); err != nil || d <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be a positive duration, got %q", c.PollInterval))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel))
	}
	if c.LogFormat != string(util.FormatText) && c.LogFormat != string(util.FormatJSON) {
		errs = append(errs, fmt.Errorf("log_format must be %q or %q, got %q", util.FormatText, util.FormatJSON, c.LogFormat))
	}
	if c.DefaultPageSize < 0 {
		errs = append(errs, fmt.Errorf("default_page_size must not be negative, got %d", c.DefaultPageSize))
	}
	for i, d := range c.PlatformDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if strings.TrimPrefix(d, videourl.ExactPrefix) == "" {
			errs = append(errs, errors.New("platform_domains must not contain empty entries"))
		}
		c.PlatformDomains[i] = d
	}
	return errors.Join(errs...)
}

// Poll is PollInterval as a duration, falling back to the storage default
func (c *Config) Poll() time.Duration {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d <= 0 {
		return storage.DefaultPollInterval
	}
	return d
}

// Load reads and validates the file at path. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		util.LogDebugf("No config file at %s, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := toml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating parent directories
func Save(path string, c *Config) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
