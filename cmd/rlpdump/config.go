package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/eth2030/rlpcodec/log"
	"github.com/eth2030/rlpcodec/rlp"
)

// Configuration errors.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// LogConfig selects the level and handler of the command's logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the merged result of the TOML file and command-line flags.
type Config struct {
	Limits rlp.Limits `toml:"limits"`
	Log    LogConfig  `toml:"log"`

	// ConfigFile is the path of the file that was loaded, if any.
	ConfigFile string `toml:"-"`
}

// DefaultConfig returns the configuration used when no file is given. The
// command reads input from the outside world, so it starts from the
// untrusted limits.
func DefaultConfig() *Config {
	return &Config{
		Limits: rlp.UntrustedLimits(),
		Log:    LogConfig{Level: "info", Format: log.FormatText},
	}
}

// LoadConfig reads a TOML file over the defaults. An empty path returns the
// defaults. Keys the file sets but Config does not know are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	cfg.ConfigFile = path
	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Limits.MaxDepth < 0 {
		return fmt.Errorf("%w: limits.max_depth must not be negative", ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", log.FormatJSON, log.FormatText:
	default:
		return fmt.Errorf("%w: log.format must be %q or %q", ErrInvalidConfig, log.FormatJSON, log.FormatText)
	}
	return nil
}

// level returns the parsed log level. Validate must have succeeded.
func (c *Config) level() slog.Level {
	l, _ := log.ParseLevel(c.Log.Level)
	return l
}
