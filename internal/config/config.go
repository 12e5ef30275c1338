// Package config handles wcd configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/justrnr500/wildcd/internal/logger"
)

const (
	// AppName is the directory name used under the XDG base directories.
	AppName = "wcd"
	// ConfigFile is the name of the config file.
	ConfigFile = "config.yaml"
	// HistoryFile is the name of the SQLite history database.
	HistoryFile = "history.db"
	// EnvFile is the name of the optional dotenv file.
	EnvFile = ".env"
	// AliasPrefix marks the first segment of an expression as an alias.
	AliasPrefix = "@"
)

// Environment variables that override the config file.
const (
	EnvLogLevel = "WCD_LOG_LEVEL"
	EnvBaseDir  = "WCD_BASE_DIR"
	EnvHistory  = "WCD_HISTORY"
	EnvConfig   = "WCD_CONFIG"
)

// Config represents the wcd configuration.
type Config struct {
	LogLevel string            `yaml:"log_level"`
	BaseDir  string            `yaml:"base_dir,omitempty"`
	Exclude  []string          `yaml:"exclude,omitempty"`
	Aliases  map[string]string `yaml:"aliases,omitempty"`
	History  HistoryConfig     `yaml:"history"`
}

// HistoryConfig holds visit history settings.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		LogLevel: logger.LevelWarn,
		Aliases:  map[string]string{},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// DefaultPath returns the config file location under XDG_CONFIG_HOME.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFile)
}

// DefaultHistoryPath returns the history database location under XDG_DATA_HOME.
func DefaultHistoryPath() string {
	return filepath.Join(xdg.DataHome, AppName, HistoryFile)
}

// Load reads the configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault reads path if it exists and returns Default otherwise.
// Dotenv files next to the config and in the working directory are loaded
// first, then environment overrides are applied.
func LoadOrDefault(path string) (*Config, error) {
	loadDotenv(filepath.Join(filepath.Dir(path), EnvFile), EnvFile)

	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotenv loads each file that exists. Variables already set win.
func loadDotenv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			godotenv.Load(p) // Best effort
		}
	}
}

// ApplyEnv overrides fields from WCD_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvBaseDir); v != "" {
		c.BaseDir = v
	}
	if v := os.Getenv(EnvHistory); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvHistory, err)
		}
		c.History.Enabled = enabled
	}
	return c.Validate()
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.LogLevel != "" && !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	for name := range c.Aliases {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("invalid alias name %q", name)
		}
	}
	return nil
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// HistoryPath returns the configured history database path.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return ExpandHome(c.History.Path)
	}
	return DefaultHistoryPath()
}

// Base returns the configured base directory with ~ expanded.
func (c *Config) Base() string {
	return ExpandHome(c.BaseDir)
}

// ExpandAlias replaces a leading "@name" segment of expr with the aliased
// directory and a leading "~" with the home directory. Other expressions
// are returned unchanged.
func (c *Config) ExpandAlias(expr string) (string, error) {
	if !strings.HasPrefix(expr, AliasPrefix) {
		return ExpandHome(expr), nil
	}

	name, rest, _ := strings.Cut(expr[len(AliasPrefix):], "/")
	dir, ok := c.Aliases[name]
	if !ok {
		return "", fmt.Errorf("unknown alias %q (known: %s)", name, strings.Join(c.AliasNames(), ", "))
	}

	dir = ExpandHome(dir)
	if rest == "" {
		return dir, nil
	}
	return filepath.Join(dir, filepath.FromSlash(rest)), nil
}

// AliasNames returns the alias names in sorted order.
func (c *Config) AliasNames() []string {
	names := make([]string, 0, len(c.Aliases))
	for name := range c.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(xdg.Home, p[2:])
	}
	return p
}
