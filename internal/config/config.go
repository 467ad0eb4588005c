package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "topsearch"

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// Collection is one entry of the fixed set offered as radio buttons.
type Collection struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label,omitempty"`
}

// DisplayName returns the label, or the raw collection name when unset.
func (c Collection) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

type HistoryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Retention string `yaml:"retention"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	API         APIConfig     `yaml:"api"`
	Language    string        `yaml:"language"`
	Collections []Collection  `yaml:"collections"`
	History     HistoryConfig `yaml:"history"`
	Log         LogConfig     `yaml:"log"`
}

// TimeoutDuration returns the per-request timeout. Zero means no timeout.
func (c *Config) TimeoutDuration() time.Duration {
	if c.API.Timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d < 0 {
		return 30 * time.Second
	}
	return d
}

func (c *Config) RetentionDuration() time.Duration {
	if c.History.Retention == "" {
		return 30 * 24 * time.Hour
	}
	d, err := ParseDays(c.History.Retention)
	if err != nil {
		return 30 * 24 * time.Hour
	}
	return d
}

// ParseDays parses a Go duration, additionally accepting an "Nd" day count.
func ParseDays(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func (c *Config) CollectionNames() []string {
	names := make([]string, 0, len(c.Collections))
	for _, col := range c.Collections {
		names = append(names, col.Name)
	}
	return names
}

// HasCollection reports whether name is part of the configured set.
func (c *Config) HasCollection(name string) bool {
	for _, col := range c.Collections {
		if col.Name == name {
			return true
		}
	}
	return false
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.CacheHome, appName, "history.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: embedded defaults still apply
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Start from defaults so omitted keys keep their default values.
	cfg := *defaults
	cfg.Collections = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	mergeDefaultCollections(&cfg, defaults)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeDefaultCollections appends default collections the user file does
// not mention. User entries keep their position; a missing label is filled
// from the default entry of the same name.
func mergeDefaultCollections(cfg, defaults *Config) {
	index := make(map[string]int, len(cfg.Collections))
	for i, c := range cfg.Collections {
		index[c.Name] = i
	}
	for _, d := range defaults.Collections {
		i, ok := index[d.Name]
		if !ok {
			cfg.Collections = append(cfg.Collections, d)
			continue
		}
		if cfg.Collections[i].Label == "" {
			cfg.Collections[i].Label = d.Label
		}
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// Validate checks a loaded config. It is also run after flag overrides.
func Validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url: host is required")
	}

	if cfg.API.Timeout != "" {
		if d, err := time.ParseDuration(cfg.API.Timeout); err != nil || d < 0 {
			return fmt.Errorf("api.timeout: invalid duration %q", cfg.API.Timeout)
		}
	}

	switch cfg.Language {
	case "", "fr", "en":
	default:
		return fmt.Errorf("language: unsupported %q (valid: fr, en)", cfg.Language)
	}

	if len(cfg.Collections) == 0 {
		return fmt.Errorf("collections: at least one collection is required")
	}
	seen := make(map[string]bool, len(cfg.Collections))
	for i, c := range cfg.Collections {
		if c.Name == "" {
			return fmt.Errorf("collection %d: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("collection %q: duplicate name", c.Name)
		}
		seen[c.Name] = true
	}

	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	return nil
}
