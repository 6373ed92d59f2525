package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	Place        string   `yaml:"place"`
	Region       string   `yaml:"region"`
	Model        string   `yaml:"model"`
	UpcomingDays int      `yaml:"upcoming_days,omitempty"`
	Retention    string   `yaml:"retention,omitempty"`
	APIKey       string   `yaml:"api_key,omitempty"`
	Domains      []string `yaml:"domains"`
	Categories   []string `yaml:"categories"`
}

// Key returns the resolved API key (config file or PPLX_API_KEY env var).
// Empty means no credential is configured.
func (c *Config) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("PPLX_API_KEY")
}

// DefaultDays returns the default upcoming-events window, clamped to the
// 1-30 range the UI exposes.
func (c *Config) DefaultDays() int {
	if c.UpcomingDays < 1 {
		return 7
	}
	if c.UpcomingDays > 30 {
		return 30
	}
	return c.UpcomingDays
}

func (c *Config) RetentionDuration() time.Duration {
	if c.Retention == "" {
		return 90 * 24 * time.Hour
	}
	// Support "Nd" day syntax
	if len(c.Retention) > 1 && c.Retention[len(c.Retention)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(c.Retention, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(c.Retention)
	if err != nil {
		return 90 * 24 * time.Hour
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "citysnaps", "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.CacheHome, "citysnaps", "history.db")
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
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	fillDefaults(&cfg, defaults)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// fillDefaults backfills fields a partial user config leaves out.
func fillDefaults(cfg, defaults *Config) {
	if cfg.Place == "" {
		cfg.Place = defaults.Place
	}
	if cfg.Region == "" {
		cfg.Region = defaults.Region
	}
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.UpcomingDays == 0 {
		cfg.UpcomingDays = defaults.UpcomingDays
	}
	if cfg.Retention == "" {
		cfg.Retention = defaults.Retention
	}
	if len(cfg.Domains) == 0 {
		cfg.Domains = defaults.Domains
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = defaults.Categories
	}
}

func validate(cfg *Config) error {
	if cfg.Place == "" {
		return fmt.Errorf("place is required")
	}
	for _, d := range cfg.Domains {
		if d == "" {
			return fmt.Errorf("domains must not contain empty entries")
		}
		if strings.Contains(d, "://") || strings.Contains(d, "/") {
			return fmt.Errorf("domain %q: must be a bare host, not a URL", d)
		}
	}
	for i, c := range cfg.Categories {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("category %d: name is required", i)
		}
	}
	if cfg.UpcomingDays < 0 || cfg.UpcomingDays > 30 {
		return fmt.Errorf("upcoming_days must be between 1 and 30, got %d", cfg.UpcomingDays)
	}
	return nil
}
