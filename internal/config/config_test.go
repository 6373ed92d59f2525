package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.Place == "" {
		t.Error("expected default place")
	}
	if len(cfg.Domains) == 0 {
		t.Error("expected default domains")
	}
	if len(cfg.Categories) == 0 {
		t.Error("expected default categories")
	}
	if cfg.Model != "sonar-pro" {
		t.Errorf("expected default model sonar-pro, got %q", cfg.Model)
	}
}

func TestKeyPrefersConfigOverEnv(t *testing.T) {
	t.Setenv("PPLX_API_KEY", "env-key")
	cfg := &Config{APIKey: "file-key"}
	if got := cfg.Key(); got != "file-key" {
		t.Errorf("Key() = %q, want file-key", got)
	}

	cfg.APIKey = ""
	if got := cfg.Key(); got != "env-key" {
		t.Errorf("Key() = %q, want env-key", got)
	}
}

func TestKeyEmpty(t *testing.T) {
	t.Setenv("PPLX_API_KEY", "")
	cfg := &Config{}
	if got := cfg.Key(); got != "" {
		t.Errorf("Key() = %q, want empty", got)
	}
}

func TestDefaultDays(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 7},
		{-3, 7},
		{7, 7},
		{14, 14},
		{30, 30},
		{99, 30},
	}
	for _, tt := range tests {
		cfg := &Config{UpcomingDays: tt.in}
		if got := cfg.DefaultDays(); got != tt.want {
			t.Errorf("DefaultDays(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRetentionDuration(t *testing.T) {
	tests := []struct {
		input    string
		wantDays int
	}{
		{"90d", 90},
		{"30d", 30},
		{"720h", 30},
		{"", 90},
		{"invalid", 90},
	}
	for _, tt := range tests {
		cfg := &Config{Retention: tt.input}
		got := cfg.RetentionDuration()
		want := time.Duration(tt.wantDays) * 24 * time.Hour
		if got != want {
			t.Errorf("RetentionDuration(%q) = %v, want %v", tt.input, got, want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `place: Providence
region: Providence, Rhode Island
upcoming_days: 10
domains:
  - providenceri.gov
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Place != "Providence" {
		t.Errorf("expected Providence, got %q", cfg.Place)
	}
	if cfg.UpcomingDays != 10 {
		t.Errorf("expected 10, got %d", cfg.UpcomingDays)
	}
	if len(cfg.Domains) != 1 || cfg.Domains[0] != "providenceri.gov" {
		t.Errorf("unexpected domains: %v", cfg.Domains)
	}
	// Omitted fields should be backfilled from defaults
	if cfg.Model != "sonar-pro" {
		t.Errorf("expected default model, got %q", cfg.Model)
	}
	if len(cfg.Categories) == 0 {
		t.Error("expected default categories to be backfilled")
	}
}

func TestLoadNonexistentFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Place == "" {
		t.Error("expected default place when config doesn't exist")
	}
	// First run should have written the defaults out
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected defaults written to %s: %v", cfgPath, err)
	}
}

func TestValidateRejectsURLDomain(t *testing.T) {
	cfg := &Config{Place: "Logan", Domains: []string{"https://cachecounty.gov"}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for URL-shaped domain")
	}
}

func TestValidateRejectsDomainWithPath(t *testing.T) {
	cfg := &Config{Place: "Logan", Domains: []string{"cachecounty.gov/events"}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for domain with path")
	}
}

func TestValidateRejectsEmptyCategory(t *testing.T) {
	cfg := &Config{Place: "Logan", Categories: []string{"Music", "  "}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for blank category")
	}
}

func TestValidateRejectsDaysOutOfRange(t *testing.T) {
	cfg := &Config{Place: "Logan", UpcomingDays: 31}
	if err := validate(cfg); err == nil {
		t.Error("expected error for upcoming_days > 30")
	}
}

func TestValidateAcceptsBareHosts(t *testing.T) {
	cfg := &Config{Place: "Logan", Domains: []string{"cachecounty.gov", "events.logandowntown.org"}}
	if err := validate(cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
