package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		TVDB: TVDBConfig{
			APIKey:     "valid-api-key",
			ServiceURL: "https://api-dev.thetvdb.com",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".tvdb_cache",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.TVDB.APIKey = "" },
			wantErr: true,
		},
		{
			name:    "placeholder api key",
			mutate:  func(c *Config) { c.TVDB.APIKey = "your-api-key-here" },
			wantErr: true,
		},
		{
			name:    "missing service url",
			mutate:  func(c *Config) { c.TVDB.ServiceURL = "" },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "cache enabled without dir",
			mutate:  func(c *Config) { c.Cache.Dir = "" },
			wantErr: true,
		},
		{
			name: "cache disabled without dir",
			mutate: func(c *Config) {
				c.Cache.Enabled = false
				c.Cache.Dir = ""
			},
			wantErr: false,
		},
		{
			name:    "negative max age",
			mutate:  func(c *Config) { c.Cache.MaxAge = -time.Minute },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaultsFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TVDB_API_KEY", "env-key")
	t.Setenv("TVDB_USERNAME", "env-user")
	t.Setenv("TVDB_PASSWORD", "env-pass")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TVDB.APIKey != "env-key" {
		t.Errorf("api key = %q, want env-key", cfg.TVDB.APIKey)
	}
	if cfg.TVDB.Username != "env-user" || cfg.TVDB.Password != "env-pass" {
		t.Errorf("credentials = %q/%q, want env-user/env-pass", cfg.TVDB.Username, cfg.TVDB.Password)
	}
	if cfg.TVDB.ServiceURL != "https://api-dev.thetvdb.com" {
		t.Errorf("service url = %q", cfg.TVDB.ServiceURL)
	}
	if cfg.TVDB.Language != "en" {
		t.Errorf("language = %q, want en", cfg.TVDB.Language)
	}
	if !cfg.TVDB.VerifyTLS {
		t.Error("verify_tls should default to true")
	}
	if cfg.TVDB.SelectFirst {
		t.Error("select_first should default to false")
	}
	if !cfg.Cache.Enabled || cfg.Cache.Dir != ".tvdb_cache" || cfg.Cache.MaxAge != 10*time.Minute {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" || !cfg.Logging.Color {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
}

func TestLoadFile(t *testing.T) {
	content := `tvdb:
  api_key: file-key
  username: file-user
  password: file-pass
  language: de
  select_first: true
cache:
  enabled: false
  max_age: 30m
logging:
  level: debug
  format: json
  color: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TVDB.APIKey != "file-key" {
		t.Errorf("api key = %q, want file-key", cfg.TVDB.APIKey)
	}
	if cfg.TVDB.Language != "de" {
		t.Errorf("language = %q, want de", cfg.TVDB.Language)
	}
	if !cfg.TVDB.SelectFirst {
		t.Error("select_first should be true")
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled")
	}
	if cfg.Cache.MaxAge != 30*time.Minute {
		t.Errorf("max age = %v, want 30m", cfg.Cache.MaxAge)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Logging.Color {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	content := `tvdb:
  api_key: file-key
logging:
  level: info
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TVDB_API_KEY", "env-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TVDB.APIKey != "env-key" {
		t.Errorf("api key = %q, env must override the file", cfg.TVDB.APIKey)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for an explicitly named file that does not exist")
	}
}
