package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Credentials may come from the environment instead of a file
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)

		// An explicitly named file must exist
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tvdbctl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/tvdbctl/")

		// No config file anywhere is fine, env-only operation works
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TVDB defaults
	v.SetDefault("tvdb.service_url", "https://api-dev.thetvdb.com")
	v.SetDefault("tvdb.language", "en")
	v.SetDefault("tvdb.verify_tls", true)
	v.SetDefault("tvdb.select_first", false)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", ".tvdb_cache")
	v.SetDefault("cache.max_age", 10*time.Minute)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// bindEnv maps the credential environment variables onto config keys
func bindEnv(v *viper.Viper) {
	v.BindEnv("tvdb.api_key", "TVDB_API_KEY")
	v.BindEnv("tvdb.username", "TVDB_USERNAME")
	v.BindEnv("tvdb.password", "TVDB_PASSWORD")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TVDB.APIKey == "" || cfg.TVDB.APIKey == "your-api-key-here" {
		return fmt.Errorf("tvdb.api_key must be set to a valid API key")
	}

	if cfg.TVDB.ServiceURL == "" {
		return fmt.Errorf("tvdb.service_url is required")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.Cache.Enabled && cfg.Cache.Dir == "" {
		return fmt.Errorf("cache.dir is required when the cache is enabled")
	}
	if cfg.Cache.MaxAge < 0 {
		return fmt.Errorf("cache.max_age must not be negative")
	}

	return nil
}
