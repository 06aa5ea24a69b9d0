package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TVDB    TVDBConfig    `mapstructure:"tvdb"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TVDBConfig holds TheTVDB API credentials and connection settings
type TVDBConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	ServiceURL  string `mapstructure:"service_url"`
	Language    string `mapstructure:"language"`
	VerifyTLS   bool   `mapstructure:"verify_tls"`
	SelectFirst bool   `mapstructure:"select_first"`
}

// CacheConfig contains response cache settings
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Dir     string        `mapstructure:"dir"`
	MaxAge  time.Duration `mapstructure:"max_age"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
