// Package config handles configuration loading for newsvani.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Sources   SourcesConfig   `mapstructure:"sources"   yaml:"sources"`
	Fetch     FetchConfig     `mapstructure:"fetch"     yaml:"fetch"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"  yaml:"analysis"`
	Narration NarrationConfig `mapstructure:"narration" yaml:"narration"`
	API       APIConfig       `mapstructure:"api"       yaml:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// SourcesConfig holds news source settings.
type SourcesConfig struct {
	Feeds  []FeedConfig `mapstructure:"feeds"  yaml:"feeds"`
	Search SearchConfig `mapstructure:"search" yaml:"search"`
}

// FeedConfig is one RSS feed entry.
type FeedConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url"  yaml:"url"`
}

// SearchConfig holds web-search source credentials and fallbacks.
type SearchConfig struct {
	Enabled         bool     `mapstructure:"enabled"          yaml:"enabled"`
	APIKey          string   `mapstructure:"api_key"          yaml:"api_key"`
	EngineID        string   `mapstructure:"engine_id"        yaml:"engine_id"`
	FallbackDomains []string `mapstructure:"fallback_domains" yaml:"fallback_domains"`
}

// FetchConfig holds fetch fan-out settings.
type FetchConfig struct {
	PerSourceTimeoutSec int `mapstructure:"per_source_timeout_sec" yaml:"per_source_timeout_sec"`
	PerSourceLimit      int `mapstructure:"per_source_limit"       yaml:"per_source_limit"`
}

// AnalysisConfig holds analysis engine settings.
type AnalysisConfig struct {
	CacheTTL int `mapstructure:"cache_ttl" yaml:"cache_ttl"` // seconds
}

// NarrationConfig holds text-to-speech settings.
type NarrationConfig struct {
	Endpoint   string `mapstructure:"endpoint"    yaml:"endpoint"`
	Language   string `mapstructure:"language"    yaml:"language"`
	ChunkSize  int    `mapstructure:"chunk_size"  yaml:"chunk_size"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.newsvani/config.yaml (home directory)
//  3. /etc/newsvani/config.yaml (system)
//
// Environment variables override config file values.
// Format: NEWSVANI_<SECTION>_<KEY>, e.g., NEWSVANI_SOURCES_SEARCH_API_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".newsvani"))
	v.AddConfigPath("/etc/newsvani")

	v.SetEnvPrefix("NEWSVANI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("NEWSVANI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Search defaults
	v.SetDefault("sources.search.enabled", true)
	v.SetDefault("sources.search.fallback_domains", []string{
		"moneycontrol.com",
		"economictimes.indiatimes.com",
		"livemint.com",
		"business-standard.com",
		"reuters.com",
		"businesstoday.in",
	})

	// Fetch defaults
	v.SetDefault("fetch.per_source_timeout_sec", 30)
	v.SetDefault("fetch.per_source_limit", 10)

	// Analysis defaults
	v.SetDefault("analysis.cache_ttl", 600) // 10 minutes

	// Narration defaults
	v.SetDefault("narration.endpoint", "https://translate.google.com/translate_tts")
	v.SetDefault("narration.language", "hi")
	v.SetDefault("narration.chunk_size", 200)
	v.SetDefault("narration.timeout_sec", 30)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("NEWSVANI_SOURCES_SEARCH_API_KEY"); key != "" {
		cfg.Sources.Search.APIKey = key
	}
	if id := os.Getenv("NEWSVANI_SOURCES_SEARCH_ENGINE_ID"); id != "" {
		cfg.Sources.Search.EngineID = id
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
