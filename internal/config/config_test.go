package config

import (
	"os"
	"path/filepath"
	"testing"
)

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	os.Unsetenv("NEWSVANI_SOURCES_SEARCH_API_KEY")
	os.Unsetenv("NEWSVANI_SOURCES_SEARCH_ENGINE_ID")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.Sources.Search.Enabled {
		t.Error("Sources.Search.Enabled should be true by default")
	}
	if len(cfg.Sources.Search.FallbackDomains) == 0 {
		t.Error("Sources.Search.FallbackDomains should have defaults")
	}

	if cfg.Fetch.PerSourceTimeoutSec != 30 {
		t.Errorf("Fetch.PerSourceTimeoutSec: got %d, want 30", cfg.Fetch.PerSourceTimeoutSec)
	}
	if cfg.Fetch.PerSourceLimit != 10 {
		t.Errorf("Fetch.PerSourceLimit: got %d, want 10", cfg.Fetch.PerSourceLimit)
	}

	if cfg.Analysis.CacheTTL != 600 {
		t.Errorf("Analysis.CacheTTL: got %d, want 600", cfg.Analysis.CacheTTL)
	}

	if cfg.Narration.Language != "hi" {
		t.Errorf("Narration.Language: got %q, want %q", cfg.Narration.Language, "hi")
	}
	if cfg.Narration.ChunkSize != 200 {
		t.Errorf("Narration.ChunkSize: got %d, want 200", cfg.Narration.ChunkSize)
	}
	if cfg.Narration.TimeoutSec != 30 {
		t.Errorf("Narration.TimeoutSec: got %d, want 30", cfg.Narration.TimeoutSec)
	}

	if cfg.API.Host != "0.0.0.0" {
		t.Errorf("API.Host: got %q, want %q", cfg.API.Host, "0.0.0.0")
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port: got %d, want 8080", cfg.API.Port)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "text")
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "test_config.yaml")
	content := []byte(`
sources:
  feeds:
    - name: "Test Feed"
      url: "https://example.com/rss"
  search:
    enabled: false
    api_key: "test_key_12345678901234"
    engine_id: "engine-42"
fetch:
  per_source_limit: 5
narration:
  language: "hi-IN"
  chunk_size: 150
api:
  port: 9090
logging:
  level: "debug"
  format: "json"
`)
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	os.Unsetenv("NEWSVANI_SOURCES_SEARCH_API_KEY")
	os.Unsetenv("NEWSVANI_SOURCES_SEARCH_ENGINE_ID")

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if len(cfg.Sources.Feeds) != 1 || cfg.Sources.Feeds[0].Name != "Test Feed" {
		t.Errorf("Sources.Feeds: got %+v", cfg.Sources.Feeds)
	}
	if cfg.Sources.Search.Enabled {
		t.Error("Sources.Search.Enabled should be false from file")
	}
	if cfg.Sources.Search.APIKey != "test_key_12345678901234" {
		t.Errorf("Sources.Search.APIKey: got %q", cfg.Sources.Search.APIKey)
	}
	if cfg.Fetch.PerSourceLimit != 5 {
		t.Errorf("Fetch.PerSourceLimit: got %d, want 5", cfg.Fetch.PerSourceLimit)
	}
	if cfg.Fetch.PerSourceTimeoutSec != 30 {
		t.Errorf("Fetch.PerSourceTimeoutSec should keep default, got %d", cfg.Fetch.PerSourceTimeoutSec)
	}
	if cfg.Narration.Language != "hi-IN" {
		t.Errorf("Narration.Language: got %q", cfg.Narration.Language)
	}
	if cfg.Narration.ChunkSize != 150 {
		t.Errorf("Narration.ChunkSize: got %d, want 150", cfg.Narration.ChunkSize)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port: got %d, want 9090", cfg.API.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("LoadFromFile() with nonexistent path should return error")
	}
}

// ── overrideFromEnv ──

func TestOverrideFromEnv(t *testing.T) {
	cfg := &Config{}

	os.Setenv("NEWSVANI_SOURCES_SEARCH_API_KEY", "AIza-test-search-key-123")
	os.Setenv("NEWSVANI_SOURCES_SEARCH_ENGINE_ID", "engine-id-789")
	defer func() {
		os.Unsetenv("NEWSVANI_SOURCES_SEARCH_API_KEY")
		os.Unsetenv("NEWSVANI_SOURCES_SEARCH_ENGINE_ID")
	}()

	overrideFromEnv(cfg)

	if cfg.Sources.Search.APIKey != "AIza-test-search-key-123" {
		t.Errorf("Search.APIKey: got %q", cfg.Sources.Search.APIKey)
	}
	if cfg.Sources.Search.EngineID != "engine-id-789" {
		t.Errorf("Search.EngineID: got %q", cfg.Sources.Search.EngineID)
	}
}

func TestOverrideFromEnvNoEnvSet(t *testing.T) {
	os.Unsetenv("NEWSVANI_SOURCES_SEARCH_API_KEY")
	os.Unsetenv("NEWSVANI_SOURCES_SEARCH_ENGINE_ID")

	cfg := &Config{
		Sources: SourcesConfig{Search: SearchConfig{APIKey: "from-config"}},
	}
	overrideFromEnv(cfg)

	if cfg.Sources.Search.APIKey != "from-config" {
		t.Errorf("APIKey should stay as 'from-config' when env is unset, got %q", cfg.Sources.Search.APIKey)
	}
}

// ── maskKey ──

func TestMaskKeyShort(t *testing.T) {
	// Keys with 8 or fewer characters are fully masked
	tests := []struct {
		input string
		want  string
	}{
		{"", "***"},
		{"a", "***"},
		{"abcd", "***"},
		{"12345678", "***"},
	}
	for _, tc := range tests {
		got := maskKey(tc.input)
		if got != tc.want {
			t.Errorf("maskKey(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestMaskKeyLong(t *testing.T) {
	// Keys with more than 8 characters show first 3 + ... + last 3
	tests := []struct {
		input string
		want  string
	}{
		{"123456789", "123...789"},
		{"AIzaSyAbcdef1234567890xyz", "AIz...xyz"},
	}
	for _, tc := range tests {
		got := maskKey(tc.input)
		if got != tc.want {
			t.Errorf("maskKey(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

// ── CheckAPIKeys / checkKey ──

func TestCheckAPIKeysAllEmpty(t *testing.T) {
	os.Unsetenv("NEWSVANI_SOURCES_SEARCH_API_KEY")
	os.Unsetenv("NEWSVANI_SOURCES_SEARCH_ENGINE_ID")

	cfg := &Config{}
	statuses := CheckAPIKeys(cfg)

	if len(statuses) != 2 {
		t.Fatalf("CheckAPIKeys: got %d statuses, want 2", len(statuses))
	}
	for _, s := range statuses {
		if s.IsSet {
			t.Errorf("Key %q should not be set", s.Name)
		}
		if s.Source != KeySourceNone {
			t.Errorf("Key %q source: got %q, want %q", s.Name, s.Source, KeySourceNone)
		}
	}
}

func TestCheckAPIKeysFromConfig(t *testing.T) {
	os.Unsetenv("NEWSVANI_SOURCES_SEARCH_API_KEY")

	cfg := &Config{
		Sources: SourcesConfig{Search: SearchConfig{APIKey: "AIza-very-long-key-value"}},
	}
	statuses := CheckAPIKeys(cfg)

	found := false
	for _, s := range statuses {
		if s.Name == "Search API Key" {
			found = true
			if !s.IsSet {
				t.Error("search key should be set")
			}
			if s.Source != KeySourceConfig {
				t.Errorf("Source: got %q, want %q", s.Source, KeySourceConfig)
			}
			if s.Masked != "AIz...lue" {
				t.Errorf("Masked: got %q, want %q", s.Masked, "AIz...lue")
			}
		}
	}
	if !found {
		t.Error("Search API Key status not found")
	}
}

func TestCheckKeySourceDetection(t *testing.T) {
	os.Unsetenv("TEST_VAR")
	s := checkKey("Test", "", "TEST_VAR")
	if s.Source != KeySourceNone {
		t.Errorf("empty value: got source %q, want %q", s.Source, KeySourceNone)
	}
	if s.IsSet {
		t.Error("empty value should not be set")
	}

	s = checkKey("Test", "config-value-long-enough", "TEST_VAR")
	if s.Source != KeySourceConfig {
		t.Errorf("config value: got source %q, want %q", s.Source, KeySourceConfig)
	}
	if !s.IsSet {
		t.Error("config value should be set")
	}

	os.Setenv("TEST_VAR", "env-value-long-enough")
	defer os.Unsetenv("TEST_VAR")
	s = checkKey("Test", "env-value-long-enough", "TEST_VAR")
	if s.Source != KeySourceEnv {
		t.Errorf("env value: got source %q, want %q", s.Source, KeySourceEnv)
	}
}

// ── homeDir ──

func TestHomeDirReturnsNonEmpty(t *testing.T) {
	if homeDir() == "" {
		t.Error("homeDir() should not return empty string")
	}
}
