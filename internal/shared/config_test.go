package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./ytq.db" {
			t.Errorf("expected database path ./ytq.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if !config.Server.RequireAuth {
			t.Error("expected queue mutations to require auth by default")
		}

		if config.Server.ShutdownTimeout != 10*time.Second {
			t.Errorf("expected shutdown timeout 10s, got %v", config.Server.ShutdownTimeout)
		}

		if config.Credentials.YouTube.BaseURL != "https://www.googleapis.com/youtube/v3" {
			t.Errorf("unexpected youtube base URL %s", config.Credentials.YouTube.BaseURL)
		}

		if config.Credentials.YouTube.Configured() {
			t.Error("default config should not carry YouTube credentials")
		}

		if config.Search.MaxResults != 10 || config.Search.CategoryID != "10" {
			t.Errorf("unexpected search defaults %+v", config.Search)
		}

		if config.Queue.MaxLength != 500 {
			t.Errorf("expected queue max length 500, got %d", config.Queue.MaxLength)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[server]
host = "0.0.0.0"
port = 8080
require_auth = false

[credentials.youtube]
api_key = "test_api_key"

[queue]
max_length = 0
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Server.Port != 8080 || config.Server.RequireAuth {
			t.Errorf("unexpected server config %+v", config.Server)
		}
		if config.Credentials.YouTube.APIKey != "test_api_key" {
			t.Errorf("expected api key test_api_key, got %s", config.Credentials.YouTube.APIKey)
		}
		if config.Queue.MaxLength != 0 {
			t.Errorf("expected unbounded queue, got %d", config.Queue.MaxLength)
		}
		if config.Search.MaxResults != 10 {
			t.Errorf("keys missing from the file should keep defaults, got max_results %d", config.Search.MaxResults)
		}
		if config.Server.BaseURL() != "http://127.0.0.1:8080" {
			t.Errorf("unexpected base URL %s", config.Server.BaseURL())
		}
	})

	t.Run("LoadConfig invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server\nport = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("YTQ_SERVER_PORT", "9999")
		t.Setenv("YTQ_SERVER_REQUIRE_AUTH", "false")
		t.Setenv("YTQ_SERVER_ALLOWED_ORIGINS", "http://a.test,http://b.test")
		t.Setenv("YTQ_YOUTUBE_API_KEY", "from-env")
		t.Setenv("YTQ_QUEUE_MAX_LENGTH", "3")
		t.Setenv("YTQ_LOG_LEVEL", "debug")

		config := DefaultConfig()
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}

		if config.Server.Port != 9999 || config.Server.RequireAuth {
			t.Errorf("server overrides not applied: %+v", config.Server)
		}
		if len(config.Server.AllowedOrigins) != 2 || config.Server.AllowedOrigins[1] != "http://b.test" {
			t.Errorf("unexpected allowed origins %v", config.Server.AllowedOrigins)
		}
		if config.Credentials.YouTube.APIKey != "from-env" {
			t.Errorf("expected api key from env, got %q", config.Credentials.YouTube.APIKey)
		}
		if config.Queue.MaxLength != 3 || config.Log.Level != "debug" {
			t.Errorf("unexpected queue/log overrides: %d %q", config.Queue.MaxLength, config.Log.Level)
		}
		if config.Database.Path != "./ytq.db" {
			t.Errorf("unset variables should keep file values, got %s", config.Database.Path)
		}
	})

	t.Run("ApplyEnv invalid value", func(t *testing.T) {
		t.Setenv("YTQ_SERVER_PORT", "not-a-number")

		if err := ApplyEnv(DefaultConfig()); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ResolveConfig missing file", func(t *testing.T) {
		config, err := ResolveConfig(filepath.Join(t.TempDir(), "absent.toml"))
		if err != nil {
			t.Fatalf("ResolveConfig() error = %v", err)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected defaults, got port %d", config.Server.Port)
		}
	})
}
