package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestLoadDefaults tests that default configuration values are loaded correctly.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected default server host '0.0.0.0', got '%s'", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default server port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Expected default read timeout 30s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected default shutdown timeout 10s, got %v", cfg.Server.ShutdownTimeout)
	}

	if cfg.Storage.Driver != "mongo" {
		t.Errorf("Expected default storage driver 'mongo', got '%s'", cfg.Storage.Driver)
	}
	if cfg.MongoDB.URI != "mongodb://localhost:27017" {
		t.Errorf("Expected default mongodb uri, got '%s'", cfg.MongoDB.URI)
	}
	if cfg.MongoDB.Database != "pwa" {
		t.Errorf("Expected default database 'pwa', got '%s'", cfg.MongoDB.Database)
	}
	if cfg.MongoDB.ConnectTimeout != 10*time.Second {
		t.Errorf("Expected default connect timeout 10s, got %v", cfg.MongoDB.ConnectTimeout)
	}

	if cfg.Profile.RefreshInterval != 300*time.Second {
		t.Errorf("Expected default profile refresh interval 300s, got %v", cfg.Profile.RefreshInterval)
	}
	if cfg.Profile.Enabled() {
		t.Errorf("Expected profile service disabled by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default logging level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected default logging format 'json', got '%s'", cfg.Logging.Format)
	}

	if cfg.Security.RateLimit != 100 {
		t.Errorf("Expected default rate limit 100, got %d", cfg.Security.RateLimit)
	}
	if len(cfg.Security.AllowedOrigins) != 1 || cfg.Security.AllowedOrigins[0] != "*" {
		t.Errorf("Expected default allowed origins ['*'], got %v", cfg.Security.AllowedOrigins)
	}
	if cfg.Security.JWTSecret != "change-me-in-production" {
		t.Errorf("Expected default jwt_secret 'change-me-in-production', got '%s'", cfg.Security.JWTSecret)
	}
}

// TestLoadFile tests that values from a YAML file override defaults.
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
storage:
  driver: memory
profile:
  url: http://profile.local/api
  token: secret
  refresh_interval: 60s
logging:
  format: text
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("Expected storage driver 'memory', got '%s'", cfg.Storage.Driver)
	}
	if !cfg.Profile.Enabled() || cfg.Profile.URL != "http://profile.local/api" {
		t.Errorf("Expected profile url from file, got '%s'", cfg.Profile.URL)
	}
	if cfg.Profile.RefreshInterval != time.Minute {
		t.Errorf("Expected refresh interval 1m, got %v", cfg.Profile.RefreshInterval)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected logging format 'text', got '%s'", cfg.Logging.Format)
	}
}

// TestValidation tests the configuration validation logic.
func TestValidation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Storage:  StorageConfig{Driver: "mongo"},
			MongoDB:  MongoDBConfig{URI: "mongodb://localhost:27017", Database: "pwa"},
			Logging:  LoggingConfig{Format: "json"},
			Security: SecurityConfig{JWTSecret: "secret"},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		expectErr bool
		errMsg    string
	}{
		{
			name:      "valid configuration",
			mutate:    func(*Config) {},
			expectErr: false,
		},
		{
			name:      "invalid port - too low",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			expectErr: true,
			errMsg:    "invalid server port",
		},
		{
			name:      "invalid port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			expectErr: true,
			errMsg:    "invalid server port",
		},
		{
			name:      "missing mongodb uri",
			mutate:    func(c *Config) { c.MongoDB.URI = "" },
			expectErr: true,
			errMsg:    "mongodb uri is required",
		},
		{
			name:      "missing mongodb database",
			mutate:    func(c *Config) { c.MongoDB.Database = "" },
			expectErr: true,
			errMsg:    "mongodb database is required",
		},
		{
			name: "memory driver ignores mongodb settings",
			mutate: func(c *Config) {
				c.Storage.Driver = "memory"
				c.MongoDB = MongoDBConfig{}
			},
			expectErr: false,
		},
		{
			name:      "unknown driver",
			mutate:    func(c *Config) { c.Storage.Driver = "couchdb" },
			expectErr: true,
			errMsg:    "invalid storage driver",
		},
		{
			name:      "missing jwt secret",
			mutate:    func(c *Config) { c.Security.JWTSecret = "" },
			expectErr: true,
			errMsg:    "jwt_secret is required",
		},
		{
			name: "profile without refresh interval",
			mutate: func(c *Config) {
				c.Profile.URL = "http://profile"
				c.Profile.RefreshInterval = 0
			},
			expectErr: true,
			errMsg:    "invalid profile refresh interval",
		},
		{
			name:      "bad log format",
			mutate:    func(c *Config) { c.Logging.Format = "xml" },
			expectErr: true,
			errMsg:    "invalid logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Expected error containing '%s', got nil", tt.errMsg)
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error containing '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

// TestEnvironmentVariableOverride tests that environment variables override config values.
func TestEnvironmentVariableOverride(t *testing.T) {
	t.Setenv("HR_SERVER_PORT", "9999")
	t.Setenv("HR_SERVER_HOST", "127.0.0.1")
	t.Setenv("HR_SERVER_DEBUG", "true")
	t.Setenv("HR_MONGODB_DATABASE", "registry")

	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Expected port 9999 from environment, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Expected host '127.0.0.1' from environment, got '%s'", cfg.Server.Host)
	}
	if !cfg.Server.Debug {
		t.Errorf("Expected debug true from environment, got %v", cfg.Server.Debug)
	}
	if cfg.MongoDB.Database != "registry" {
		t.Errorf("Expected database 'registry' from environment, got '%s'", cfg.MongoDB.Database)
	}
}
