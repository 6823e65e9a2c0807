// Package config provides configuration management for hostreg.
//
// This package handles loading configuration from multiple sources:
//   - YAML configuration files
//   - Environment variables (with HR_ prefix)
//   - .env files
//   - Default values
//
// # Configuration Sources Priority
//
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Default values (hardcoded)
//  2. Configuration files (./configs/config.yaml, ~/.hostreg/config.yaml, /etc/hostreg/config.yaml)
//  3. .env files
//  4. Environment variables (HR_ prefix)
//
// # Usage Example
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Server: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
//
// # Environment Variables
//
// Use HR_ prefix and underscores for nested keys:
//   - HR_SERVER_PORT=8080
//   - HR_MONGODB_URI=mongodb://localhost:27017
//   - HR_PROFILE_TOKEN=eyJhbGciOi...
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure for hostreg.
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Storage selects the storage backend
	Storage StorageConfig `mapstructure:"storage"`

	// MongoDB contains database connection settings
	MongoDB MongoDBConfig `mapstructure:"mongodb"`

	// Profile contains the profile service used to resolve admin identities
	Profile ProfileConfig `mapstructure:"profile"`

	// Logging contains logging settings
	Logging LoggingConfig `mapstructure:"logging"`

	// Security contains authentication and rate limiting settings
	Security SecurityConfig `mapstructure:"security"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address (default: 0.0.0.0)
	Host string `mapstructure:"host"`

	// Port is the server listen port (default: 8080)
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading requests
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration for writing responses
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// ShutdownTimeout is the maximum duration for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Debug exposes internal error details in responses
	Debug bool `mapstructure:"debug"`

	// TLSEnabled enables HTTPS
	TLSEnabled bool `mapstructure:"tls_enabled"`

	// TLSCert is the path to the TLS certificate file
	TLSCert string `mapstructure:"tls_cert"`

	// TLSKey is the path to the TLS private key file
	TLSKey string `mapstructure:"tls_key"`
}

// StorageConfig selects the storage backend.
type StorageConfig struct {
	// Driver is "mongo" or "memory"
	Driver string `mapstructure:"driver"`
}

// MongoDBConfig contains MongoDB connection settings.
type MongoDBConfig struct {
	// URI is the MongoDB connection string
	URI string `mapstructure:"uri"`

	// Database is the database holding the hosts, hostgroups and configs collections
	Database string `mapstructure:"database"`

	// MaxPoolSize caps the connection pool (0 uses the driver default)
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`

	// ConnectTimeout bounds the initial connect and ping
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// ProfileConfig contains settings for the user profile service.
type ProfileConfig struct {
	// URL is the base URL of the profile API; /users is appended
	URL string `mapstructure:"url"`

	// Token is the bearer token sent to the profile API
	Token string `mapstructure:"token"`

	// RefreshInterval is the period between cache refreshes
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`

	// Timeout bounds a single refresh request
	Timeout time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether a profile service is configured.
func (p ProfileConfig) Enabled() bool {
	return p.URL != ""
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is the log format (json, text)
	Format string `mapstructure:"format"`
}

// SecurityConfig contains security and rate limiting settings.
type SecurityConfig struct {
	// RateLimit is the maximum requests per second per client (0 disables)
	RateLimit int `mapstructure:"rate_limit"`

	// AllowedOrigins are the CORS allowed origins
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// JWTSecret is the HMAC key used to verify bearer tokens
	JWTSecret string `mapstructure:"jwt_secret"`

	// JWTIssuer, when set, is required to match the iss claim
	JWTIssuer string `mapstructure:"jwt_issuer"`
}

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for config.yaml in standard locations.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (HR_ prefix)
//  2. .env file
//  3. Configuration file
//  4. Default values
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.hostreg")
		v.AddConfigPath("/etc/hostreg")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			// an explicit file that does not exist falls back to defaults
			if !isFileNotFoundError(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig() // Ignore error if .env file doesn't exist

	v.SetEnvPrefix("HR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.tls_enabled", false)

	v.SetDefault("storage.driver", "mongo")

	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "pwa")
	v.SetDefault("mongodb.max_pool_size", 0)
	v.SetDefault("mongodb.connect_timeout", "10s")

	v.SetDefault("profile.url", "")
	v.SetDefault("profile.token", "")
	v.SetDefault("profile.refresh_interval", "300s")
	v.SetDefault("profile.timeout", "30s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("security.rate_limit", 100)
	v.SetDefault("security.allowed_origins", []string{"*"})
	v.SetDefault("security.jwt_secret", "change-me-in-production")
	v.SetDefault("security.jwt_issuer", "")
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	switch cfg.Storage.Driver {
	case "mongo":
		if cfg.MongoDB.URI == "" {
			return fmt.Errorf("mongodb uri is required")
		}
		if cfg.MongoDB.Database == "" {
			return fmt.Errorf("mongodb database is required")
		}
	case "memory":
	default:
		return fmt.Errorf("invalid storage driver: %q", cfg.Storage.Driver)
	}

	if cfg.Security.JWTSecret == "" {
		return fmt.Errorf("security jwt_secret is required")
	}

	if cfg.Profile.Enabled() && cfg.Profile.RefreshInterval <= 0 {
		return fmt.Errorf("invalid profile refresh interval: %s", cfg.Profile.RefreshInterval)
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %q", cfg.Logging.Format)
	}

	return nil
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
