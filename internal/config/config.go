// Package config loads the service configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/companieshouse/charges-data-api-sub000/internal/metrics"
	mongostore "github.com/companieshouse/charges-data-api-sub000/internal/storage/mongo"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// NotifyConfig holds the NATS notification settings.
type NotifyConfig struct {
	URL           string `yaml:"url"`
	StreamName    string `yaml:"stream_name"`
	SubjectPrefix string `yaml:"subject_prefix"`
	Subject       string `yaml:"subject"`
	RetryAttempts int    `yaml:"retry_attempts"`
}

// AuthConfig holds the header-based auth settings. Identity headers are
// stamped by the fronting gateway; this service trusts them and only checks
// presence plus the privilege string on internal endpoints.
type AuthConfig struct {
	InternalPrivilege string `yaml:"internal_privilege"`
}

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig      `yaml:"server"`
	Storage mongostore.Config `yaml:"storage"`
	Notify  NotifyConfig      `yaml:"notify"`
	Metrics metrics.Config    `yaml:"metrics"`
	Auth    AuthConfig        `yaml:"auth"`
	Logging LoggingConfig     `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Storage: mongostore.Config{
			URI:        "mongodb://localhost:27017",
			Database:   "company_mortgages",
			Collection: "company_mortgages",
		},
		Notify: NotifyConfig{
			URL:        "nats://localhost:4222",
			StreamName: "resource-changed",
			Subject:    "company-charges",
		},
		Metrics: metrics.Config{
			BaseURL: "http://localhost:8081",
			Timeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			InternalPrivilege: "internal-app",
		},
		Logging: DefaultLoggingConfig(),
	}
}

// LoadConfig loads configuration from files and environment variables.
// Order: defaults -> config.yml -> config.local.yml -> env overrides -> validate.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	loadFile("config/config.yml", cfg)
	loadFile("config/config.local.yml", cfg)

	cfg.ApplyEnvOverrides()
	cfg.Logging.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(filename string, cfg *Config) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error parsing %s: %v\n", filename, err)
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CHARGES_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("CHARGES_API_MONGODB_URI"); v != "" {
		c.Storage.URI = v
	}
	if v := os.Getenv("CHARGES_API_MONGODB_DATABASE"); v != "" {
		c.Storage.Database = v
	}
	if v := os.Getenv("CHARGES_API_NATS_URL"); v != "" {
		c.Notify.URL = v
	}
	if v := os.Getenv("CHARGES_API_METRICS_URL"); v != "" {
		c.Metrics.BaseURL = v
	}
	if v := os.Getenv("CHARGES_API_METRICS_KEY"); v != "" {
		c.Metrics.APIKey = v
	}
	if v := os.Getenv("CHARGES_API_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Storage.URI == "" {
		return fmt.Errorf("storage.uri is required")
	}
	if c.Storage.Database == "" || c.Storage.Collection == "" {
		return fmt.Errorf("storage.database and storage.collection are required")
	}
	if c.Notify.URL == "" {
		return fmt.Errorf("notify.url is required")
	}
	if c.Notify.Subject == "" {
		return fmt.Errorf("notify.subject is required")
	}
	if c.Metrics.BaseURL == "" {
		return fmt.Errorf("metrics.base_url is required")
	}
	if c.Auth.InternalPrivilege == "" {
		return fmt.Errorf("auth.internal_privilege is required")
	}
	return c.Logging.Validate()
}
