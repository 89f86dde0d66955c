package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	Listings  ListingsConfig  `yaml:"listings"`
	Contact   ContactConfig   `yaml:"contact"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Report    ReportConfig    `yaml:"report"`
	Admin     AdminConfig     `yaml:"admin"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Type     string         `yaml:"type"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// ListingsConfig contains listing lifecycle settings
type ListingsConfig struct {
	RetentionDays   int `yaml:"retention_days"`
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`
}

// ContactConfig holds the site-wide contact used when a listing defers to
// the default contact
type ContactConfig struct {
	Phone    string `yaml:"phone"`
	Whatsapp string `yaml:"whatsapp"`
}

// RateLimitConfig contains posting rate limit settings
type RateLimitConfig struct {
	Enabled        bool `yaml:"enabled"`
	PostsPerMinute int  `yaml:"posts_per_minute"`
	PostsPerHour   int  `yaml:"posts_per_hour"`
}

// ReportConfig contains the daily stats report job settings
type ReportConfig struct {
	Enabled   bool   `yaml:"enabled"`
	DailyTime string `yaml:"daily_time"`
}

// AdminConfig contains administrator access settings
type AdminConfig struct {
	// Key is both the X-Admin-Key API credential and the delete-bypass
	// requester sentinel.
	Key string `yaml:"key"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8085",
			AllowOrigins: []string{"http://localhost:5173"},
		},
		Listings: ListingsConfig{
			RetentionDays:   60,
			CacheTTLMinutes: 5,
		},
		RateLimit: RateLimitConfig{
			Enabled:        true,
			PostsPerMinute: 5,
			PostsPerHour:   30,
		},
		Report: ReportConfig{
			Enabled:   false,
			DailyTime: "08:00",
		},
		Admin: AdminConfig{
			Key: "ADMIN",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// GetCacheTTL returns the cache TTL as a duration
func (c *ListingsConfig) GetCacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}
