// Package config provides configuration management for the BetPilot services.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Scenarios  ScenariosConfig  `mapstructure:"scenarios" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	LogFormat   string `mapstructure:"log_format" validate:"omitempty,oneof=json text"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"required,gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"required,gt=0"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" validate:"required,gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	RateLimitRPS    float64       `mapstructure:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst" validate:"gte=0"`
}

// SimulationConfig bounds and tunes the Monte Carlo engine
type SimulationConfig struct {
	DefaultTrials int    `mapstructure:"default_trials" validate:"required,gt=0"`
	MaxTrials     int    `mapstructure:"max_trials" validate:"required,gt=0"`
	MaxBets       int    `mapstructure:"max_bets" validate:"required,gt=0"`
	BinRule       string `mapstructure:"bin_rule" validate:"required,binrule"`
	Seed          int64  `mapstructure:"seed"`
}

// ScenariosConfig represents the in-memory scenario store configuration
type ScenariosConfig struct {
	TTL           time.Duration `mapstructure:"ttl" validate:"required,gt=0"`
	MaxScenarios  int           `mapstructure:"max_scenarios" validate:"required,gt=0"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ListenAddress returns the address the API server binds to
func (c *Config) ListenAddress() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
