package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	CORS    CORSConfig    `mapstructure:"cors"    validate:"required"`
	Scoring ScoringConfig `mapstructure:"scoring" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// CORSConfig controls which browser origins may call the API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`
}

// ScoringConfig contains settings for task scoring.
type ScoringConfig struct {
	// Timezone is an IANA zone name, or "Local" for the host zone. Deadlines
	// are interpreted as midnight in this zone.
	Timezone string `mapstructure:"timezone" validate:"required"`
}

// Location resolves Timezone.
func (c ScoringConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
