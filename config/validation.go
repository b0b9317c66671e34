package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable for the
// current environment. Production refuses to start without a JWT secret
// and a database password; development falls back to local defaults.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}
	}

	switch cfg.DBEngine {
	case "postgres", "sqlite":
	default:
		return ValidationError{Field: "DB_ENGINE", Message: fmt.Sprintf("unsupported engine %q", cfg.DBEngine)}
	}

	if cfg.PageSize < 1 {
		return ValidationError{Field: "PAGE_SIZE", Message: "must be at least 1"}
	}
	if cfg.MinValue < 1 {
		return ValidationError{Field: "MIN_VALUE", Message: "must be at least 1"}
	}

	if IsProduction() {
		if cfg.JWTSecret == "" {
			return ValidationError{Field: "JWT_SECRET", Message: "required in production"}
		}
		if cfg.DBEngine == "postgres" && cfg.DBPassword == "" {
			return ValidationError{Field: "DB_PASSWORD", Message: "required in production"}
		}
	}

	return nil
}
