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

// ValidateConfig checks that the configuration is usable for the current
// environment. Development and test may lean on defaults; production must
// spell out credentials.
func ValidateConfig(cfg *Config) error {
	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			return ValidationError{Field: "DB_PATH", Message: "required for the sqlite driver"}
		}
	case "postgres":
		if cfg.DBUser == "" {
			return ValidationError{Field: "DB_USER", Message: "required for the postgres driver"}
		}
		if cfg.DBPassword == "" {
			return ValidationError{Field: "DB_PASSWORD", Message: "required for the postgres driver"}
		}
	default:
		return ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}
	}

	if IsProduction() && cfg.JWTSecret == "" {
		return ValidationError{Field: "JWT_SECRET", Message: "required in production"}
	}

	return nil
}
