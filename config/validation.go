package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredEnvVars []string
	RequiredSecrets []string
}

var requirements = map[Environment]ConfigRequirements{
	// Development and test run on local defaults; nothing is required.
	Development: {},
	Test:        {},
	CI: {
		RequiredEnvVars: []string{
			"DB_HOST",
			"DB_PORT",
			"DB_USER",
			"DB_NAME",
			"REDIS_HOST",
			"REDIS_PORT",
			"TEST_DB_PASSWORD",
		},
		RequiredSecrets: []string{}, // CI uses environment variables, not Docker secrets
	},
	Production: {
		RequiredSecrets: []string{
			"server_port",
			"server_host",
			"db_host",
			"db_port",
			"db_user",
			"db_password",
			"db_name",
			"db_ssl_mode",
			"redis_host",
			"redis_port",
			"redis_password",
			"redis_url",
		},
	},
}

// ValidateConfig checks the configuration against the requirements for the
// current environment.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errors []string

	for _, envVar := range reqs.RequiredEnvVars {
		if value := os.Getenv(envVar); value == "" {
			errors = append(errors, ValidationError{
				Field:   envVar,
				Message: "required environment variable is not set",
			}.Error())
		}
	}

	for _, secret := range reqs.RequiredSecrets {
		if value := readSecret(secret); value == "" {
			errors = append(errors, ValidationError{
				Field:   secret,
				Message: "required secret is not set",
			}.Error())
		}
	}

	if cfg.ExtractionTimeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "EXTRACTION_TIMEOUT",
			Message: "must be a positive number of seconds",
		}.Error())
	}
	if cfg.MaxTranscriptLength <= 0 {
		errors = append(errors, ValidationError{
			Field:   "MAX_TRANSCRIPT_LENGTH",
			Message: "must be a positive number of characters",
		}.Error())
	}
	if cfg.MinContentLength < 0 {
		errors = append(errors, ValidationError{
			Field:   "MIN_CONTENT_LENGTH",
			Message: "must not be negative",
		}.Error())
	}
	if cfg.ExtractRateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "EXTRACT_RATE_LIMIT",
			Message: "must allow at least one request per hour",
		}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
