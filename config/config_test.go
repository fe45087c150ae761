package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the loader looks at so tests start from the
// built-in defaults regardless of the machine they run on.
func clearEnv(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("ENV", "development")
	for _, name := range []string{
		"SERVER_PORT", "SERVER_HOST",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_URL",
		"EXTRACTION_TIMEOUT", "MAX_TRANSCRIPT_LENGTH", "MIN_CONTENT_LENGTH",
		"EXTRACT_RATE_LIMIT", "CORS_ORIGINS",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "saver")
	t.Setenv("DB_PASSWORD", "sekret")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("DB_SSL_MODE", "require")
	t.Setenv("REDIS_URL", "redis://cache:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "saver", cfg.DBUser)
	assert.Equal(t, "sekret", cfg.DBPassword)
	assert.Equal(t, "recipes", cfg.DBName)
	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Equal(t, "redis://cache:6379", cfg.RedisURL)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "recipe_saver", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)

	assert.Equal(t, "90s", cfg.ExtractionTimeout.String())
	assert.Equal(t, 15000, cfg.MaxTranscriptLength)
	assert.Equal(t, 50, cfg.MinContentLength)
	assert.Equal(t, 10, cfg.ExtractRateLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadConfigExtractionSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXTRACTION_TIMEOUT", "120")
	t.Setenv("MAX_TRANSCRIPT_LENGTH", "2000")
	t.Setenv("MIN_CONTENT_LENGTH", "10")
	t.Setenv("EXTRACT_RATE_LIMIT", "5")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://recipes.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "2m0s", cfg.ExtractionTimeout.String())
	assert.Equal(t, 2000, cfg.MaxTranscriptLength)
	assert.Equal(t, 10, cfg.MinContentLength)
	assert.Equal(t, 5, cfg.ExtractRateLimit)
	assert.Equal(t, []string{"http://localhost:5173", "https://recipes.example.com"}, cfg.CORSOrigins)
}

func TestLoadConfigIgnoresUnparsableNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXTRACTION_TIMEOUT", "ninety")
	t.Setenv("EXTRACT_RATE_LIMIT", "lots")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "90s", cfg.ExtractionTimeout.String())
	assert.Equal(t, 10, cfg.ExtractRateLimit)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXTRACTION_TIMEOUT", "-5")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXTRACTION_TIMEOUT")
}

func TestSecretsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	secretsDir := t.TempDir()
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("DB_PASSWORD", "from-env")
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("from-secret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.DBPassword)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "false")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
	assert.True(t, IsDevelopment())

	// CI detection wins over ENV.
	t.Setenv("CI", "true")
	t.Setenv("ENV", "production")
	assert.Equal(t, CI, GetEnvironment())
}
