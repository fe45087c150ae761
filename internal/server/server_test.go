package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipe-saver/backend/config"
	"github.com/recipe-saver/backend/internal/extraction"
)

func TestNewServer(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cfg := &config.Config{
		ServerHost:        "localhost",
		ServerPort:        "8080",
		ExtractionTimeout: 90 * time.Second,
		ExtractRateLimit:  10,
		CORSOrigins:       []string{"*"},
	}

	server := NewServer(db, nil, extraction.NewPipeline(nil, nil, nil, nil, nil), nil, cfg)
	require.NotNil(t, server)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe Saver API")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/health", nil)
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
