package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/recipe-saver/backend/internal/service"
)

// SetupTestDB creates an in-memory SQLite database with the schema the
// handlers expect. UUID and JSONB columns map onto TEXT, which is enough for
// handler tests; postgres-specific behavior runs against containers in the
// integration tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	statements := []string{
		`CREATE TABLE recipes (
            id TEXT PRIMARY KEY,
            created_at DATETIME,
            updated_at DATETIME,
            deleted_at DATETIME,
            title TEXT,
            description TEXT,
            instructions TEXT,
            prep_time_mins INTEGER,
            cook_time_mins INTEGER,
            total_time_mins INTEGER,
            servings TEXT,
            difficulty TEXT,
            video_url TEXT,
            video_platform TEXT,
            recipe_page_url TEXT,
            recipe_site_name TEXT,
            thumbnail_url TEXT,
            author_name TEXT,
            original_caption TEXT,
            extraction_method TEXT,
            extraction_confidence REAL,
            raw_extraction TEXT,
            embedding TEXT
        );`,
		`CREATE TABLE ingredients (
            id TEXT PRIMARY KEY,
            recipe_id TEXT,
            name TEXT,
            quantity TEXT,
            unit TEXT,
            preparation TEXT,
            raw_text TEXT,
            sort_order INTEGER DEFAULT 0
        );`,
		`CREATE TABLE categories (
            id TEXT PRIMARY KEY,
            name TEXT,
            type TEXT,
            UNIQUE(name, type)
        );`,
		`CREATE TABLE recipe_tags (
            id TEXT PRIMARY KEY,
            recipe_id TEXT,
            tag TEXT,
            source TEXT
        );`,
		`CREATE TABLE recipe_categories (
            recipe_id TEXT,
            category_id TEXT,
            confidence REAL DEFAULT 1.0,
            PRIMARY KEY (recipe_id, category_id)
        );`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create schema: %v", err)
		}
	}
	return db
}

// SetupTestRouter wires the recipe and category handlers over a fresh test
// database.
func SetupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := SetupTestDB(t)
	recipes := service.NewRecipeService(db)

	router := gin.New()
	router.Use(gin.Recovery())
	v1 := router.Group("/api/v1")
	NewRecipeHandler(recipes).RegisterRoutes(v1)
	NewCategoryHandler(recipes).RegisterRoutes(v1)
	return router, db
}

// PerformRequest is a helper function to make HTTP requests in tests
func PerformRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	router.ServeHTTP(w, req)
	return w
}
