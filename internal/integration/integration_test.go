package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recipe-saver/backend/config"
	"github.com/recipe-saver/backend/internal/extraction"
	"github.com/recipe-saver/backend/internal/extraction/schemaorg"
	"github.com/recipe-saver/backend/internal/extraction/sites"
	"github.com/recipe-saver/backend/internal/extraction/youtube"
	"github.com/recipe-saver/backend/internal/model"
	"github.com/recipe-saver/backend/internal/router"
	"github.com/recipe-saver/backend/internal/testhelpers"
)

const recipePage = `<!DOCTYPE html>
<html>
<head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Creamy Garlic Pasta",
  "description": "Weeknight pasta in under thirty minutes.",
  "recipeIngredient": ["2 cups heavy cream", "3 cloves garlic, minced", "1 lb spaghetti"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Boil the pasta."},
    {"@type": "HowToStep", "text": "Simmer the cream with garlic."}
  ],
  "totalTime": "PT30M",
  "recipeYield": "4",
  "author": {"@type": "Person", "name": "Chef John"},
  "image": "https://img.example.com/pasta.jpg"
}
</script>
</head>
<body></body>
</html>`

func TestIntegrationExtractCacheAndLimit(t *testing.T) {
	db := testhelpers.StartPostgres(t)
	redisClient := testhelpers.StartRedis(t)

	var pageHits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pageHits, 1)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, recipePage)
	}))
	defer ts.Close()

	pipeline := extraction.NewPipeline(
		youtube.NewClient(ts.Client(), 15000),
		schemaorg.NewParser(ts.Client()),
		sites.NewResolver(ts.Client()),
		nil,
		nil,
	)

	cfg := &config.Config{
		ExtractionTimeout: 30 * time.Second,
		ExtractRateLimit:  3,
		CORSOrigins:       []string{"*"},
	}
	gin.SetMode(gin.TestMode)
	r := router.SetupRouter(db, redisClient, pipeline, nil, cfg)

	pageURL := ts.URL + "/recipes/creamy-garlic-pasta"
	extract := func() *httptest.ResponseRecorder {
		body := fmt.Sprintf(`{"url":%q}`, pageURL)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// First extraction runs the pipeline and saves the recipe.
	w := extract()
	if w.Code != http.StatusOK {
		t.Fatalf("extract failed: %d: %s", w.Code, w.Body.String())
	}
	var envelope struct {
		Success    bool          `json:"success"`
		Method     string        `json:"method"`
		Confidence float64       `json:"confidence"`
		Recipe     *model.Recipe `json:"recipe"`
		Message    string        `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("extraction not successful: %s", w.Body.String())
	}
	if envelope.Method != "schema_org" {
		t.Fatalf("unexpected method: %s", envelope.Method)
	}
	if envelope.Recipe == nil {
		t.Fatalf("no recipe in envelope")
	}
	recipeID := envelope.Recipe.ID
	if hits := atomic.LoadInt32(&pageHits); hits != 1 {
		t.Fatalf("expected 1 page fetch, got %d", hits)
	}

	var saved model.Recipe
	if err := db.Preload("Ingredients").First(&saved, "id = ?", recipeID).Error; err != nil {
		t.Fatalf("recipe not in db: %v", err)
	}
	if len(saved.Ingredients) != 3 {
		t.Fatalf("expected 3 ingredients, got %d", len(saved.Ingredients))
	}
	if saved.ExtractionMethod != "schema_org" {
		t.Fatalf("unexpected extraction method in db: %s", saved.ExtractionMethod)
	}

	// Repeat submissions replay the cached envelope without refetching.
	w = extract()
	if w.Code != http.StatusOK {
		t.Fatalf("cached extract failed: %d", w.Code)
	}
	var cached struct {
		Recipe *model.Recipe `json:"recipe"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &cached); err != nil {
		t.Fatalf("failed to decode cached envelope: %v", err)
	}
	if cached.Recipe == nil || cached.Recipe.ID != recipeID {
		t.Fatalf("cached envelope does not carry the saved recipe")
	}
	if hits := atomic.LoadInt32(&pageHits); hits != 1 {
		t.Fatalf("cache miss refetched the page: %d hits", hits)
	}

	// The third request exhausts the limit; the fourth is rejected.
	if w = extract(); w.Code != http.StatusOK {
		t.Fatalf("third extract failed: %d", w.Code)
	}
	w = extract()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if limit := w.Header().Get("X-RateLimit-Limit"); limit != "3" {
		t.Fatalf("unexpected X-RateLimit-Limit: %q", limit)
	}
	var limited map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &limited); err != nil {
		t.Fatalf("failed to decode rate limit body: %v", err)
	}
	if msg, _ := limited["message"].(string); msg == "" {
		t.Fatalf("rate limit body missing message: %s", w.Body.String())
	}

	// The saved recipe shows up in list and detail reads.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d", w.Code)
	}
	var page struct {
		Recipes []map[string]interface{} `json:"recipes"`
		Total   int64                    `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if page.Total != 1 || len(page.Recipes) != 1 {
		t.Fatalf("expected 1 recipe, got total=%d len=%d", page.Total, len(page.Recipes))
	}

	// Similarity ordering runs on pgvector embeddings.
	testhelpers.SeedRecipe(t, db, "Creamy Garlic Noodles")
	testhelpers.SeedRecipe(t, db, "Beef Wellington")

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/recipes/%s/similar?limit=2", recipeID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("similar failed: %d: %s", w.Code, w.Body.String())
	}
	var similar struct {
		Recipes []map[string]interface{} `json:"recipes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &similar); err != nil {
		t.Fatalf("failed to decode similar: %v", err)
	}
	if len(similar.Recipes) != 2 {
		t.Fatalf("expected 2 similar recipes, got %d", len(similar.Recipes))
	}
	for _, rec := range similar.Recipes {
		if rec["id"] == recipeID.String() {
			t.Fatalf("similar results include the source recipe")
		}
	}

	// Health reports both dependencies.
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("health failed: %d", w.Code)
	}
	var health struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if health.Status != "healthy" {
		t.Fatalf("unexpected health status: %s", health.Status)
	}
	if health.Checks["database"] != "ok" || health.Checks["redis"] != "ok" {
		t.Fatalf("unexpected health checks: %v", health.Checks)
	}
}
