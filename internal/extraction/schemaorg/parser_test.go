package schemaorg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonLDPage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Beef Stew",
  "description": "A hearty stew.",
  "author": {"@type": "Person", "name": "Jane Cook"},
  "image": {"@type": "ImageObject", "url": "https://example.com/stew.jpg"},
  "prepTime": "PT15M",
  "cookTime": "PT1H30M",
  "totalTime": "PT1H45M",
  "recipeYield": ["4 servings"],
  "recipeCuisine": "French",
  "recipeCategory": ["Dinner", "Main"],
  "recipeIngredient": ["2 cups beef broth", "1 pound beef chuck, cubed", "3 carrots"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Brown the beef."},
    {"@type": "HowToStep", "text": "Add broth and simmer."}
  ]
}
</script>
</head><body></body></html>`

const graphPage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebSite", "name": "Some Blog"},
    {
      "@type": ["Recipe", "NewsArticle"],
      "name": "Garlic Pasta",
      "recipeIngredient": ["1 lb spaghetti", "6 cloves garlic, sliced"],
      "recipeInstructions": "Boil the pasta. Saute the garlic. Toss together and serve."
    }
  ]
}
</script>
</head><body></body></html>`

const sectionedPage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{
  "@type": "Recipe",
  "name": "Layer Cake",
  "recipeIngredient": ["2 cups flour"],
  "recipeInstructions": [
    {
      "@type": "HowToSection",
      "name": "Cake",
      "itemListElement": [
        {"@type": "HowToStep", "text": "Mix the batter."},
        {"@type": "HowToStep", "text": "Bake."}
      ]
    },
    {
      "@type": "HowToSection",
      "name": "Frosting",
      "itemListElement": [
        {"@type": "HowToStep", "text": "Whip the cream."}
      ]
    }
  ]
}
</script>
</head><body></body></html>`

const microdataPage = `<!DOCTYPE html>
<html><body>
<div itemscope itemtype="https://schema.org/Recipe">
  <h1 itemprop="name">Lemon Cake</h1>
  <p itemprop="description">Bright and sweet.</p>
  <meta itemprop="prepTime" content="PT20M">
  <meta itemprop="cookTime" content="PT40M">
  <span itemprop="recipeYield">8 slices</span>
  <span itemprop="author">Maria</span>
  <ul>
    <li itemprop="recipeIngredient">2 cups flour</li>
    <li itemprop="recipeIngredient">1 cup sugar</li>
  </ul>
  <ol>
    <li itemprop="recipeInstructions">Mix the dry ingredients.</li>
    <li itemprop="recipeInstructions">Bake for 40 minutes.</li>
  </ol>
</div>
</body></html>`

const ogFallbackPage = `<!DOCTYPE html>
<html><head>
<meta property="og:image" content="https://example.com/og.jpg">
<meta property="og:description" content="From the open graph.">
<script type="application/ld+json">
{
  "@type": "Recipe",
  "name": "Plain Soup",
  "recipeIngredient": ["4 cups stock"],
  "recipeInstructions": ["Simmer the stock."]
}
</script>
</head><body></body></html>`

const noRecipePage = `<!DOCTYPE html>
<html><head><title>Just a blog post</title></head>
<body><p>No recipe here.</p></body></html>`

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestParseJSONLD(t *testing.T) {
	server := servePage(t, jsonLDPage)
	parser := NewParser(server.Client())

	recipe, confidence, err := parser.Parse(context.Background(), server.URL+"/stew")
	require.NoError(t, err)
	require.NotNil(t, recipe)

	assert.Equal(t, FullConfidence, confidence)
	assert.Equal(t, "Beef Stew", recipe.Title)
	assert.Equal(t, "A hearty stew.", recipe.Description)
	assert.Equal(t, "Jane Cook", recipe.Author)
	assert.Equal(t, "https://example.com/stew.jpg", recipe.ImageURL)
	assert.Equal(t, "4 servings", recipe.Servings)
	assert.Equal(t, "French", recipe.Cuisine)
	assert.Equal(t, "Dinner", recipe.Category)

	require.NotNil(t, recipe.PrepTimeMins)
	require.NotNil(t, recipe.CookTimeMins)
	require.NotNil(t, recipe.TotalTimeMins)
	assert.Equal(t, 15, *recipe.PrepTimeMins)
	assert.Equal(t, 90, *recipe.CookTimeMins)
	assert.Equal(t, 105, *recipe.TotalTimeMins)

	require.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, "2", recipe.Ingredients[0].Quantity)
	assert.Equal(t, "cups", recipe.Ingredients[0].Unit)
	assert.Equal(t, "beef broth", recipe.Ingredients[0].Name)
	assert.Equal(t, "cubed", recipe.Ingredients[1].Preparation)

	require.Len(t, recipe.Instructions, 2)
	assert.Equal(t, "Brown the beef.", recipe.Instructions[0])

	assert.Equal(t, server.URL+"/stew", recipe.SourceURL)
}

func TestParseGraphAndTypeList(t *testing.T) {
	server := servePage(t, graphPage)
	parser := NewParser(server.Client())

	recipe, confidence, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Garlic Pasta", recipe.Title)
	assert.Equal(t, FullConfidence, confidence)

	// Blob instructions split on sentence boundaries.
	require.Len(t, recipe.Instructions, 3)
	assert.Equal(t, "Boil the pasta", recipe.Instructions[0])
	assert.Equal(t, "Saute the garlic", recipe.Instructions[1])
	assert.Equal(t, "Toss together and serve.", recipe.Instructions[2])
}

func TestParseHowToSections(t *testing.T) {
	server := servePage(t, sectionedPage)
	parser := NewParser(server.Client())

	recipe, _, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)

	require.Len(t, recipe.Instructions, 5)
	assert.Equal(t, "**Cake**", recipe.Instructions[0])
	assert.Equal(t, "Mix the batter.", recipe.Instructions[1])
	assert.Equal(t, "Bake.", recipe.Instructions[2])
	assert.Equal(t, "**Frosting**", recipe.Instructions[3])
	assert.Equal(t, "Whip the cream.", recipe.Instructions[4])
}

func TestParseMicrodataFallback(t *testing.T) {
	server := servePage(t, microdataPage)
	parser := NewParser(server.Client())

	recipe, confidence, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, FullConfidence, confidence)
	assert.Equal(t, "Lemon Cake", recipe.Title)
	assert.Equal(t, "Bright and sweet.", recipe.Description)
	assert.Equal(t, "8 slices", recipe.Servings)
	assert.Equal(t, "Maria", recipe.Author)

	require.NotNil(t, recipe.PrepTimeMins)
	assert.Equal(t, 20, *recipe.PrepTimeMins)
	require.NotNil(t, recipe.CookTimeMins)
	assert.Equal(t, 40, *recipe.CookTimeMins)

	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "flour", recipe.Ingredients[0].Name)

	require.Len(t, recipe.Instructions, 2)
	assert.Equal(t, "Mix the dry ingredients.", recipe.Instructions[0])
}

func TestParseOpenGraphBackfill(t *testing.T) {
	server := servePage(t, ogFallbackPage)
	parser := NewParser(server.Client())

	recipe, _, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/og.jpg", recipe.ImageURL)
	assert.Equal(t, "From the open graph.", recipe.Description)
}

func TestParseNoRecipeMarkup(t *testing.T) {
	server := servePage(t, noRecipePage)
	parser := NewParser(server.Client())

	recipe, _, err := parser.Parse(context.Background(), server.URL)
	assert.Nil(t, recipe)
	assert.True(t, errors.Is(err, ErrNoRecipeMarkup))
}

func TestParseFetchError(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	parser := NewParser(server.Client())

	recipe, _, err := parser.Parse(context.Background(), server.URL)
	assert.Nil(t, recipe)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)

	// 4xx is final, no retry.
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestParseRetriesServerError(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(jsonLDPage))
	}))
	defer server.Close()

	parser := NewParser(server.Client())

	recipe, _, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Beef Stew", recipe.Title)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
