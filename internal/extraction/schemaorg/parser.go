package schemaorg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (compatible; RecipeSaver/1.0; +https://github.com/recipe-saver)"

// Confidence levels reported by Parse. Full requires both ingredients and
// instructions; anything less is a partial recovery.
const (
	FullConfidence    = 0.95
	PartialConfidence = 0.6
)

// ErrNoRecipeMarkup means the page loaded fine but carries no parsable
// schema.org/Recipe data. Common and expected; callers fall back to the next
// candidate URL or to transcript extraction.
var ErrNoRecipeMarkup = errors.New("no schema.org/Recipe markup found")

// FetchError wraps a failed page retrieval (network error or HTTP >= 400).
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Parser fetches candidate recipe pages and extracts schema.org/Recipe data,
// trying JSON-LD first and falling back to microdata attributes.
type Parser struct {
	client *http.Client
}

func NewParser(client *http.Client) *Parser {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Parser{client: client}
}

// Parse fetches pageURL and returns the normalized recipe with a confidence
// score. Returns a FetchError when the page cannot be retrieved and
// ErrNoRecipeMarkup when it holds no structured recipe data.
func (p *Parser) Parse(ctx context.Context, pageURL string) (*Recipe, float64, error) {
	resp, err := p.fetch(ctx, pageURL)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	// Redirects are followed, so the final URL is the real source.
	finalURL := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, 0, &FetchError{URL: pageURL, Err: err}
	}

	recipe := ParseDocument(doc, finalURL)
	if recipe == nil {
		return nil, 0, fmt.Errorf("%s: %w", pageURL, ErrNoRecipeMarkup)
	}

	confidence := PartialConfidence
	if recipe.Complete() {
		confidence = FullConfidence
	}
	return recipe, confidence, nil
}

// fetch retrieves pageURL with one retry on network errors and 5xx
// responses. 4xx responses are final.
func (p *Parser) fetch(ctx context.Context, pageURL string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, &FetchError{URL: pageURL, Err: err}
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := p.client.Do(req)
		if err != nil {
			lastErr = &FetchError{URL: pageURL, Err: err}
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			lastErr = &FetchError{URL: pageURL, Status: resp.StatusCode}
			continue
		}
		if resp.StatusCode >= http.StatusBadRequest {
			resp.Body.Close()
			return nil, &FetchError{URL: pageURL, Status: resp.StatusCode}
		}
		return resp, nil
	}
	return nil, lastErr
}

// ParseDocument extracts a recipe from an already-fetched page. Returns nil
// when the document has no recipe markup.
func ParseDocument(doc *goquery.Document, sourceURL string) *Recipe {
	siteName := siteNameFromURL(sourceURL)

	recipe := parseJSONLD(doc, sourceURL, siteName)
	if recipe == nil {
		recipe = parseMicrodata(doc, sourceURL, siteName)
	}
	if recipe == nil {
		return nil
	}

	fillFromOpenGraph(doc, recipe)
	return recipe
}

func parseJSONLD(doc *goquery.Document, sourceURL, siteName string) *Recipe {
	var node map[string]any

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		node = findRecipeNode(data)
		return node == nil
	})

	if node == nil {
		return nil
	}
	return recipeFromNode(node, sourceURL, siteName)
}

// parseMicrodata handles the older itemprop/itemtype encoding still used by
// some recipe sites.
func parseMicrodata(doc *goquery.Document, sourceURL, siteName string) *Recipe {
	scope := doc.Find(`[itemtype*="schema.org/Recipe"]`).First()
	if scope.Length() == 0 {
		return nil
	}

	recipe := &Recipe{
		SourceURL: sourceURL,
		SiteName:  siteName,
	}

	recipe.Title = strings.TrimSpace(scope.Find(`[itemprop="name"]`).First().Text())
	if recipe.Title == "" {
		recipe.Title = "Untitled Recipe"
	}
	recipe.Description = itempropValue(scope, "description")

	scope.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			recipe.Ingredients = append(recipe.Ingredients, ParseIngredient(text))
		}
	})

	steps := scope.Find(`[itemprop="recipeInstructions"]`)
	if steps.Length() == 1 {
		recipe.Instructions = splitInstructionText(steps.Text())
	} else {
		steps.Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				recipe.Instructions = append(recipe.Instructions, text)
			}
		})
	}

	recipe.PrepTimeMins = ParseDuration(itempropContent(scope, "prepTime"))
	recipe.CookTimeMins = ParseDuration(itempropContent(scope, "cookTime"))
	recipe.TotalTimeMins = ParseDuration(itempropContent(scope, "totalTime"))
	recipe.Servings = itempropValue(scope, "recipeYield")

	if img := scope.Find(`[itemprop="image"]`).First(); img.Length() > 0 {
		recipe.ImageURL = img.AttrOr("src", img.AttrOr("content", ""))
	}
	if author := scope.Find(`[itemprop="author"]`).First(); author.Length() > 0 {
		name := strings.TrimSpace(author.Find(`[itemprop="name"]`).First().Text())
		if name == "" {
			name = strings.TrimSpace(author.Text())
		}
		recipe.Author = name
	}

	return recipe
}

// itempropContent prefers the machine-readable content/datetime attribute
// over element text, as microdata durations are usually encoded there.
func itempropContent(scope *goquery.Selection, prop string) string {
	sel := scope.Find(fmt.Sprintf(`[itemprop=%q]`, prop)).First()
	if sel.Length() == 0 {
		return ""
	}
	if v := sel.AttrOr("content", ""); v != "" {
		return v
	}
	if v := sel.AttrOr("datetime", ""); v != "" {
		return v
	}
	return strings.TrimSpace(sel.Text())
}

func itempropValue(scope *goquery.Selection, prop string) string {
	sel := scope.Find(fmt.Sprintf(`[itemprop=%q]`, prop)).First()
	if sel.Length() == 0 {
		return ""
	}
	if v := sel.AttrOr("content", ""); v != "" {
		return v
	}
	return strings.TrimSpace(sel.Text())
}

// fillFromOpenGraph backfills image and description from og: meta tags when
// the structured data left them empty.
func fillFromOpenGraph(doc *goquery.Document, recipe *Recipe) {
	if recipe.ImageURL == "" {
		recipe.ImageURL = metaProperty(doc, "og:image")
	}
	if recipe.Description == "" {
		recipe.Description = metaProperty(doc, "og:description")
	}
}

func metaProperty(doc *goquery.Document, property string) string {
	return doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First().AttrOr("content", "")
}

func siteNameFromURL(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
