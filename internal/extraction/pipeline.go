// Package extraction turns a shared video or page URL into a structured
// recipe. The pipeline works through sources in order of reliability: recipe
// links in the video description, links announced by "recipe here:" phrases,
// links in the creator's own comments, a web search across recipe sites, and
// finally LLM extraction from the transcript. The first source that yields a
// parseable recipe with ingredients wins, and each source carries a
// confidence ceiling reflecting how direct the evidence was.
package extraction

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/recipe-saver/backend/internal/extraction/llm"
	"github.com/recipe-saver/backend/internal/extraction/schemaorg"
	"github.com/recipe-saver/backend/internal/extraction/search"
	"github.com/recipe-saver/backend/internal/extraction/sites"
	"github.com/recipe-saver/backend/internal/extraction/taxonomy"
	"github.com/recipe-saver/backend/internal/extraction/urlutil"
	"github.com/recipe-saver/backend/internal/extraction/youtube"
)

// Confidence ceilings per source, most direct first.
const (
	confidenceDescriptionURL = 0.95
	confidencePatternURL     = 0.90
	confidenceAuthorComment  = 0.85
	confidenceSearchStrong   = 0.80
	confidenceSearchWeak     = 0.70
	confidenceDirectURL      = 0.95
	confidenceInstagram      = 0.90

	searchMinSimilarity    = 0.4
	searchMaxResults       = 5
	searchStrongSimilarity = 0.7

	// LLM extractions below this completeness are discarded.
	minLLMConfidence = 0.3
)

// VideoSource fetches everything knowable about a video.
type VideoSource interface {
	FetchContent(ctx context.Context, videoURL string) (*youtube.Content, error)
}

// PageParser fetches a web page and reads its recipe markup, reporting how
// complete the parse was.
type PageParser interface {
	Parse(ctx context.Context, pageURL string) (*schemaorg.Recipe, float64, error)
}

// LinkResolver expands shortened URLs and keeps the ones that look like
// recipe pages.
type LinkResolver interface {
	ExpandAndFilter(ctx context.Context, urls []string) []string
}

// RecipeSearcher finds published recipes matching a title and author.
type RecipeSearcher interface {
	Search(ctx context.Context, title, author string, minSimilarity float64, maxResults int) ([]search.Result, error)
}

// TranscriptExtractor recovers a recipe from unstructured video text.
type TranscriptExtractor interface {
	Extract(ctx context.Context, input llm.Input) (*llm.Extraction, error)
}

// Pipeline routes a URL to the extractor for its platform and runs the
// fallback chain.
type Pipeline struct {
	videos      VideoSource
	pages       PageParser
	links       LinkResolver
	searcher    RecipeSearcher
	transcripts TranscriptExtractor
}

// NewPipeline wires the extraction stages together. searcher and
// transcripts may be nil, which disables those fallbacks.
func NewPipeline(videos VideoSource, pages PageParser, links LinkResolver, searcher RecipeSearcher, transcripts TranscriptExtractor) *Pipeline {
	return &Pipeline{
		videos:      videos,
		pages:       pages,
		links:       links,
		searcher:    searcher,
		transcripts: transcripts,
	}
}

// NewDefaultPipeline assembles the production pipeline: one shared 15s HTTP
// client for page and metadata fetches, web search enabled, and the
// chat-completions transcript extractor when credentials are configured.
func NewDefaultPipeline(maxTranscript, minContent int) *Pipeline {
	httpClient := &http.Client{Timeout: 15 * time.Second}

	var transcripts TranscriptExtractor
	if client, err := llm.NewClient(); err != nil {
		log.Printf("[Pipeline] transcript extraction disabled: %v", err)
	} else {
		transcripts = llm.NewExtractor(client, minContent)
	}

	return NewPipeline(
		youtube.NewClient(httpClient, maxTranscript),
		schemaorg.NewParser(httpClient),
		sites.NewResolver(httpClient),
		search.NewSearcher(httpClient),
		transcripts,
	)
}

// Extract is the main entry point. The URL is preprocessed to survive the
// mess of mobile sharing (share intent text, tracking parameters, mobile
// hosts) before being routed by platform. manualCaption and manualRecipeURL
// assist Instagram extraction, which cannot be scraped.
func (p *Pipeline) Extract(ctx context.Context, rawURL, manualCaption, manualRecipeURL string) *Result {
	url := urlutil.Preprocess(rawURL)
	if manualRecipeURL != "" {
		manualRecipeURL = urlutil.Preprocess(manualRecipeURL)
	}

	var result *Result
	switch DetectPlatform(url) {
	case PlatformYouTube:
		result = p.extractYouTube(ctx, url)
	case PlatformInstagram:
		result = p.extractInstagram(ctx, url, manualCaption, manualRecipeURL)
	default:
		result = p.extractDirect(ctx, url)
	}

	p.normalize(result)
	return result
}

func (p *Pipeline) extractYouTube(ctx context.Context, url string) *Result {
	content, err := p.videos.FetchContent(ctx, url)
	if err != nil {
		log.Printf("[Extraction] youtube fetch failed for %s: %v", url, err)
		return &Result{
			Success:  false,
			Method:   MethodFailed,
			Platform: PlatformYouTube,
			VideoURL: url,
			Error:    "Could not fetch YouTube video metadata",
		}
	}

	hashtags := sites.Hashtags(content.Metadata.Description)
	allFound := dedupeStrings(append(append([]string{}, content.ExtractedURLs...), content.PatternURLs...))

	// Description and pinned comment URLs are the most direct evidence.
	for _, recipeURL := range p.links.ExpandAndFilter(ctx, content.ExtractedURLs) {
		if result := p.tryYouTubeSchema(ctx, recipeURL, confidenceDescriptionURL, content, url, hashtags, allFound); result != nil {
			return result
		}
	}

	// URLs announced by phrases like "full recipe:".
	if len(content.PatternURLs) > 0 {
		for _, recipeURL := range p.links.ExpandAndFilter(ctx, content.PatternURLs) {
			if result := p.tryYouTubeSchema(ctx, recipeURL, confidencePatternURL, content, url, hashtags, allFound); result != nil {
				return result
			}
		}
	}

	// Creators often drop the link in their own comment instead.
	for _, comment := range content.AuthorComments {
		commentURLs := append(sites.ExtractURLs(comment), sites.PatternLinks(comment)...)
		for _, recipeURL := range p.links.ExpandAndFilter(ctx, commentURLs) {
			if result := p.tryYouTubeSchema(ctx, recipeURL, confidenceAuthorComment, content, url, hashtags, allFound); result != nil {
				return result
			}
		}
	}

	// Web search by title and author, mainly for Shorts with bare
	// descriptions. Optional: a search failure never fails the extraction.
	if p.searcher != nil {
		results, err := p.searcher.Search(ctx, content.Metadata.Title, content.Metadata.ChannelName, searchMinSimilarity, searchMaxResults)
		if err != nil {
			log.Printf("[Extraction] web search failed: %v", err)
		}
		for _, sr := range results {
			confidence := confidenceSearchWeak
			if sr.Similarity > searchStrongSimilarity {
				confidence = confidenceSearchStrong
			}
			if result := p.tryYouTubeSchema(ctx, sr.URL, confidence, content, url, hashtags, allFound); result != nil {
				return result
			}
		}
	}

	// Last resort: have the model read the transcript.
	if p.transcripts != nil && (content.Transcript != "" || content.Metadata.Description != "") {
		ext, err := p.transcripts.Extract(ctx, llm.Input{
			Title:       content.Metadata.Title,
			Description: content.Metadata.Description,
			Transcript:  content.Transcript,
			SourceURL:   url,
		})
		if err != nil {
			log.Printf("[Extraction] llm extraction failed: %v", err)
		} else if ext.Recipe != nil && ext.Confidence > minLLMConfidence {
			return &Result{
				Success:         true,
				Method:          MethodYouTubeLLM,
				Recipe:          ext.Recipe,
				Platform:        PlatformYouTube,
				VideoURL:        url,
				ThumbnailURL:    content.Metadata.ThumbnailURL,
				OriginalCaption: content.Metadata.Description,
				AuthorName:      content.Metadata.ChannelName,
				Categories:      ext.Categories,
				Tags:            dedupeStrings(append(append([]string{}, hashtags...), ext.Tags...)),
				Confidence:      ext.Confidence,
				RawData:         ext.RawResponse,
				FoundRecipeURLs: allFound,
			}
		}
	}

	errorMsg := "Could not extract recipe - no recipe link found and transcript parsing failed"
	if content.HasLinkInBio {
		errorMsg += " (Note: creator mentioned recipe is in their bio/profile)"
	}

	return &Result{
		Success:         false,
		Method:          MethodFailed,
		Platform:        PlatformYouTube,
		VideoURL:        url,
		ThumbnailURL:    content.Metadata.ThumbnailURL,
		OriginalCaption: content.Metadata.Description,
		AuthorName:      content.Metadata.ChannelName,
		Tags:            hashtags,
		Error:           errorMsg,
		FoundRecipeURLs: allFound,
	}
}

func (p *Pipeline) extractInstagram(ctx context.Context, url, caption, manualRecipeURL string) *Result {
	// A user-supplied recipe URL beats everything else.
	if manualRecipeURL != "" {
		if parsed, confidence, ok := p.trySchema(ctx, manualRecipeURL, confidenceInstagram); ok {
			return &Result{
				Success:         true,
				Method:          MethodSchemaOrg,
				Recipe:          parsed,
				Platform:        PlatformInstagram,
				VideoURL:        url,
				RecipePageURL:   manualRecipeURL,
				RecipeSiteName:  parsed.SiteName,
				OriginalCaption: caption,
				AuthorName:      parsed.Author,
				Tags:            sites.Hashtags(caption),
				Confidence:      confidence,
			}
		}
	}

	if caption != "" {
		hashtags := sites.Hashtags(caption)
		recipeURLs := sites.Filter(sites.ExtractURLs(caption))

		for _, recipeURL := range recipeURLs {
			parsed, confidence, ok := p.trySchema(ctx, recipeURL, confidenceInstagram)
			if !ok {
				continue
			}
			return &Result{
				Success:         true,
				Method:          MethodSchemaOrg,
				Recipe:          parsed,
				Platform:        PlatformInstagram,
				VideoURL:        url,
				RecipePageURL:   recipeURL,
				RecipeSiteName:  parsed.SiteName,
				OriginalCaption: caption,
				AuthorName:      parsed.Author,
				Tags:            hashtags,
				Confidence:      confidence,
				FoundRecipeURLs: recipeURLs,
			}
		}

		if p.transcripts != nil {
			ext, err := p.transcripts.Extract(ctx, llm.Input{
				Title:       "Instagram Recipe",
				Description: caption,
				SourceURL:   url,
			})
			if err != nil {
				log.Printf("[Extraction] llm extraction failed: %v", err)
			} else if ext.Recipe != nil && ext.Confidence > minLLMConfidence {
				return &Result{
					Success:         true,
					Method:          MethodInstagramLLM,
					Recipe:          ext.Recipe,
					Platform:        PlatformInstagram,
					VideoURL:        url,
					OriginalCaption: caption,
					Categories:      ext.Categories,
					Tags:            dedupeStrings(append(append([]string{}, hashtags...), ext.Tags...)),
					Confidence:      ext.Confidence,
					RawData:         ext.RawResponse,
					FoundRecipeURLs: recipeURLs,
				}
			}
		}
	}

	return &Result{
		Success:  false,
		Method:   MethodFailed,
		Platform: PlatformInstagram,
		VideoURL: url,
		Error:    "Instagram requires manual caption or recipe URL",
	}
}

func (p *Pipeline) extractDirect(ctx context.Context, url string) *Result {
	if parsed, confidence, ok := p.trySchema(ctx, url, confidenceDirectURL); ok {
		return &Result{
			Success:        true,
			Method:         MethodSchemaOrg,
			Recipe:         parsed,
			Platform:       PlatformDirectURL,
			RecipePageURL:  url,
			RecipeSiteName: parsed.SiteName,
			AuthorName:     parsed.Author,
			Confidence:     confidence,
		}
	}

	return &Result{
		Success:       false,
		Method:        MethodFailed,
		Platform:      PlatformDirectURL,
		RecipePageURL: url,
		Error:         "Could not extract recipe from URL - no schema.org/Recipe found",
	}
}

// trySchema parses a candidate page. Only recipes with ingredients count;
// the returned confidence is the source ceiling capped by how complete the
// parse itself was.
func (p *Pipeline) trySchema(ctx context.Context, recipeURL string, ceiling float64) (*schemaorg.Recipe, float64, bool) {
	parsed, parseConfidence, err := p.pages.Parse(ctx, recipeURL)
	if err != nil {
		log.Printf("[Extraction] parse %s: %v", recipeURL, err)
		return nil, 0, false
	}
	if parsed == nil || len(parsed.Ingredients) == 0 {
		return nil, 0, false
	}

	confidence := ceiling
	if parseConfidence < confidence {
		confidence = parseConfidence
	}
	return parsed, confidence, true
}

func (p *Pipeline) tryYouTubeSchema(ctx context.Context, recipeURL string, ceiling float64, content *youtube.Content, videoURL string, hashtags, allFound []string) *Result {
	parsed, confidence, ok := p.trySchema(ctx, recipeURL, ceiling)
	if !ok {
		return nil
	}

	author := parsed.Author
	if author == "" {
		author = content.Metadata.ChannelName
	}

	return &Result{
		Success:         true,
		Method:          MethodSchemaOrg,
		Recipe:          parsed,
		Platform:        PlatformYouTube,
		VideoURL:        videoURL,
		RecipePageURL:   recipeURL,
		RecipeSiteName:  parsed.SiteName,
		ThumbnailURL:    content.Metadata.ThumbnailURL,
		OriginalCaption: content.Metadata.Description,
		AuthorName:      author,
		Tags:            hashtags,
		Confidence:      confidence,
		FoundRecipeURLs: allFound,
	}
}

// normalize enriches a successful result with categories inferred from the
// recipe text and a time bucket, merged with whatever the model suggested.
func (p *Pipeline) normalize(result *Result) {
	if !result.Success || result.Recipe == nil {
		return
	}
	recipe := result.Recipe

	names := make([]string, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		names = append(names, ing.Name)
	}

	result.Categories = taxonomy.Merge(result.Categories, taxonomy.Categorize(recipe.Title, recipe.Description, names))

	total := 0
	if recipe.TotalTimeMins != nil {
		total = *recipe.TotalTimeMins
	} else if recipe.PrepTimeMins != nil && recipe.CookTimeMins != nil {
		total = *recipe.PrepTimeMins + *recipe.CookTimeMins
	}
	if bucket := taxonomy.TimeBucket(total); bucket != "" {
		result.Categories = taxonomy.Merge(result.Categories, map[string][]string{"time": {bucket}})
	}
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
