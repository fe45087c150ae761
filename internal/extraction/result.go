package extraction

import (
	"github.com/recipe-saver/backend/internal/extraction/schemaorg"
)

// Method identifies how a recipe was obtained.
type Method string

const (
	MethodSchemaOrg    Method = "schema_org"
	MethodYouTubeLLM   Method = "youtube_llm"
	MethodInstagramLLM Method = "instagram_llm"
	MethodManual       Method = "manual"
	MethodFailed       Method = "failed"
)

// Platform identifies where a recipe came from.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformDirectURL Platform = "direct_url"
	PlatformManual    Platform = "manual"
)

// Result is the complete outcome of an extraction attempt. Failures are
// results too: Success is false and Error holds a user-facing message, with
// whatever source info was gathered before the attempt stalled.
type Result struct {
	Success bool
	Method  Method
	Recipe  *schemaorg.Recipe

	Platform        Platform
	VideoURL        string
	RecipePageURL   string
	RecipeSiteName  string
	ThumbnailURL    string
	OriginalCaption string
	AuthorName      string

	Categories map[string][]string
	Tags       []string

	Confidence float64
	RawData    string
	Error      string

	// Every candidate recipe URL noticed along the way, kept for display
	// even when none of them parsed.
	FoundRecipeURLs []string
}
