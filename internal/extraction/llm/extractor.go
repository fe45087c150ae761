package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/recipe-saver/backend/internal/extraction/schemaorg"
	"github.com/recipe-saver/backend/internal/extraction/taxonomy"
)

// ErrInsufficientContent means the video text is too short to plausibly
// contain a recipe, so no API call was made.
var ErrInsufficientContent = errors.New("not enough content to extract a recipe")

// ErrExtractionFailed means the model never produced a valid recipe
// document, even after the corrective retry.
var ErrExtractionFailed = errors.New("unusable response after retry")

const defaultMinContent = 50

// Input is the text gathered for a video.
type Input struct {
	Title       string
	Description string
	Transcript  string
	SourceURL   string
}

// Extraction is a recipe recovered from unstructured text, along with the
// model's category and tag suggestions.
type Extraction struct {
	Recipe      *schemaorg.Recipe
	Categories  map[string][]string
	Tags        []string
	RawResponse string
	Confidence  float64
}

// ChatClient is the completion surface the extractor needs.
type ChatClient interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Extractor turns video text into structured recipes.
type Extractor struct {
	client     ChatClient
	minContent int
}

// NewExtractor builds an Extractor. minContent <= 0 uses the 50 character
// default.
func NewExtractor(client ChatClient, minContent int) *Extractor {
	if minContent <= 0 {
		minContent = defaultMinContent
	}
	return &Extractor{client: client, minContent: minContent}
}

// Extract prompts the model with the video text and converts its JSON reply
// into a recipe. A reply that fails to parse or validate gets one corrective
// retry before the extraction is abandoned.
func (e *Extractor) Extract(ctx context.Context, input Input) (*Extraction, error) {
	content := strings.TrimSpace(input.Description) + strings.TrimSpace(input.Transcript)
	if len(content) < e.minContent {
		return nil, fmt.Errorf("%d characters of text: %w", len(content), ErrInsufficientContent)
	}

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildPrompt(input.Title, input.Description, input.Transcript)},
	}

	raw, err := e.client.Chat(ctx, messages)
	if err != nil {
		return nil, err
	}

	data, err := decodePayload(raw)
	if err != nil {
		retryMessages := append(messages,
			Message{Role: "assistant", Content: raw},
			Message{Role: "user", Content: correctivePrompt},
		)
		raw, err = e.client.Chat(ctx, retryMessages)
		if err != nil {
			return nil, err
		}
		if data, err = decodePayload(raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
	}

	recipe := recipeFromPayload(data, input.SourceURL)

	return &Extraction{
		Recipe:      recipe,
		Categories:  taxonomy.Validate(categoriesFromPayload(data)),
		Tags:        tagsFromPayload(data),
		RawResponse: raw,
		Confidence:  Confidence(recipe),
	}, nil
}

func decodePayload(raw string) (map[string]any, error) {
	data, ok := parseResponse(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object in response")
	}
	if err := validatePayload(data); err != nil {
		return nil, err
	}
	return data, nil
}

// recipeFromPayload converts the model's JSON into the same recipe shape the
// schema.org parser produces, so downstream handling is identical.
func recipeFromPayload(data map[string]any, sourceURL string) *schemaorg.Recipe {
	recipe := &schemaorg.Recipe{
		Title:     "Untitled Recipe",
		SourceURL: sourceURL,
	}

	if title := stringValue(data["title"]); title != "" {
		recipe.Title = title
	}
	recipe.Description = stringValue(data["description"])
	recipe.Difficulty = strings.ToLower(stringValue(data["difficulty"]))
	recipe.Servings = stringValue(data["servings"])

	recipe.PrepTimeMins = minutesValue(data["prep_time_mins"])
	recipe.CookTimeMins = minutesValue(data["cook_time_mins"])
	recipe.TotalTimeMins = minutesValue(data["total_time_mins"])

	if items, ok := data["ingredients"].([]any); ok {
		for _, item := range items {
			switch ing := item.(type) {
			case map[string]any:
				recipe.Ingredients = append(recipe.Ingredients, schemaorg.Ingredient{
					RawText:     stringValue(ing["raw_text"]),
					Name:        stringValue(ing["name"]),
					Quantity:    stringValue(ing["quantity"]),
					Unit:        stringValue(ing["unit"]),
					Preparation: stringValue(ing["preparation"]),
				})
			case string:
				if strings.TrimSpace(ing) != "" {
					recipe.Ingredients = append(recipe.Ingredients, schemaorg.ParseIngredient(ing))
				}
			}
		}
	}

	switch instructions := data["instructions"].(type) {
	case []any:
		for _, step := range instructions {
			if s, ok := step.(string); ok && strings.TrimSpace(s) != "" {
				recipe.Instructions = append(recipe.Instructions, s)
			}
		}
	case string:
		for _, line := range strings.Split(instructions, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				recipe.Instructions = append(recipe.Instructions, line)
			}
		}
	}

	return recipe
}

func categoriesFromPayload(data map[string]any) map[string][]string {
	raw, ok := data["categories"].(map[string]any)
	if !ok {
		return nil
	}

	categories := make(map[string][]string)
	for catType, values := range raw {
		list, ok := values.([]any)
		if !ok {
			continue
		}
		for _, v := range list {
			if s, ok := v.(string); ok {
				categories[catType] = append(categories[catType], s)
			}
		}
	}
	return categories
}

func tagsFromPayload(data map[string]any) []string {
	switch tags := data["tags"].(type) {
	case []any:
		var out []string
		for _, t := range tags {
			if s, ok := t.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if tags != "" {
			return []string{tags}
		}
	}
	return nil
}

// stringValue renders a JSON scalar as a string. Whole numbers drop the
// decimal point, so a servings value of 4 becomes "4".
func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

// minutesValue reads a duration that may arrive as a number or a numeric
// string. Zero and negative values are treated as absent.
func minutesValue(v any) *int {
	var mins int
	switch n := v.(type) {
	case float64:
		mins = int(math.Round(n))
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil
		}
		mins = parsed
	default:
		return nil
	}
	if mins <= 0 {
		return nil
	}
	return &mins
}
