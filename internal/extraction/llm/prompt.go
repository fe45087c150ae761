package llm

import (
	"fmt"
	"strings"

	"github.com/recipe-saver/backend/internal/extraction/taxonomy"
)

const systemPrompt = "You are a recipe extraction assistant. Extract structured recipe data from video transcripts and descriptions. Always respond with valid JSON only."

const correctivePrompt = "The previous response was not valid JSON matching the requested schema. Return ONLY the JSON object, with no markdown fences and no commentary."

const extractionPrompt = `Extract a structured recipe from the following content. The content may be a video transcript, description, or caption.

Return ONLY valid JSON matching this exact schema (no markdown, no explanation):

{
  "title": "string - recipe name",
  "description": "string - 1-2 sentence description, or null",
  "ingredients": [
    {
      "raw_text": "original text",
      "name": "ingredient name",
      "quantity": "amount or null",
      "unit": "unit or null",
      "preparation": "prep notes or null"
    }
  ],
  "instructions": ["Step 1...", "Step 2..."],
  "prep_time_mins": "number or null",
  "cook_time_mins": "number or null",
  "total_time_mins": "number or null",
  "servings": "string or null",
  "difficulty": "easy|medium|hard",
  "categories": {
    "dietary": ["vegetarian", ...],
    "protein": ["chicken", ...],
    "course": ["dinner", ...],
    "cuisine": ["italian", ...],
    "method": ["baking", ...],
    "season": ["summer", ...],
    "time": ["30-60m", ...]
  },
  "tags": ["#hashtag1", "keyword2", ...]
}

ALLOWED CATEGORY VALUES:
- dietary: %s
- protein: %s
- course: %s
- cuisine: %s
- method: %s
- season: %s
- difficulty: %s
- time: %s

RULES:
1. If ingredients aren't explicitly listed, infer from context
2. If instructions aren't step-by-step, create logical steps from the content
3. If info is missing, use null (don't guess times or servings)
4. Extract any #hashtags as tags
5. Only use categories from the allowed values above
6. For "time" category, estimate based on prep+cook time

---
CONTENT TO PARSE:

Video/Post Title: %s

Description/Caption:
%s

Transcript/Additional Text:
%s
---

Return ONLY the JSON object:`

// buildPrompt fills the extraction prompt with the allowed taxonomy values
// and the video's text.
func buildPrompt(title, description, transcript string) string {
	if title == "" {
		title = "Unknown"
	}
	if description == "" {
		description = "(none)"
	}
	if transcript == "" {
		transcript = "(none)"
	}

	return fmt.Sprintf(extractionPrompt,
		allowedValues("dietary"),
		allowedValues("protein"),
		allowedValues("course"),
		allowedValues("cuisine"),
		allowedValues("method"),
		allowedValues("season"),
		allowedValues("difficulty"),
		allowedValues("time"),
		title,
		description,
		transcript,
	)
}

func allowedValues(categoryType string) string {
	return strings.Join(taxonomy.Values[categoryType], ", ")
}
