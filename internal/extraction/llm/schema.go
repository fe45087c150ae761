package llm

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// extractionSchemaJSON rejects responses whose shape is unusable (wrong
// top-level type, non-array ingredients) and tolerates the type drift real
// models produce, like numeric servings or stringified minutes. The
// converter normalizes those.
const extractionSchemaJSON = `{
  "type": "object",
  "required": ["title", "ingredients", "instructions"],
  "properties": {
    "title": {"type": "string"},
    "description": {"type": ["string", "null"]},
    "ingredients": {
      "type": "array",
      "items": {
        "anyOf": [
          {"type": "string"},
          {
            "type": "object",
            "properties": {
              "raw_text": {"type": ["string", "null"]},
              "name": {"type": ["string", "null"]},
              "quantity": {"type": ["string", "number", "null"]},
              "unit": {"type": ["string", "null"]},
              "preparation": {"type": ["string", "null"]}
            }
          }
        ]
      }
    },
    "instructions": {
      "anyOf": [
        {"type": "string"},
        {"type": "array", "items": {"type": "string"}}
      ]
    },
    "prep_time_mins": {"type": ["number", "string", "null"]},
    "cook_time_mins": {"type": ["number", "string", "null"]},
    "total_time_mins": {"type": ["number", "string", "null"]},
    "servings": {"type": ["string", "number", "null"]},
    "difficulty": {"type": ["string", "null"]},
    "categories": {
      "type": "object",
      "additionalProperties": {"type": "array", "items": {"type": "string"}}
    },
    "tags": {
      "anyOf": [
        {"type": "string"},
        {"type": "array", "items": {"type": "string"}}
      ]
    }
  }
}`

var extractionSchema = jsonschema.MustCompileString("extraction.json", extractionSchemaJSON)

func validatePayload(data map[string]any) error {
	if err := extractionSchema.Validate(data); err != nil {
		return fmt.Errorf("response does not match schema: %w", err)
	}
	return nil
}
