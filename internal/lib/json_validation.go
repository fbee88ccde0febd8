package lib

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/qri-io/jsonschema"
)

// ValidateJSON validates a JSON raw message against a given JSON schema.
// It returns a list of validation errors if the JSON is invalid.
func ValidateJSON(content json.RawMessage, schemaString string) ([]jsonschema.KeyError, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(schemaString), rs); err != nil {
		return nil, err
	}

	return rs.ValidateBytes(context.Background(), content)
}

// FormatKeyErrors joins validation errors into a single readable line.
func FormatKeyErrors(keyErrors []jsonschema.KeyError) string {
	messages := make([]string, 0, len(keyErrors))
	for _, keyError := range keyErrors {
		messages = append(messages, keyError.PropertyPath+": "+keyError.Message)
	}
	return strings.Join(messages, "; ")
}

// PostAnalysisSchema describes the object returned by the post analyzer.
const PostAnalysisSchema = `{
	"type": "object",
	"properties": {
		"sentiment": {"type": "string", "enum": ["positive", "negative", "neutral", "mixed"]},
		"sentimentScore": {"type": "number", "minimum": 0, "maximum": 1},
		"tags": {"type": "array", "items": {"type": "string"}},
		"summary": {"type": "string"},
		"keyPoints": {"type": "array", "items": {"type": "string"}},
		"moderationFlags": {"type": "array", "items": {"type": "string"}},
		"isSafe": {"type": "boolean"},
		"suggestions": {"type": "array", "items": {"type": "string"}}
	},
	"required": [
		"sentiment",
		"sentimentScore",
		"tags",
		"summary",
		"keyPoints",
		"moderationFlags",
		"isSafe",
		"suggestions"
	]
}`
