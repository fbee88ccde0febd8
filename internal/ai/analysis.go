package ai

import "google.golang.org/genai"

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentMixed    = "mixed"
)

type PostAnalysis struct {
	Sentiment       string   `json:"sentiment"`
	SentimentScore  float64  `json:"sentimentScore"`
	Tags            []string `json:"tags"`
	Summary         string   `json:"summary"`
	KeyPoints       []string `json:"keyPoints"`
	ModerationFlags []string `json:"moderationFlags"`
	IsSafe          bool     `json:"isSafe"`
	Suggestions     []string `json:"suggestions"`
}

// Normalize clamps the score and trims list fields to their advertised sizes.
func (a *PostAnalysis) Normalize() {
	if a.SentimentScore < 0 {
		a.SentimentScore = 0
	}
	if a.SentimentScore > 1 {
		a.SentimentScore = 1
	}
	a.Tags = truncate(a.Tags, 5)
	a.KeyPoints = truncate(a.KeyPoints, 4)
	a.Suggestions = truncate(a.Suggestions, 3)
	if a.ModerationFlags == nil {
		a.ModerationFlags = []string{}
	}
	if len(a.ModerationFlags) > 0 {
		a.IsSafe = false
	}
}

func truncate(values []string, max int) []string {
	if values == nil {
		return []string{}
	}
	if len(values) > max {
		return values[:max]
	}
	return values
}

func stringList(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Items:       &genai.Schema{Type: genai.TypeString},
		Description: description,
	}
}

// PostAnalysisResponseSchema is the structured output requested from the model.
var PostAnalysisResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"sentiment": {
			Type:        genai.TypeString,
			Enum:        []string{SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed},
			Description: "Overall emotional tone of the post",
		},
		"sentimentScore": {
			Type:        genai.TypeNumber,
			Description: "Confidence score for sentiment (0-1)",
		},
		"tags":    stringList("Relevant tags or categories (3-5 tags)"),
		"summary": {Type: genai.TypeString, Description: "Brief one-sentence summary of the post"},
		"keyPoints": stringList(
			"Main points or topics discussed (2-4 points)",
		),
		"moderationFlags": stringList(
			"Any content concerns: hate-speech, violence, spam, nsfw, etc. Empty if safe",
		),
		"isSafe": {
			Type:        genai.TypeBoolean,
			Description: "Whether the content is appropriate for the platform",
		},
		"suggestions": stringList("Suggestions to improve the post (2-3 suggestions)"),
	},
	Required: []string{
		"sentiment",
		"sentimentScore",
		"tags",
		"summary",
		"keyPoints",
		"moderationFlags",
		"isSafe",
		"suggestions",
	},
	PropertyOrdering: []string{
		"sentiment",
		"sentimentScore",
		"tags",
		"summary",
		"keyPoints",
		"moderationFlags",
		"isSafe",
		"suggestions",
	},
}
