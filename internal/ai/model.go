// Package ai adapts generative language models to the assistant features.
package ai

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single model call. When ResponseSchema is set the model must
// answer with a JSON document matching it.
type Request struct {
	SystemInstruction string
	Messages          []Message
	ResponseSchema    *genai.Schema
}

type Model interface {
	Generate(ctx context.Context, request Request) (string, error)
	Stream(ctx context.Context, request Request) iter.Seq2[string, error]
}
