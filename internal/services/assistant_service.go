package services

import (
	"context"
	"iter"

	aipkg "github.com/adopour/backend/internal/ai"
)

// ChatErrorMessage is sent to clients in place of upstream model failures.
const ChatErrorMessage = "Sorry, I encountered an error. Please try again."

type AssistantService interface {
	// Chat validates the conversation and returns the reply as text deltas.
	Chat(ctx context.Context, messages []aipkg.Message) (iter.Seq2[string, error], error)
	AnalyzePost(ctx context.Context, content string) (*aipkg.PostAnalysis, error)
	GetPostAnalysis(ctx context.Context, postID string) (*aipkg.PostAnalysis, error)
	ModeratePost(ctx context.Context, postID string) (*aipkg.PostAnalysis, error)
}
