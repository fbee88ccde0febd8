package ai

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

var ErrEmptyResponse = errors.New("model returned an empty response")

// GeminiModel talks to the Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  string
}

var _ Model = (*GeminiModel)(nil)

func NewGeminiModel(ctx context.Context, apiKey string, model string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiModel{
		client: client,
		model:  model,
	}, nil
}

func (m *GeminiModel) Generate(ctx context.Context, request Request) (string, error) {
	response, err := m.client.Models.GenerateContent(
		ctx,
		m.model,
		buildContents(request.Messages),
		buildConfig(request),
	)
	if err != nil {
		return "", fmt.Errorf("genai generate failed: %w", err)
	}

	text := response.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (m *GeminiModel) Stream(ctx context.Context, request Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		responses := m.client.Models.GenerateContentStream(
			ctx,
			m.model,
			buildContents(request.Messages),
			buildConfig(request),
		)
		for response, err := range responses {
			if err != nil {
				yield("", fmt.Errorf("genai stream failed: %w", err))
				return
			}

			text := response.Text()
			if text == "" {
				continue
			}
			if !yield(text, nil) {
				return
			}
		}
	}
}

func buildContents(messages []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, message := range messages {
		role := genai.Role(genai.RoleUser)
		if message.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(message.Content, role))
	}
	return contents
}

func buildConfig(request Request) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if request.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(request.SystemInstruction, genai.RoleUser)
	}
	if request.ResponseSchema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = request.ResponseSchema
	}
	return config
}
