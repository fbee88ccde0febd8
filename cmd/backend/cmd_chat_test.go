package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aipkg "github.com/adopour/backend/internal/ai"
	assistantpkg "github.com/adopour/backend/internal/services/assistant"
	"github.com/adopour/backend/internal/stream"
)

func TestChatClientKeepsConversation(t *testing.T) {
	var received [][]aipkg.Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body struct {
			Messages []aipkg.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received = append(received, body.Messages)

		encoder := stream.NewEncoder(w)
		_ = encoder.WriteText("Hi ")
		_ = encoder.WriteText("there")
		_ = encoder.WriteFinish(stream.FinishReasonStop)
	}))
	defer server.Close()

	client := &chatClient{http: server.Client(), baseURL: server.URL, token: "secret"}
	var out bytes.Buffer
	require.NoError(t, client.Run(context.Background(), strings.NewReader("hello\n\nagain\n"), &out))

	assert.Contains(t, out.String(), "Hi there")
	require.Len(t, received, 2)
	assert.Len(t, received[0], 1)
	require.Len(t, received[1], 3)
	assert.Equal(t, aipkg.RoleAssistant, received[1][1].Role)
	assert.Equal(t, "Hi there", received[1][1].Content)
	assert.Equal(t, "again", received[1][2].Content)
}

func TestChatClientStaysWithinMessageLimits(t *testing.T) {
	var sizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []aipkg.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		sizes = append(sizes, len(body.Messages))

		require.NotEmpty(t, body.Messages)
		assert.Equal(t, aipkg.RoleUser, body.Messages[0].Role)
		assert.LessOrEqual(t, len(body.Messages), assistantpkg.ChatMaxMessages)
		for _, message := range body.Messages {
			assert.LessOrEqual(t, len([]rune(message.Content)), assistantpkg.ChatMaxContentLength)
		}

		encoder := stream.NewEncoder(w)
		_ = encoder.WriteText(strings.Repeat("é", assistantpkg.ChatMaxContentLength+100))
		_ = encoder.WriteFinish(stream.FinishReasonStop)
	}))
	defer server.Close()

	client := &chatClient{http: server.Client(), baseURL: server.URL}
	input := strings.Repeat("tell me more\n", 30)
	var out bytes.Buffer
	require.NoError(t, client.Run(context.Background(), strings.NewReader(input), &out))

	require.Len(t, sizes, 30)
	assert.Equal(t, 1, sizes[0])
	assert.Equal(t, 49, sizes[29])
	assert.NotContains(t, out.String(), "error:")
}

func TestChatClientReportsErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"missing or invalid token"}`))
	}))
	defer server.Close()

	client := &chatClient{http: server.Client(), baseURL: server.URL}
	var out bytes.Buffer
	require.NoError(t, client.Run(context.Background(), strings.NewReader("hello\n"), &out))

	assert.Contains(t, out.String(), "error: missing or invalid token")
	assert.Empty(t, client.messages)
}
