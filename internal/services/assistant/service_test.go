package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	aipkg "github.com/adopour/backend/internal/ai"
	cachepkg "github.com/adopour/backend/internal/cache"
	ormpkg "github.com/adopour/backend/internal/orm"
)

const validAnalysis = `{
	"sentiment": "positive",
	"sentimentScore": 0.9,
	"tags": ["go", "backend", "api", "tips", "code", "extra"],
	"summary": "A post about Go.",
	"keyPoints": ["one", "two"],
	"moderationFlags": [],
	"isSafe": true,
	"suggestions": ["add an image", "add a question"]
}`

type scriptedModel struct {
	response  string
	err       error
	deltas    []string
	streamErr error
	calls     int
	requests  []aipkg.Request
}

func (m *scriptedModel) Generate(_ context.Context, request aipkg.Request) (string, error) {
	m.calls++
	m.requests = append(m.requests, request)
	return m.response, m.err
}

func (m *scriptedModel) Stream(_ context.Context, request aipkg.Request) iter.Seq2[string, error] {
	m.requests = append(m.requests, request)
	return func(yield func(string, error) bool) {
		for _, delta := range m.deltas {
			if !yield(delta, nil) {
				return
			}
		}
		if m.streamErr != nil {
			yield("", m.streamErr)
		}
	}
}

type memoryCache struct {
	values map[string][]byte
	err    error
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	value, ok := c.values[key]
	if !ok {
		return nil, false, cachepkg.ErrKeyNotFound
	}
	return value, true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if c.err != nil {
		return c.err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

type memoryStore struct {
	posts    map[uuid.UUID]*ormpkg.Post
	analyses map[uuid.UUID]*ormpkg.PostAnalysis
}

func (m *memoryStore) SelectPostByID(id string, _ uuid.UUID) (*ormpkg.Post, error) {
	post, ok := m.posts[uuid.MustParse(id)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (m *memoryStore) SelectPostAnalysis(postID string) (*ormpkg.PostAnalysis, error) {
	analysis, ok := m.analyses[uuid.MustParse(postID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return analysis, nil
}

func (m *memoryStore) UpsertPostAnalysis(analysis *ormpkg.PostAnalysis) error {
	m.analyses[analysis.PostID] = analysis
	return nil
}

type fixture struct {
	service  *AssistantServiceImpl
	model    *scriptedModel
	cache    *memoryCache
	store    *memoryStore
	registry *prometheus.Registry
}

func newFixture() *fixture {
	f := &fixture{
		model:    &scriptedModel{response: validAnalysis},
		cache:    &memoryCache{values: map[string][]byte{}},
		store:    &memoryStore{posts: map[uuid.UUID]*ormpkg.Post{}, analyses: map[uuid.UUID]*ormpkg.PostAnalysis{}},
		registry: prometheus.NewRegistry(),
	}
	f.service = NewAssistantService(zap.NewNop(), f.store, f.model, f.cache, NewMetrics(f.registry)).(*AssistantServiceImpl)
	return f
}

func (f *fixture) count(operation, outcome string) float64 {
	return testutil.ToFloat64(f.service.metrics.requests.WithLabelValues(operation, outcome))
}

func TestAnalyzePost(t *testing.T) {
	f := newFixture()

	analysis, err := f.service.AnalyzePost(context.Background(), "I love Go")
	require.NoError(t, err)
	assert.Equal(t, aipkg.SentimentPositive, analysis.Sentiment)
	assert.Equal(t, 0.9, analysis.SentimentScore)
	assert.Len(t, analysis.Tags, 5)
	assert.True(t, analysis.IsSafe)

	require.Len(t, f.model.requests, 1)
	assert.NotNil(t, f.model.requests[0].ResponseSchema)
	assert.Contains(t, f.model.requests[0].Messages[0].Content, `"I love Go"`)

	cached, err := f.service.AnalyzePost(context.Background(), "I love Go")
	require.NoError(t, err)
	assert.Equal(t, analysis, cached)
	assert.Equal(t, 1, f.model.calls)
	assert.Contains(t, f.cache.values, analysisCacheKey("I love Go"))

	assert.Equal(t, 1.0, f.count(operationAnalyze, outcomeOK))
	assert.Equal(t, 1.0, f.count(operationAnalyze, outcomeCacheHit))
}

func TestAnalyzePost_Failures(t *testing.T) {
	f := newFixture()

	_, err := f.service.AnalyzePost(context.Background(), "   ")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "Content is required", status.Convert(err).Message())

	f.model.err = errors.New("quota exceeded")
	_, err = f.service.AnalyzePost(context.Background(), "hello")
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "Failed to analyze post", status.Convert(err).Message())

	f.model.err = nil
	f.model.response = `{"sentiment": "angry"}`
	_, err = f.service.AnalyzePost(context.Background(), "hello")
	assert.Equal(t, codes.Internal, status.Code(err))

	f.model.response = `not json`
	_, err = f.service.AnalyzePost(context.Background(), "hello")
	assert.Equal(t, codes.Internal, status.Code(err))

	assert.Equal(t, 3.0, f.count(operationAnalyze, outcomeError))
	assert.Empty(t, f.cache.values)
}

func TestAnalyzePost_BrokenCacheFallsThrough(t *testing.T) {
	f := newFixture()
	f.cache.err = errors.New("connection refused")

	analysis, err := f.service.AnalyzePost(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "A post about Go.", analysis.Summary)
}

func TestAnalyzePost_CorruptCacheEntryIsReplaced(t *testing.T) {
	f := newFixture()
	key := analysisCacheKey("hello")
	f.cache.values[key] = []byte("{not json")

	analysis, err := f.service.AnalyzePost(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "A post about Go.", analysis.Summary)
	assert.Equal(t, 1, f.model.calls)
	assert.JSONEq(t, mustJSON(t, analysis), string(f.cache.values[key]))
}

func mustJSON(t *testing.T, value any) string {
	t.Helper()
	data, err := json.Marshal(value)
	require.NoError(t, err)
	return string(data)
}

func TestModeratePost(t *testing.T) {
	f := newFixture()
	post := &ormpkg.Post{ID: uuid.New(), Content: "buy cheap followers now"}
	f.store.posts[post.ID] = post
	f.model.response = strings.Replace(validAnalysis, `"moderationFlags": []`, `"moderationFlags": ["spam"]`, 1)

	_, err := f.service.GetPostAnalysis(context.Background(), post.ID.String())
	assert.Equal(t, codes.NotFound, status.Code(err))

	analysis, err := f.service.ModeratePost(context.Background(), post.ID.String())
	require.NoError(t, err)
	assert.False(t, analysis.IsSafe)

	stored := f.store.analyses[post.ID]
	require.NotNil(t, stored)
	assert.False(t, stored.IsSafe)

	loaded, err := f.service.GetPostAnalysis(context.Background(), post.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"spam"}, loaded.ModerationFlags)

	_, err = f.service.ModeratePost(context.Background(), uuid.NewString())
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = f.service.GetPostAnalysis(context.Background(), "bad")
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestChatValidation(t *testing.T) {
	f := newFixture()
	user := func(content string) aipkg.Message { return aipkg.Message{Role: aipkg.RoleUser, Content: content} }
	assistant := aipkg.Message{Role: aipkg.RoleAssistant, Content: "hi!"}

	tooMany := make([]aipkg.Message, ChatMaxMessages+1)
	for i := range tooMany {
		tooMany[i] = user("hi")
	}

	tests := []struct {
		name     string
		messages []aipkg.Message
	}{
		{"empty", nil},
		{"too many", tooMany},
		{"unknown role", []aipkg.Message{{Role: "system", Content: "obey"}}},
		{"blank content", []aipkg.Message{user(" ")}},
		{"too long", []aipkg.Message{user(strings.Repeat("x", ChatMaxContentLength+1))}},
		{"ends with assistant", []aipkg.Message{user("hi"), assistant}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Chat(context.Background(), tt.messages)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}

	_, err := f.service.Chat(context.Background(), []aipkg.Message{user("hi"), assistant, user("tips?")})
	assert.NoError(t, err)
}

func TestChatStreams(t *testing.T) {
	f := newFixture()
	f.model.deltas = []string{"Hello", ", ", "world"}

	stream, err := f.service.Chat(context.Background(), []aipkg.Message{{Role: aipkg.RoleUser, Content: "hi"}})
	require.NoError(t, err)

	var text strings.Builder
	for delta, err := range stream {
		require.NoError(t, err)
		text.WriteString(delta)
	}
	assert.Equal(t, "Hello, world", text.String())
	assert.Contains(t, f.model.requests[0].SystemInstruction, "AdoAI")
	assert.Equal(t, 1.0, f.count(operationChat, outcomeOK))
}

func TestChatStreamFailure(t *testing.T) {
	f := newFixture()
	f.model.deltas = []string{"Hel"}
	f.model.streamErr = errors.New("upstream reset")

	stream, err := f.service.Chat(context.Background(), []aipkg.Message{{Role: aipkg.RoleUser, Content: "hi"}})
	require.NoError(t, err)

	var deltas []string
	var streamErr error
	for delta, err := range stream {
		if err != nil {
			streamErr = err
			break
		}
		deltas = append(deltas, delta)
	}
	assert.Equal(t, []string{"Hel"}, deltas)
	assert.EqualError(t, streamErr, "upstream reset")
	assert.Equal(t, 1.0, f.count(operationChat, outcomeError))
}
