package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	aipkg "github.com/adopour/backend/internal/ai"
	cachepkg "github.com/adopour/backend/internal/cache"
	"github.com/adopour/backend/internal/lib"
	ormpkg "github.com/adopour/backend/internal/orm"
	"github.com/adopour/backend/internal/services"
)

const (
	ChatMaxMessages      = 50
	ChatMaxContentLength = 4000
	AnalysisCacheTTL     = 24 * time.Hour

	analysisCachePrefix = "post-analysis:"
)

const chatInstruction = `You are AdoAI, the friendly assistant of Adopour, a social network for sharing posts, ` +
	`joining communities and making friends. Help people use the platform, write better posts and ` +
	`grow their audience with practical social media tips. Keep answers short, warm and concrete. ` +
	`Politely decline requests that are harmful or unrelated to being online.`

const analysisPrompt = `Analyze this social media post and provide comprehensive insights:

Post content: %q

Provide:
1. Sentiment analysis (positive/negative/neutral/mixed) with confidence score
2. Relevant tags/categories (3-5 tags)
3. A brief one-sentence summary
4. Key points or main topics (2-4 points)
5. Content moderation flags (hate-speech, violence, spam, nsfw, etc.) - empty array if safe
6. Whether the content is safe for the platform
7. Constructive suggestions to improve the post (2-3 suggestions)

Be helpful and constructive in your analysis.`

type Store interface {
	SelectPostByID(id string, viewerID uuid.UUID) (*ormpkg.Post, error)
	SelectPostAnalysis(postID string) (*ormpkg.PostAnalysis, error)
	UpsertPostAnalysis(analysis *ormpkg.PostAnalysis) error
}

type AssistantServiceImpl struct {
	log      *zap.Logger
	database Store
	model    aipkg.Model
	cache    cachepkg.CacheEngine
	metrics  *Metrics
}

func NewAssistantService(log *zap.Logger, database Store, model aipkg.Model, cache cachepkg.CacheEngine, metrics *Metrics) services.AssistantService {
	return &AssistantServiceImpl{
		log:      log,
		database: database,
		model:    model,
		cache:    cache,
		metrics:  metrics,
	}
}

func (s *AssistantServiceImpl) Chat(ctx context.Context, messages []aipkg.Message) (iter.Seq2[string, error], error) {
	if err := validateConversation(messages); err != nil {
		return nil, err
	}

	request := aipkg.Request{
		SystemInstruction: chatInstruction,
		Messages:          messages,
	}

	return func(yield func(string, error) bool) {
		outcome := outcomeOK
		defer func() { s.metrics.observe(operationChat, outcome) }()

		for delta, err := range s.model.Stream(ctx, request) {
			if err != nil {
				outcome = outcomeError
				s.log.Error("chat stream failed", zap.Error(err))
				yield("", err)
				return
			}
			if !yield(delta, nil) {
				outcome = outcomeCancelled
				return
			}
		}
	}, nil
}

func validateConversation(messages []aipkg.Message) error {
	if len(messages) == 0 {
		return status.Errorf(codes.InvalidArgument, "Messages are required")
	}
	if len(messages) > ChatMaxMessages {
		return status.Errorf(codes.InvalidArgument, "At most %d messages are allowed", ChatMaxMessages)
	}

	for _, message := range messages {
		if message.Role != aipkg.RoleUser && message.Role != aipkg.RoleAssistant {
			return status.Errorf(codes.InvalidArgument, "Unknown message role %q", message.Role)
		}
		if strings.TrimSpace(message.Content) == "" {
			return status.Errorf(codes.InvalidArgument, "Message content is required")
		}
		if utf8.RuneCountInString(message.Content) > ChatMaxContentLength {
			return status.Errorf(codes.InvalidArgument, "Messages must be at most %d characters", ChatMaxContentLength)
		}
	}

	if messages[len(messages)-1].Role != aipkg.RoleUser {
		return status.Errorf(codes.InvalidArgument, "The last message must come from the user")
	}
	return nil
}

func (s *AssistantServiceImpl) AnalyzePost(ctx context.Context, content string) (*aipkg.PostAnalysis, error) {
	if strings.TrimSpace(content) == "" {
		return nil, status.Errorf(codes.InvalidArgument, "Content is required")
	}

	key := analysisCacheKey(content)

	var analysis aipkg.PostAnalysis
	err := cachepkg.HandleHitCache(ctx, &analysis, s.cache, key)
	if err == nil {
		s.metrics.observe(operationAnalyze, outcomeCacheHit)
		return &analysis, nil
	}
	if !cachepkg.IsMiss(err) {
		s.log.Warn("analysis cache unavailable", zap.Error(err))
		if err := cachepkg.HandleDeleteCache(ctx, s.cache, key); err != nil {
			s.log.Debug("could not evict cached analysis", zap.Error(err))
		}
	}

	raw, err := s.model.Generate(ctx, aipkg.Request{
		Messages: []aipkg.Message{
			{Role: aipkg.RoleUser, Content: fmt.Sprintf(analysisPrompt, content)},
		},
		ResponseSchema: aipkg.PostAnalysisResponseSchema,
	})
	if err != nil {
		s.metrics.observe(operationAnalyze, outcomeError)
		s.log.Error("error analyzing post", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "Failed to analyze post")
	}

	keyErrors, err := lib.ValidateJSON(json.RawMessage(raw), lib.PostAnalysisSchema)
	if err != nil || len(keyErrors) > 0 {
		s.metrics.observe(operationAnalyze, outcomeError)
		s.log.Error(
			"model returned an invalid analysis",
			zap.Error(err),
			zap.String("violations", lib.FormatKeyErrors(keyErrors)),
		)
		return nil, status.Errorf(codes.Internal, "Failed to analyze post")
	}

	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		s.metrics.observe(operationAnalyze, outcomeError)
		s.log.Error("error decoding analysis", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "Failed to analyze post")
	}
	analysis.Normalize()

	if err := cachepkg.HandleSetCache(ctx, analysis, s.cache, key, AnalysisCacheTTL); err != nil {
		s.log.Warn("error caching analysis", zap.Error(err))
	}

	s.metrics.observe(operationAnalyze, outcomeOK)
	return &analysis, nil
}

func (s *AssistantServiceImpl) GetPostAnalysis(ctx context.Context, postID string) (*aipkg.PostAnalysis, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, status.Errorf(codes.NotFound, "analysis not found")
	}

	stored, err := s.database.SelectPostAnalysis(postID)
	if err == gorm.ErrRecordNotFound {
		return nil, status.Errorf(codes.NotFound, "analysis not found")
	}
	if err != nil {
		s.log.Error("error selecting analysis", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	var analysis aipkg.PostAnalysis
	if err := json.Unmarshal(stored.Analysis, &analysis); err != nil {
		s.log.Error("error decoding stored analysis", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}
	return &analysis, nil
}

// ModeratePost analyzes a stored post and records the verdict.
func (s *AssistantServiceImpl) ModeratePost(ctx context.Context, postID string) (*aipkg.PostAnalysis, error) {
	post, err := s.database.SelectPostByID(postID, uuid.Nil)
	if err == gorm.ErrRecordNotFound {
		return nil, status.Errorf(codes.NotFound, "post not found")
	}
	if err != nil {
		s.log.Error("error selecting post", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	analysis, err := s.AnalyzePost(ctx, post.Content)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "could not encode analysis")
	}

	err = s.database.UpsertPostAnalysis(&ormpkg.PostAnalysis{
		PostID:   post.ID,
		Analysis: data,
		IsSafe:   analysis.IsSafe,
	})
	if err != nil {
		s.log.Error("error storing analysis", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not store analysis")
	}

	if !analysis.IsSafe {
		s.log.Warn(
			"post flagged by moderation",
			zap.String("post", post.ID.String()),
			zap.Strings("flags", analysis.ModerationFlags),
		)
	}
	return analysis, nil
}

func analysisCacheKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return analysisCachePrefix + hex.EncodeToString(sum[:])
}
