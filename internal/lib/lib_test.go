package lib

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Dog Lovers", "dog-lovers"},
		{"  Go   Gophers  ", "go-gophers"},
		{"C++ & Rust!!", "c-rust"},
		{"already-a-slug", "already-a-slug"},
		{"Multi---dash -- name", "multi-dash-name"},
		{"Ünïcode Cafe", "ncode-cafe"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestIsValidCommunityName(t *testing.T) {
	assert.True(t, IsValidCommunityName("dog-lovers"))
	assert.True(t, IsValidCommunityName("r2d2"))
	assert.False(t, IsValidCommunityName(""))
	assert.False(t, IsValidCommunityName("Dog Lovers"))
	assert.False(t, IsValidCommunityName("under_score"))

	long := make([]byte, CommunityNameMaxLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, IsValidCommunityName(string(long)))
}

func TestHandleError(t *testing.T) {
	assert.NoError(t, HandleError(nil))
	assert.Equal(t, codes.NotFound, status.Code(HandleError(gorm.ErrRecordNotFound)))
	assert.Equal(t, codes.AlreadyExists, status.Code(HandleError(gorm.ErrDuplicatedKey)))
	assert.Equal(t, codes.Internal, status.Code(HandleError(errors.New("boom"))))

	denied := PermissionDeniedError("nope")
	assert.Equal(t, denied, HandleError(denied))
}

type page struct {
	id        uuid.UUID
	createdAt time.Time
}

func (p page) GetID() uuid.UUID        { return p.id }
func (p page) GetCreatedAt() time.Time { return p.createdAt }

func TestNextPage(t *testing.T) {
	items := []page{{id: uuid.New()}, {id: uuid.New()}, {id: uuid.New()}}

	trimmed, cursor := NextPage(items, 2)
	assert.Len(t, trimmed, 2)
	assert.Equal(t, items[1].id.String(), cursor)

	trimmed, cursor = NextPage(items, 3)
	assert.Len(t, trimmed, 3)
	assert.Empty(t, cursor)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, ClampLimit(0, 50))
	assert.Equal(t, 50, ClampLimit(-1, 50))
	assert.Equal(t, 50, ClampLimit(51, 50))
	assert.Equal(t, 10, ClampLimit(10, 50))
}

type reputationStore struct {
	postLikes int64
	comments  int64
	err       error
}

func (s reputationStore) CountPostLikesByAuthor(uuid.UUID) (int64, error) { return s.postLikes, s.err }
func (s reputationStore) CountCommentsByAuthor(uuid.UUID) (int64, error)  { return s.comments, s.err }
func (s reputationStore) CountPostLikesInCommunity(uuid.UUID) (int64, error) {
	return s.postLikes, s.err
}
func (s reputationStore) CountCommentsInCommunity(uuid.UUID) (int64, error) {
	return s.comments, s.err
}

func TestCalculateReputation(t *testing.T) {
	store := reputationStore{postLikes: 12, comments: 5}

	score, err := CalculateProfileReputation(store, page{id: uuid.New()})
	require.NoError(t, err)
	assert.InDelta(t, 12.5, score, 0.0001)

	score, err = CalculateCommunityReputation(store, page{id: uuid.New()})
	require.NoError(t, err)
	assert.InDelta(t, 12.5, score, 0.0001)

	_, err = CalculateProfileReputation(reputationStore{err: errors.New("db down")}, page{id: uuid.New()})
	assert.Error(t, err)
}

func TestValidateJSON_PostAnalysis(t *testing.T) {
	valid := map[string]any{
		"sentiment":       "positive",
		"sentimentScore":  0.9,
		"tags":            []string{"dogs", "pets", "weekend"},
		"summary":         "A happy post about a dog.",
		"keyPoints":       []string{"dog", "park"},
		"moderationFlags": []string{},
		"isSafe":          true,
		"suggestions":     []string{"Add a photo", "Tag friends"},
	}
	content, err := json.Marshal(valid)
	require.NoError(t, err)

	keyErrors, err := ValidateJSON(content, PostAnalysisSchema)
	require.NoError(t, err)
	assert.Empty(t, keyErrors)

	valid["sentiment"] = "ecstatic"
	valid["sentimentScore"] = 1.5
	delete(valid, "summary")
	content, err = json.Marshal(valid)
	require.NoError(t, err)

	keyErrors, err = ValidateJSON(content, PostAnalysisSchema)
	require.NoError(t, err)
	assert.NotEmpty(t, keyErrors)
	assert.NotEmpty(t, FormatKeyErrors(keyErrors))
}
