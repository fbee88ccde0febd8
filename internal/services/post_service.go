package services

import (
	"context"

	ormpkg "github.com/adopour/backend/internal/orm"
)

type PostInput struct {
	Content     string
	ImageURL    string
	CommunityID string
}

// PostDetails is a single post together with its comments, oldest first.
type PostDetails struct {
	Post     *ormpkg.Post
	Comments []*ormpkg.Comment
}

// LikeState is the like counter of a post as seen by the caller.
type LikeState struct {
	LikesCount int64
	IsLiked    bool
}

type PostService interface {
	Feed(ctx context.Context, cursor string, limit int) ([]*ormpkg.Post, string, error)
	CreatePost(ctx context.Context, input PostInput) (*ormpkg.Post, error)
	GetPost(ctx context.Context, postID string) (*PostDetails, error)
	DeletePost(ctx context.Context, postID string) error
	LikePost(ctx context.Context, postID string) (*LikeState, error)
	UnlikePost(ctx context.Context, postID string) (*LikeState, error)
	ListComments(ctx context.Context, postID string) ([]*ormpkg.Comment, error)
	AddComment(ctx context.Context, postID string, content string) (*ormpkg.Comment, error)
}
