package post

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	eventpkg "github.com/adopour/backend/internal/event"
	"github.com/adopour/backend/internal/lib"
	"github.com/adopour/backend/internal/middleware"
	ormpkg "github.com/adopour/backend/internal/orm"
	"github.com/adopour/backend/internal/services"
)

const FeedMaxLimit = 50

// Store is the slice of the database the post service needs.
type Store interface {
	SelectPostByID(id string, viewerID uuid.UUID) (*ormpkg.Post, error)
	SelectPosts(filter ormpkg.PostFilter, viewerID uuid.UUID, cursor string, limit int) ([]*ormpkg.Post, error)
	InsertPost(post *ormpkg.Post) error
	DeletePost(post *ormpkg.Post) error
	SelectProfileByID(id string) (*ormpkg.Profile, error)
	SelectCommunityMember(communityID, userID uuid.UUID) (*ormpkg.CommunityMember, error)
	InsertLike(postID, userID uuid.UUID) (bool, error)
	DeleteLike(postID, userID uuid.UUID) (bool, error)
	CountLikesByPost(postID uuid.UUID) (int64, error)
	SelectCommentByID(id string) (*ormpkg.Comment, error)
	SelectCommentsByPostID(postID uuid.UUID) ([]*ormpkg.Comment, error)
	InsertComment(comment *ormpkg.Comment) error
}

type PostServiceImpl struct {
	log      *zap.Logger
	database Store
	broker   eventpkg.Publisher
}

func NewPostService(log *zap.Logger, database Store, broker eventpkg.Publisher) services.PostService {
	return &PostServiceImpl{
		log:      log,
		database: database,
		broker:   broker,
	}
}

func (s *PostServiceImpl) Feed(ctx context.Context, cursor string, limit int) ([]*ormpkg.Post, string, error) {
	limit = lib.ClampLimit(limit, FeedMaxLimit)

	posts, err := s.database.SelectPosts(
		ormpkg.PostFilter{},
		middleware.GetViewerUUID(ctx),
		cursor,
		limit+1,
	)
	if err != nil {
		s.log.Error("error selecting feed", zap.Error(err))
		return nil, "", status.Errorf(codes.Internal, "database error")
	}

	posts, next := lib.NextPage(posts, limit)
	return posts, next, nil
}

func (s *PostServiceImpl) CreatePost(ctx context.Context, input services.PostInput) (*ormpkg.Post, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, status.Errorf(codes.InvalidArgument, "Content is required")
	}
	if utf8.RuneCountInString(content) > ormpkg.PostContentMaxLength {
		return nil, status.Errorf(codes.InvalidArgument, "Content must be at most %d characters", ormpkg.PostContentMaxLength)
	}

	post := &ormpkg.Post{
		AuthorID: userID,
		Content:  content,
		ImageURL: strings.TrimSpace(input.ImageURL),
	}

	if input.CommunityID != "" {
		communityID, err := uuid.Parse(input.CommunityID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid community_id")
		}

		_, err = s.database.SelectCommunityMember(communityID, userID)
		if err == gorm.ErrRecordNotFound {
			return nil, status.Errorf(codes.PermissionDenied, "You must be a member of this community to post")
		}
		if err != nil {
			s.log.Error("error checking community membership", zap.Error(err))
			return nil, status.Errorf(codes.Internal, "database error")
		}
		post.CommunityID = &communityID
	}

	if err := s.database.InsertPost(post); err != nil {
		s.log.Error("error inserting post", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not create post")
	}

	s.publish(ctx, eventpkg.POST_CREATED, eventpkg.PostCreatedMessage{ID: post.ID.String()})

	created, err := s.database.SelectPostByID(post.ID.String(), userID)
	if err != nil {
		s.log.Error("error reloading post", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}
	return created, nil
}

func (s *PostServiceImpl) GetPost(ctx context.Context, postID string) (*services.PostDetails, error) {
	post, err := s.selectPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.database.SelectCommentsByPostID(post.ID)
	if err != nil {
		s.log.Error("error selecting comments", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}

	return &services.PostDetails{
		Post:     post,
		Comments: comments,
	}, nil
}

func (s *PostServiceImpl) DeletePost(ctx context.Context, postID string) error {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return lib.UnauthenticatedError("")
	}

	post, err := s.selectPost(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		user, err := s.database.SelectProfileByID(userID.String())
		if err != nil {
			s.log.Error("error selecting profile", zap.Error(err))
			return status.Errorf(codes.Internal, "database error")
		}
		if !user.CanModerate() {
			return status.Errorf(codes.PermissionDenied, "not allowed to delete this post")
		}
	}

	if err := s.database.DeletePost(post); err != nil {
		s.log.Error("error deleting post", zap.Error(err))
		return status.Errorf(codes.Internal, "could not delete post")
	}
	return nil
}

func (s *PostServiceImpl) LikePost(ctx context.Context, postID string) (*services.LikeState, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	post, err := s.selectPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	created, err := s.database.InsertLike(post.ID, userID)
	if err != nil {
		s.log.Error("error inserting like", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not like post")
	}

	if created {
		s.publish(ctx, eventpkg.POST_LIKED, eventpkg.PostLikedMessage{
			PostID: post.ID.String(),
			UserID: userID.String(),
		})
	}

	return s.likeState(post.ID, true)
}

func (s *PostServiceImpl) UnlikePost(ctx context.Context, postID string) (*services.LikeState, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	post, err := s.selectPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if _, err := s.database.DeleteLike(post.ID, userID); err != nil {
		s.log.Error("error deleting like", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not unlike post")
	}

	return s.likeState(post.ID, false)
}

func (s *PostServiceImpl) ListComments(ctx context.Context, postID string) ([]*ormpkg.Comment, error) {
	post, err := s.selectPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.database.SelectCommentsByPostID(post.ID)
	if err != nil {
		s.log.Error("error selecting comments", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}
	return comments, nil
}

func (s *PostServiceImpl) AddComment(ctx context.Context, postID string, content string) (*ormpkg.Comment, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, lib.UnauthenticatedError("")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, status.Errorf(codes.InvalidArgument, "Content is required")
	}
	if utf8.RuneCountInString(content) > ormpkg.CommentContentMaxLength {
		return nil, status.Errorf(codes.InvalidArgument, "Content must be at most %d characters", ormpkg.CommentContentMaxLength)
	}

	post, err := s.selectPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &ormpkg.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Content:  content,
	}
	if err := s.database.InsertComment(comment); err != nil {
		s.log.Error("error inserting comment", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "could not create comment")
	}

	s.publish(ctx, eventpkg.COMMENT_CREATED, eventpkg.CommentCreatedMessage{ID: comment.ID.String()})

	created, err := s.database.SelectCommentByID(comment.ID.String())
	if err != nil {
		s.log.Error("error reloading comment", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}
	return created, nil
}

func (s *PostServiceImpl) selectPost(ctx context.Context, postID string) (*ormpkg.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, status.Errorf(codes.NotFound, "post not found")
	}

	post, err := s.database.SelectPostByID(postID, middleware.GetViewerUUID(ctx))
	if err == gorm.ErrRecordNotFound {
		return nil, status.Errorf(codes.NotFound, "post not found")
	}
	if err != nil {
		s.log.Error("error selecting post by id", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}
	return post, nil
}

func (s *PostServiceImpl) likeState(postID uuid.UUID, isLiked bool) (*services.LikeState, error) {
	count, err := s.database.CountLikesByPost(postID)
	if err != nil {
		s.log.Error("error counting likes", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "database error")
	}
	return &services.LikeState{
		LikesCount: count,
		IsLiked:    isLiked,
	}, nil
}

// publish fans out a side-effect event. Failures are logged and ignored.
func (s *PostServiceImpl) publish(ctx context.Context, event string, message any) {
	if err := s.broker.WriteMessage(ctx, event, message); err != nil {
		s.log.Warn("failed to publish event", zap.String("event", event), zap.Error(err))
	}
}
