package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/adopour/backend/internal/lib"
	"github.com/adopour/backend/internal/middleware"
	ormpkg "github.com/adopour/backend/internal/orm"
	"github.com/adopour/backend/internal/services"
)

const ListLimit = 50

type Store interface {
	SelectNotifications(recipientID uuid.UUID, unreadOnly bool, limit int) ([]*ormpkg.Notification, error)
	CountUnreadNotifications(recipientID uuid.UUID) (int64, error)
	InsertNotification(notification *ormpkg.Notification) error
	MarkNotificationRead(id string, recipientID uuid.UUID) (bool, error)
	MarkAllNotificationsRead(recipientID uuid.UUID) (int64, error)
	SelectPostByID(id string, viewerID uuid.UUID) (*ormpkg.Post, error)
	SelectCommentByID(id string) (*ormpkg.Comment, error)
	SelectFriendshipByID(id string) (*ormpkg.Friendship, error)
}

type NotificationServiceImpl struct {
	log      *zap.Logger
	database Store
}

func NewNotificationService(log *zap.Logger, database Store) services.NotificationService {
	return &NotificationServiceImpl{
		log:      log,
		database: database,
	}
}

func (s *NotificationServiceImpl) ListNotifications(ctx context.Context, unreadOnly bool) ([]*ormpkg.Notification, int64, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return nil, 0, lib.UnauthenticatedError("")
	}

	notifications, err := s.database.SelectNotifications(userID, unreadOnly, ListLimit)
	if err != nil {
		s.log.Error("error selecting notifications", zap.Error(err))
		return nil, 0, status.Errorf(codes.Internal, "database error")
	}

	unread, err := s.database.CountUnreadNotifications(userID)
	if err != nil {
		s.log.Error("error counting notifications", zap.Error(err))
		return nil, 0, status.Errorf(codes.Internal, "database error")
	}

	return notifications, unread, nil
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, notificationID string) error {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return lib.UnauthenticatedError("")
	}

	if _, err := uuid.Parse(notificationID); err != nil {
		return status.Errorf(codes.NotFound, "notification not found")
	}

	found, err := s.database.MarkNotificationRead(notificationID, userID)
	if err != nil {
		s.log.Error("error marking notification", zap.Error(err))
		return status.Errorf(codes.Internal, "database error")
	}
	if !found {
		return status.Errorf(codes.NotFound, "notification not found")
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context) (int64, error) {
	userID, err := middleware.GetUserUUID(ctx)
	if err != nil {
		return 0, lib.UnauthenticatedError("")
	}

	count, err := s.database.MarkAllNotificationsRead(userID)
	if err != nil {
		s.log.Error("error marking notifications", zap.Error(err))
		return 0, status.Errorf(codes.Internal, "database error")
	}
	return count, nil
}

func (s *NotificationServiceImpl) NotifyPostLiked(ctx context.Context, postID string, userID string) error {
	actorID, err := uuid.Parse(userID)
	if err != nil {
		return lib.InvalidArgumentError("invalid user id")
	}

	post, err := s.database.SelectPostByID(postID, uuid.Nil)
	if err == gorm.ErrRecordNotFound {
		s.log.Debug("liked post is gone", zap.String("post", postID))
		return nil
	}
	if err != nil {
		return lib.HandleError(err)
	}

	return s.notify(post.AuthorID, actorID, ormpkg.NotificationTypeLike, &post.ID)
}

func (s *NotificationServiceImpl) NotifyCommentCreated(ctx context.Context, commentID string) error {
	comment, err := s.database.SelectCommentByID(commentID)
	if err == gorm.ErrRecordNotFound {
		s.log.Debug("comment is gone", zap.String("comment", commentID))
		return nil
	}
	if err != nil {
		return lib.HandleError(err)
	}

	post, err := s.database.SelectPostByID(comment.PostID.String(), uuid.Nil)
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return lib.HandleError(err)
	}

	return s.notify(post.AuthorID, comment.AuthorID, ormpkg.NotificationTypeComment, &post.ID)
}

func (s *NotificationServiceImpl) NotifyFriendRequested(ctx context.Context, friendshipID string) error {
	friendship, err := s.database.SelectFriendshipByID(friendshipID)
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return lib.HandleError(err)
	}

	return s.notify(friendship.FriendID, friendship.UserID, ormpkg.NotificationTypeFriendRequest, nil)
}

func (s *NotificationServiceImpl) notify(recipientID, actorID uuid.UUID, kind string, postID *uuid.UUID) error {
	if recipientID == actorID {
		return nil
	}

	err := s.database.InsertNotification(&ormpkg.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Type:        kind,
		PostID:      postID,
	})
	if err != nil {
		s.log.Error("error inserting notification", zap.Error(err))
		return status.Errorf(codes.Internal, "could not store notification")
	}
	return nil
}
