package services

import (
	"context"

	ormpkg "github.com/adopour/backend/internal/orm"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, unreadOnly bool) ([]*ormpkg.Notification, int64, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context) (int64, error)

	NotifyPostLiked(ctx context.Context, postID string, userID string) error
	NotifyCommentCreated(ctx context.Context, commentID string) error
	NotifyFriendRequested(ctx context.Context, friendshipID string) error
}
