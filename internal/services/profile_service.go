package services

import (
	"context"

	ormpkg "github.com/adopour/backend/internal/orm"
)

// ProfileDetails is a public profile page as seen by the current viewer.
type ProfileDetails struct {
	Profile      *ormpkg.Profile
	PostCount    int64
	FriendsCount int64
	Reputation   float64
	IsOwnProfile bool
}

// ProfileUpdate carries optional profile fields. Nil fields are left as is.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

type ProfileService interface {
	GetCurrentProfile(ctx context.Context) (*ormpkg.Profile, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*ormpkg.Profile, error)
	GetProfile(ctx context.Context, username string) (*ProfileDetails, error)
	ListProfilePosts(ctx context.Context, username string, cursor string, limit int) ([]*ormpkg.Post, string, error)
	AddFriend(ctx context.Context, username string) (*ormpkg.Friendship, error)
	AcceptFriend(ctx context.Context, friendshipID string) (*ormpkg.Friendship, error)
}
