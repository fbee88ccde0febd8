package services

import (
	"context"

	ormpkg "github.com/adopour/backend/internal/orm"
)

type CommunityInput struct {
	DisplayName string
	Name        string
	Description string
}

// CommunityDetails is a community page as seen by the current viewer. Role is
// empty when the viewer is not a member.
type CommunityDetails struct {
	Community  *ormpkg.Community
	Role       string
	CanManage  bool
	Reputation float64
	Posts      []*ormpkg.Post
}

type CommunityService interface {
	ListCommunities(ctx context.Context, query string) ([]*ormpkg.Community, error)
	CreateCommunity(ctx context.Context, input CommunityInput) (*ormpkg.Community, error)
	GetCommunity(ctx context.Context, name string) (*CommunityDetails, error)
	JoinCommunity(ctx context.Context, name string) (*ormpkg.Community, error)
	LeaveCommunity(ctx context.Context, name string) (*ormpkg.Community, error)
}
