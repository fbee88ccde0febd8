package services

import (
	"context"

	ormpkg "github.com/adopour/backend/internal/orm"
)

const (
	RoleAdmin    = "is_admin"
	RoleVerified = "is_verified"
)

type AdminService interface {
	ListUsers(ctx context.Context, query string) ([]*ormpkg.Profile, error)
	ToggleRole(ctx context.Context, userID string, role string) (*ormpkg.Profile, error)
}
