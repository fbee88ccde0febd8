package services

import (
	"context"

	ormpkg "github.com/adopour/backend/internal/orm"
)

type SignUpInput struct {
	Email       string
	Password    string
	Username    string
	DisplayName string
}

// Tokens is the credential pair handed out on login and refresh.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	Profile      *ormpkg.Profile
}

type AuthorizationService interface {
	SignUp(ctx context.Context, input SignUpInput) (*ormpkg.Profile, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password, userAgent, ipAddress string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
	Logout(ctx context.Context) error
}
