package middleware

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type contextKey int

const (
	sessionIDKey contextKey = iota
	userIDKey
)

var ErrNoUser = errors.New("no user in context")

func SetSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

func SetUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// GetUserUUID returns the authenticated profile ID or ErrNoUser for
// anonymous requests.
func GetUserUUID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return uuid.Nil, ErrNoUser
	}
	return uuid.Parse(id)
}

// GetViewerUUID is GetUserUUID for optional authentication: anonymous
// requests yield uuid.Nil.
func GetViewerUUID(ctx context.Context) uuid.UUID {
	id, err := GetUserUUID(ctx)
	if err != nil {
		return uuid.Nil
	}
	return id
}
