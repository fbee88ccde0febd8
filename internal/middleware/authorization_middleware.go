package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adopour/backend/internal/http/response"
	ormpkg "github.com/adopour/backend/internal/orm"
)

type TokenParser interface {
	ParseAccessToken(token string) (string, error)
}

type SessionStore interface {
	SelectSessionByID(id string) (*ormpkg.Session, error)
	TouchSession(session *ormpkg.Session) error
}

// NewAuthorizationMiddleware rejects requests without a valid bearer token
// bound to a live session.
func NewAuthorizationMiddleware(logger *zap.Logger, jwt TokenParser, database SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			logger.Debug("missing bearer", zap.String("path", c.FullPath()))
			response.ErrorMessage(c, http.StatusUnauthorized, "missing or invalid token")
			return
		}

		if !authorize(c, logger, jwt, database, strings.TrimPrefix(header, "Bearer ")) {
			return
		}

		c.Next()
	}
}

// NewOptionalAuthorizationMiddleware resolves the viewer when a token is
// present and lets anonymous requests through.
func NewOptionalAuthorizationMiddleware(logger *zap.Logger, jwt TokenParser, database SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		if !authorize(c, logger, jwt, database, strings.TrimPrefix(header, "Bearer ")) {
			return
		}

		c.Next()
	}
}

func authorize(c *gin.Context, logger *zap.Logger, jwt TokenParser, database SessionStore, token string) bool {
	id, err := jwt.ParseAccessToken(token)
	if err != nil {
		logger.Debug("invalid access token", zap.Error(err))
		response.ErrorMessage(c, http.StatusUnauthorized, "invalid token")
		return false
	}

	session, err := database.SelectSessionByID(id)
	if err == gorm.ErrRecordNotFound {
		response.ErrorMessage(c, http.StatusUnauthorized, "session expired")
		return false
	}
	if err != nil {
		logger.Error("database error", zap.Error(err))
		response.ErrorMessage(c, http.StatusInternalServerError, "internal error")
		return false
	}

	err = database.TouchSession(session)
	if err != nil {
		logger.Error("database error", zap.Error(err))
		response.ErrorMessage(c, http.StatusInternalServerError, "internal error")
		return false
	}

	ctx := SetSessionID(c.Request.Context(), id)
	ctx = SetUserID(ctx, session.ProfileID.String())
	c.Request = c.Request.WithContext(ctx)
	return true
}
