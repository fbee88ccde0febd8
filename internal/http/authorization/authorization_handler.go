package authorizationhttp

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adopour/backend/internal/services"
)

type AuthorizationHandler struct {
	log                  *zap.Logger
	authorizationService services.AuthorizationService
}

func NewAuthorizationHandler(log *zap.Logger, authorizationService services.AuthorizationService) *AuthorizationHandler {
	return &AuthorizationHandler{
		log:                  log,
		authorizationService: authorizationService,
	}
}

func (h *AuthorizationHandler) Register(public gin.IRoutes, private gin.IRoutes) {
	public.POST("/auth/sign-up", h.SignUp)
	public.POST("/auth/login", h.Login)
	public.POST("/auth/refresh", h.Refresh)
	public.GET("/auth/verify", h.VerifyEmail)

	private.POST("/auth/logout", h.Logout)
}
