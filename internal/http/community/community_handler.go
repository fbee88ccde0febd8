package communityhttp

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adopour/backend/internal/services"
)

type CommunityHandler struct {
	log              *zap.Logger
	communityService services.CommunityService
}

func NewCommunityHandler(log *zap.Logger, communityService services.CommunityService) *CommunityHandler {
	return &CommunityHandler{
		log:              log,
		communityService: communityService,
	}
}

func (h *CommunityHandler) Register(public gin.IRoutes, private gin.IRoutes) {
	public.GET("/communities", h.List)
	public.GET("/communities/:name", h.Get)

	private.POST("/communities", h.Create)
	private.PUT("/communities/:name/membership", h.Join)
	private.DELETE("/communities/:name/membership", h.Leave)
}
