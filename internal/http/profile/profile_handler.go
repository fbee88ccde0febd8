package profilehttp

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adopour/backend/internal/services"
)

type ProfileHandler struct {
	log            *zap.Logger
	profileService services.ProfileService
}

func NewProfileHandler(log *zap.Logger, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		log:            log,
		profileService: profileService,
	}
}

func (h *ProfileHandler) Register(public gin.IRoutes, private gin.IRoutes) {
	private.GET("/profiles/me", h.GetCurrent)
	private.PATCH("/profiles/me", h.UpdateCurrent)
	private.POST("/profiles/:username/friend", h.AddFriend)
	private.POST("/friendships/:id/accept", h.AcceptFriend)

	public.GET("/profiles/:username", h.Get)
	public.GET("/profiles/:username/posts", h.ListPosts)
}
