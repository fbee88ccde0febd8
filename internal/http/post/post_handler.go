package posthttp

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adopour/backend/internal/services"
)

type PostHandler struct {
	log              *zap.Logger
	postService      services.PostService
	assistantService services.AssistantService
}

func NewPostHandler(log *zap.Logger, postService services.PostService, assistantService services.AssistantService) *PostHandler {
	return &PostHandler{
		log:              log,
		postService:      postService,
		assistantService: assistantService,
	}
}

// Register mounts the post routes. Public routes resolve the viewer when a
// token is present, private routes require one.
func (h *PostHandler) Register(public gin.IRoutes, private gin.IRoutes) {
	public.GET("/feed", h.Feed)
	public.GET("/posts/:id", h.Get)
	public.GET("/posts/:id/comments", h.ListComments)

	private.POST("/posts", h.Create)
	private.DELETE("/posts/:id", h.Delete)
	private.PUT("/posts/:id/like", h.Like)
	private.DELETE("/posts/:id/like", h.Unlike)
	private.POST("/posts/:id/comments", h.AddComment)
	private.GET("/posts/:id/analysis", h.GetAnalysis)
}
