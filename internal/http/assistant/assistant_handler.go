package assistanthttp

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adopour/backend/internal/services"
)

type AssistantHandler struct {
	log              *zap.Logger
	assistantService services.AssistantService
}

func NewAssistantHandler(log *zap.Logger, assistantService services.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		assistantService: assistantService,
	}
}

func (h *AssistantHandler) Register(public gin.IRoutes) {
	public.POST("/analyze-post", h.AnalyzePost)
	public.POST("/chat", h.Chat)
}
