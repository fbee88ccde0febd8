package posthttp

import (
	"github.com/gin-gonic/gin"

	aipkg "github.com/adopour/backend/internal/ai"
	"github.com/adopour/backend/internal/http/response"
)

type analysisResponse struct {
	Analysis *aipkg.PostAnalysis `json:"analysis"`
}

// GetAnalysis returns the moderation verdict stored by the worker.
func (h *PostHandler) GetAnalysis(c *gin.Context) {
	analysis, err := h.assistantService.GetPostAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, analysisResponse{Analysis: analysis})
}
