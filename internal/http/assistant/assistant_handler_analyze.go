package assistanthttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	aipkg "github.com/adopour/backend/internal/ai"
	"github.com/adopour/backend/internal/http/response"
)

const (
	contentRequiredMessage = "Content is required"
	analyzeFailedMessage   = "Failed to analyze post"
)

type analyzeRequest struct {
	Content string `json:"content"`
}

type analyzeResponse struct {
	Analysis *aipkg.PostAnalysis `json:"analysis"`
}

// AnalyzePost answers with a fixed error vocabulary: the client only
// distinguishes a missing content from any other failure.
func (h *AssistantHandler) AnalyzePost(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorMessage(c, http.StatusBadRequest, contentRequiredMessage)
		return
	}

	analysis, err := h.assistantService.AnalyzePost(c.Request.Context(), req.Content)
	if status.Code(err) == codes.InvalidArgument {
		response.ErrorMessage(c, http.StatusBadRequest, contentRequiredMessage)
		return
	}
	if err != nil {
		h.log.Error("error analyzing post", zap.Error(err))
		response.ErrorMessage(c, http.StatusInternalServerError, analyzeFailedMessage)
		return
	}

	response.OK(c, analyzeResponse{Analysis: analysis})
}
