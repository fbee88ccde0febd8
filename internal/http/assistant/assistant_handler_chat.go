package assistanthttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	aipkg "github.com/adopour/backend/internal/ai"
	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/services"
	"github.com/adopour/backend/internal/stream"
)

type chatRequest struct {
	Messages []aipkg.Message `json:"messages" binding:"required"`
}

// Chat streams the assistant reply as text frames. Validation failures are
// answered with a JSON error before the stream starts; upstream failures
// after that become an error frame with a generic message.
func (h *AssistantHandler) Chat(c *gin.Context) {
	req, ok := request.Bind[chatRequest](c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	deltas, err := h.assistantService.Chat(ctx, req.Messages)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Type", stream.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	encoder := stream.NewEncoder(c.Writer)
	for delta, err := range deltas {
		if err != nil {
			if ctx.Err() != nil {
				h.log.Debug("chat client went away", zap.Error(err))
				return
			}
			h.log.Error("chat stream failed", zap.Error(err))
			_ = encoder.WriteError(services.ChatErrorMessage)
			_ = encoder.WriteFinish(stream.FinishReasonError)
			return
		}

		if err := encoder.WriteText(delta); err != nil {
			h.log.Debug("error writing chat frame", zap.Error(err))
			return
		}
	}

	_ = encoder.WriteFinish(stream.FinishReasonStop)
}
