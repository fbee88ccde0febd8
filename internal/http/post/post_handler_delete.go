package posthttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/response"
)

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postService.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
