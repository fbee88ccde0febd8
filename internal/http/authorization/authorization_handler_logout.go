package authorizationhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/response"
)

func (h *AuthorizationHandler) Logout(c *gin.Context) {
	if err := h.authorizationService.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
