package authorizationhttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
)

type verifyQuery struct {
	Token string `form:"token" binding:"required"`
}

type verifyResponse struct {
	Verified bool `json:"verified"`
}

func (h *AuthorizationHandler) VerifyEmail(c *gin.Context) {
	query, ok := request.BindQuery[verifyQuery](c)
	if !ok {
		return
	}

	if err := h.authorizationService.VerifyEmail(c.Request.Context(), query.Token); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, verifyResponse{Verified: true})
}
