package authorizationhttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/services"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokensResponse struct {
	AccessToken  string                  `json:"access_token"`
	RefreshToken string                  `json:"refresh_token"`
	Profile      response.PrivateProfile `json:"profile"`
}

func (h *AuthorizationHandler) Login(c *gin.Context) {
	req, ok := request.Bind[loginRequest](c)
	if !ok {
		return
	}

	tokens, err := h.authorizationService.Login(
		c.Request.Context(),
		req.Email,
		req.Password,
		c.Request.UserAgent(),
		c.ClientIP(),
	)
	writeTokens(c, tokens, err)
}

func (h *AuthorizationHandler) Refresh(c *gin.Context) {
	req, ok := request.Bind[refreshRequest](c)
	if !ok {
		return
	}

	tokens, err := h.authorizationService.Refresh(c.Request.Context(), req.RefreshToken)
	writeTokens(c, tokens, err)
}

func writeTokens(c *gin.Context, tokens *services.Tokens, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Profile:      response.NewPrivateProfile(tokens.Profile),
	})
}
