package authorizationhttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/services"
)

type signUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=256"`
	Username    string `json:"username" binding:"required,username"`
	DisplayName string `json:"display_name" binding:"max=50"`
}

type signUpResponse struct {
	Profile response.PrivateProfile `json:"profile"`
}

func (h *AuthorizationHandler) SignUp(c *gin.Context) {
	req, ok := request.Bind[signUpRequest](c)
	if !ok {
		return
	}

	profile, err := h.authorizationService.SignUp(c.Request.Context(), services.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		Username:    req.Username,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, signUpResponse{Profile: response.NewPrivateProfile(profile)})
}
