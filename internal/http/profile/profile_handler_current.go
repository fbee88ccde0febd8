package profilehttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/services"
)

type currentResponse struct {
	Profile response.PrivateProfile `json:"profile"`
}

type updateRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,notblank,max=50"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,max=2048"`
}

func (h *ProfileHandler) GetCurrent(c *gin.Context) {
	profile, err := h.profileService.GetCurrentProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, currentResponse{Profile: response.NewPrivateProfile(profile)})
}

func (h *ProfileHandler) UpdateCurrent(c *gin.Context) {
	req, ok := request.Bind[updateRequest](c)
	if !ok {
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), services.ProfileUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, currentResponse{Profile: response.NewPrivateProfile(profile)})
}
