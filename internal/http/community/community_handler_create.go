package communityhttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/services"
)

type createRequest struct {
	DisplayName string `json:"display_name" binding:"notblank,max=50"`
	Name        string `json:"name" binding:"omitempty,max=50,communityname"`
	Description string `json:"description" binding:"max=500"`
}

type communityResponse struct {
	Community response.Community `json:"community"`
}

func (h *CommunityHandler) Create(c *gin.Context) {
	req, ok := request.Bind[createRequest](c)
	if !ok {
		return
	}

	community, err := h.communityService.CreateCommunity(c.Request.Context(), services.CommunityInput{
		DisplayName: req.DisplayName,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, communityResponse{Community: response.NewCommunity(community)})
}
