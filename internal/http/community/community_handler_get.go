package communityhttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/response"
)

type getResponse struct {
	Community  response.Community `json:"community"`
	Role       string             `json:"role,omitempty"`
	CanManage  bool               `json:"can_manage"`
	Reputation float64            `json:"reputation"`
	Posts      []response.Post    `json:"posts"`
}

func (h *CommunityHandler) Get(c *gin.Context) {
	details, err := h.communityService.GetCommunity(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, getResponse{
		Community:  response.NewCommunity(details.Community),
		Role:       details.Role,
		CanManage:  details.CanManage,
		Reputation: details.Reputation,
		Posts:      response.NewPosts(details.Posts),
	})
}
