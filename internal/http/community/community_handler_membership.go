package communityhttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/orm"
)

func (h *CommunityHandler) Join(c *gin.Context) {
	community, err := h.communityService.JoinCommunity(c.Request.Context(), c.Param("name"))
	writeCommunity(c, community, err)
}

func (h *CommunityHandler) Leave(c *gin.Context) {
	community, err := h.communityService.LeaveCommunity(c.Request.Context(), c.Param("name"))
	writeCommunity(c, community, err)
}

func writeCommunity(c *gin.Context, community *orm.Community, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, communityResponse{Community: response.NewCommunity(community)})
}
