package communityhttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
)

type listQuery struct {
	Query string `form:"q" binding:"max=100"`
}

type listResponse struct {
	Communities []response.Community `json:"communities"`
}

func (h *CommunityHandler) List(c *gin.Context) {
	query, ok := request.BindQuery[listQuery](c)
	if !ok {
		return
	}

	communities, err := h.communityService.ListCommunities(c.Request.Context(), query.Query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, listResponse{Communities: response.NewCommunities(communities)})
}
