package profilehttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/response"
)

type friendshipResponse struct {
	Friendship response.Friendship `json:"friendship"`
}

func (h *ProfileHandler) AddFriend(c *gin.Context) {
	friendship, err := h.profileService.AddFriend(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, friendshipResponse{Friendship: response.NewFriendship(friendship)})
}

func (h *ProfileHandler) AcceptFriend(c *gin.Context) {
	friendship, err := h.profileService.AcceptFriend(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, friendshipResponse{Friendship: response.NewFriendship(friendship)})
}
