package posthttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/services"
)

type likeResponse struct {
	LikesCount int64 `json:"likes_count"`
	IsLiked    bool  `json:"is_liked"`
}

func (h *PostHandler) Like(c *gin.Context) {
	state, err := h.postService.LikePost(c.Request.Context(), c.Param("id"))
	writeLikeState(c, state, err)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	state, err := h.postService.UnlikePost(c.Request.Context(), c.Param("id"))
	writeLikeState(c, state, err)
}

func writeLikeState(c *gin.Context, state *services.LikeState, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, likeResponse{
		LikesCount: state.LikesCount,
		IsLiked:    state.IsLiked,
	})
}
