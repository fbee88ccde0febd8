package posthttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
)

type feedQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

type feedResponse struct {
	Posts      []response.Post `json:"posts"`
	NextCursor string          `json:"next_cursor"`
}

func (h *PostHandler) Feed(c *gin.Context) {
	query, ok := request.BindQuery[feedQuery](c)
	if !ok {
		return
	}

	posts, next, err := h.postService.Feed(c.Request.Context(), query.Cursor, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, feedResponse{
		Posts:      response.NewPosts(posts),
		NextCursor: next,
	})
}
