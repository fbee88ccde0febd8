package posthttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/response"
)

type getResponse struct {
	Post     response.Post      `json:"post"`
	Comments []response.Comment `json:"comments"`
}

func (h *PostHandler) Get(c *gin.Context) {
	details, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, getResponse{
		Post:     response.NewPost(details.Post),
		Comments: response.NewComments(details.Comments),
	})
}
