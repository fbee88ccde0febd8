package posthttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
)

type commentRequest struct {
	Content string `json:"content" binding:"notblank,max=2000"`
}

type commentsResponse struct {
	Comments []response.Comment `json:"comments"`
}

type commentResponse struct {
	Comment response.Comment `json:"comment"`
}

func (h *PostHandler) ListComments(c *gin.Context) {
	comments, err := h.postService.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, commentsResponse{Comments: response.NewComments(comments)})
}

func (h *PostHandler) AddComment(c *gin.Context) {
	req, ok := request.Bind[commentRequest](c)
	if !ok {
		return
	}

	comment, err := h.postService.AddComment(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, commentResponse{Comment: response.NewComment(comment)})
}
