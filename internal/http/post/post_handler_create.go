package posthttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/services"
)

type createRequest struct {
	Content     string `json:"content" binding:"notblank,max=5000"`
	ImageURL    string `json:"image_url" binding:"omitempty,url,max=2048"`
	CommunityID string `json:"community_id" binding:"omitempty,uuid"`
}

type postResponse struct {
	Post response.Post `json:"post"`
}

func (h *PostHandler) Create(c *gin.Context) {
	req, ok := request.Bind[createRequest](c)
	if !ok {
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), services.PostInput{
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		CommunityID: req.CommunityID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, postResponse{Post: response.NewPost(post)})
}
