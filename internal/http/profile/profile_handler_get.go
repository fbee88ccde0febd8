package profilehttp

import (
	"github.com/gin-gonic/gin"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
)

type getResponse struct {
	Profile      response.Profile `json:"profile"`
	PostCount    int64            `json:"post_count"`
	FriendsCount int64            `json:"friends_count"`
	Reputation   float64          `json:"reputation"`
	IsOwnProfile bool             `json:"is_own_profile"`
}

type postsQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

type postsResponse struct {
	Posts      []response.Post `json:"posts"`
	NextCursor string          `json:"next_cursor"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	details, err := h.profileService.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, getResponse{
		Profile:      response.NewProfile(details.Profile),
		PostCount:    details.PostCount,
		FriendsCount: details.FriendsCount,
		Reputation:   details.Reputation,
		IsOwnProfile: details.IsOwnProfile,
	})
}

func (h *ProfileHandler) ListPosts(c *gin.Context) {
	query, ok := request.BindQuery[postsQuery](c)
	if !ok {
		return
	}

	posts, next, err := h.profileService.ListProfilePosts(c.Request.Context(), c.Param("username"), query.Cursor, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, postsResponse{
		Posts:      response.NewPosts(posts),
		NextCursor: next,
	})
}
