package adminhttp

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/services"
)

type AdminHandler struct {
	log          *zap.Logger
	adminService services.AdminService
}

func NewAdminHandler(log *zap.Logger, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		log:          log,
		adminService: adminService,
	}
}

func (h *AdminHandler) Register(private gin.IRoutes) {
	private.GET("/admin/users", h.ListUsers)
	private.POST("/admin/users/:id/toggle", h.ToggleRole)
}

type listQuery struct {
	Query string `form:"q" binding:"max=100"`
}

type usersResponse struct {
	Users []response.PrivateProfile `json:"users"`
}

type toggleRequest struct {
	Role string `json:"role" binding:"required,oneof=is_admin is_verified"`
}

type userResponse struct {
	User response.PrivateProfile `json:"user"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	query, ok := request.BindQuery[listQuery](c)
	if !ok {
		return
	}

	users, err := h.adminService.ListUsers(c.Request.Context(), query.Query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, usersResponse{Users: response.NewPrivateProfiles(users)})
}

func (h *AdminHandler) ToggleRole(c *gin.Context) {
	req, ok := request.Bind[toggleRequest](c)
	if !ok {
		return
	}

	user, err := h.adminService.ToggleRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, userResponse{User: response.NewPrivateProfile(user)})
}
