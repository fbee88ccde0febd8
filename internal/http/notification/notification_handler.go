package notificationhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adopour/backend/internal/http/request"
	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/services"
)

type NotificationHandler struct {
	log                 *zap.Logger
	notificationService services.NotificationService
}

func NewNotificationHandler(log *zap.Logger, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		log:                 log,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) Register(private gin.IRoutes) {
	private.GET("/notifications", h.List)
	private.POST("/notifications/read-all", h.MarkAllRead)
	private.POST("/notifications/:id/read", h.MarkRead)
}

type listQuery struct {
	Unread bool `form:"unread"`
}

type listResponse struct {
	Notifications []response.Notification `json:"notifications"`
	UnreadCount   int64                   `json:"unread_count"`
}

type markAllResponse struct {
	Updated int64 `json:"updated"`
}

func (h *NotificationHandler) List(c *gin.Context) {
	query, ok := request.BindQuery[listQuery](c)
	if !ok {
		return
	}

	notifications, unread, err := h.notificationService.ListNotifications(c.Request.Context(), query.Unread)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, listResponse{
		Notifications: response.NewNotifications(notifications),
		UnreadCount:   unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.notificationService.MarkAllRead(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, markAllResponse{Updated: updated})
}
