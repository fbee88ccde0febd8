package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	adminhttp "github.com/adopour/backend/internal/http/admin"
	assistanthttp "github.com/adopour/backend/internal/http/assistant"
	authorizationhttp "github.com/adopour/backend/internal/http/authorization"
	businesshttp "github.com/adopour/backend/internal/http/business"
	communityhttp "github.com/adopour/backend/internal/http/community"
	mediahttp "github.com/adopour/backend/internal/http/media"
	notificationhttp "github.com/adopour/backend/internal/http/notification"
	posthttp "github.com/adopour/backend/internal/http/post"
	profilehttp "github.com/adopour/backend/internal/http/profile"
	"github.com/adopour/backend/internal/http/response"
	"github.com/adopour/backend/internal/middleware"
)

type HealthChecker interface {
	Ping() error
}

type Handlers struct {
	Authorization *authorizationhttp.AuthorizationHandler
	Profile       *profilehttp.ProfileHandler
	Post          *posthttp.PostHandler
	Community     *communityhttp.CommunityHandler
	Admin         *adminhttp.AdminHandler
	Assistant     *assistanthttp.AssistantHandler
	Business      *businesshttp.BusinessHandler
	Notification  *notificationhttp.NotificationHandler
	Media         *mediahttp.MediaHandler
}

type RouterConfig struct {
	Logger      *zap.Logger
	JWT         middleware.TokenParser
	Sessions    middleware.SessionStore
	Health      HealthChecker
	Registry    *prometheus.Registry
	RateLimiter *middleware.RateLimitMiddleware
}

// NewRouter builds the gin engine. Routes under /api are rate limited per
// client IP; anonymous routes resolve the viewer when a token is present.
func NewRouter(config RouterConfig, handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.NewRecoveryMiddleware(config.Logger),
		middleware.NewLoggingMiddleware(config.Logger),
		middleware.NewMetricsMiddleware(config.Registry),
	)

	router.GET("/healthz", func(c *gin.Context) {
		if err := config.Health.Ping(); err != nil {
			config.Logger.Error("health check failed", zap.Error(err))
			response.ErrorMessage(c, http.StatusServiceUnavailable, "unavailable")
			return
		}
		response.OK(c, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(config.Registry, promhttp.HandlerOpts{})))

	api := router.Group("/api", config.RateLimiter.Gin())
	public := api.Group("", middleware.NewOptionalAuthorizationMiddleware(config.Logger, config.JWT, config.Sessions))
	private := api.Group("", middleware.NewAuthorizationMiddleware(config.Logger, config.JWT, config.Sessions))

	handlers.Authorization.Register(public, private)
	handlers.Profile.Register(public, private)
	handlers.Post.Register(public, private)
	handlers.Community.Register(public, private)
	handlers.Admin.Register(private)
	handlers.Assistant.Register(public)
	handlers.Business.Register(public)
	handlers.Notification.Register(private)
	handlers.Media.Register(private)

	router.NoRoute(func(c *gin.Context) {
		response.ErrorMessage(c, http.StatusNotFound, "not found")
	})

	return router
}
