package main

import (
	"context"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	clientpkg "github.com/adopour/backend/internal/client"
	eventpkg "github.com/adopour/backend/internal/event"
	grpcpkg "github.com/adopour/backend/internal/grpc"
	httppkg "github.com/adopour/backend/internal/http"
	adminhttp "github.com/adopour/backend/internal/http/admin"
	assistanthttp "github.com/adopour/backend/internal/http/assistant"
	authorizationhttp "github.com/adopour/backend/internal/http/authorization"
	businesshttp "github.com/adopour/backend/internal/http/business"
	communityhttp "github.com/adopour/backend/internal/http/community"
	mediahttp "github.com/adopour/backend/internal/http/media"
	notificationhttp "github.com/adopour/backend/internal/http/notification"
	posthttp "github.com/adopour/backend/internal/http/post"
	profilehttp "github.com/adopour/backend/internal/http/profile"
	jwtpkg "github.com/adopour/backend/internal/jwt"
	"github.com/adopour/backend/internal/middleware"
	ormpkg "github.com/adopour/backend/internal/orm"
	"github.com/adopour/backend/internal/services"
	adminpkg "github.com/adopour/backend/internal/services/admin"
	communitypkg "github.com/adopour/backend/internal/services/community"
	contactpkg "github.com/adopour/backend/internal/services/contact"
	mediapkg "github.com/adopour/backend/internal/services/media"
	postpkg "github.com/adopour/backend/internal/services/post"
	userpkg "github.com/adopour/backend/internal/services/user"
)

var serverCommand = &cobra.Command{
	Use:   "server",
	Short: "Run the HTTP API and the gRPC health endpoint",
	Long:  "",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serverCommandImpl()
	},
}

func serverCommandImpl() error {
	loadEnv()

	// Application
	application := fx.New(
		fx.NopLogger,
		fx.Provide(
			// Logger and metrics
			newLogger,
			newRegistry,

			// Config/Secrets from .env
			func(logger *zap.Logger) *jwtpkg.JWT {
				jwtSecret := os.Getenv("JWT_SECRET")
				if jwtSecret == "" {
					logger.Warn("JWT_SECRET is not set, using an insecure default")
					jwtSecret = "123456"
				}
				return jwtpkg.NewJWT(jwtSecret)
			},
			func(lifecycle fx.Lifecycle) *middleware.RateLimitMiddleware {
				limiter := middleware.NewRateLimitMiddleware(
					getenvFloat("RATE_LIMIT_RPS", 5),
					getenvInt("RATE_LIMIT_BURST", 600),
				)

				ctx, cancel := context.WithCancel(context.Background())
				lifecycle.Append(fx.Hook{
					OnStart: func(context.Context) error {
						go limiter.Sweep(ctx, time.Minute, 10*time.Minute)
						return nil
					},
					OnStop: func(context.Context) error {
						cancel()
						return nil
					},
				})
				return limiter
			},

			// Clients
			newPostgresClient,
			newKafkaPublisher,
			newRedisClient,
			newGeminiModel,
			func() *clientpkg.HIBPClient {
				return clientpkg.NewHIBPClient(os.Getenv("HIBP_BASE_URL"))
			},
			func() (*clientpkg.S3Client, error) {
				return clientpkg.NewS3Client(context.Background(), clientpkg.S3Config{
					Bucket:    getenv("S3_BUCKET", "adopour"),
					Region:    getenv("S3_REGION", "us-east-1"),
					Endpoint:  os.Getenv("S3_ENDPOINT"),
					AccessKey: os.Getenv("S3_ACCESS_KEY"),
					SecretKey: os.Getenv("S3_SECRET_KEY"),
					PublicURL: os.Getenv("S3_PUBLIC_URL"),
				})
			},

			// Services
			func(log *zap.Logger, db *ormpkg.PostgresClient, broker *eventpkg.KafkaPublisher, jwt *jwtpkg.JWT, hibp *clientpkg.HIBPClient) services.AuthorizationService {
				return userpkg.NewAuthorizationService(log, db, broker, jwt, hibp)
			},
			func(log *zap.Logger, db *ormpkg.PostgresClient, broker *eventpkg.KafkaPublisher) services.ProfileService {
				return userpkg.NewProfileService(log, db, broker)
			},
			func(log *zap.Logger, db *ormpkg.PostgresClient, broker *eventpkg.KafkaPublisher) services.PostService {
				return postpkg.NewPostService(log, db, broker)
			},
			func(log *zap.Logger, db *ormpkg.PostgresClient) services.CommunityService {
				return communitypkg.NewCommunityService(db, log)
			},
			func(log *zap.Logger, db *ormpkg.PostgresClient) services.AdminService {
				return adminpkg.NewAdminService(log, db)
			},
			func(log *zap.Logger, db *ormpkg.PostgresClient, broker *eventpkg.KafkaPublisher) services.ContactService {
				return contactpkg.NewContactService(log, db, broker)
			},
			func(log *zap.Logger, storage *clientpkg.S3Client) services.MediaService {
				return mediapkg.NewMediaService(log, storage)
			},
			newAssistantService,
			newNotificationService,

			// HTTP handlers
			authorizationhttp.NewAuthorizationHandler,
			profilehttp.NewProfileHandler,
			posthttp.NewPostHandler,
			communityhttp.NewCommunityHandler,
			adminhttp.NewAdminHandler,
			assistanthttp.NewAssistantHandler,
			businesshttp.NewBusinessHandler,
			notificationhttp.NewNotificationHandler,
			mediahttp.NewMediaHandler,

			// Main HTTP Server
			func(
				lc fx.Lifecycle,
				log *zap.Logger,
				jwt *jwtpkg.JWT,
				db *ormpkg.PostgresClient,
				registry *prometheus.Registry,
				rateLimitMiddleware *middleware.RateLimitMiddleware,
				authorizationHandler *authorizationhttp.AuthorizationHandler,
				profileHandler *profilehttp.ProfileHandler,
				postHandler *posthttp.PostHandler,
				communityHandler *communityhttp.CommunityHandler,
				adminHandler *adminhttp.AdminHandler,
				assistantHandler *assistanthttp.AssistantHandler,
				businessHandler *businesshttp.BusinessHandler,
				notificationHandler *notificationhttp.NotificationHandler,
				mediaHandler *mediahttp.MediaHandler,
			) *httppkg.HTTP {
				router := httppkg.NewRouter(
					httppkg.RouterConfig{
						Logger:      log,
						JWT:         jwt,
						Sessions:    db,
						Health:      db,
						Registry:    registry,
						RateLimiter: rateLimitMiddleware,
					},
					httppkg.Handlers{
						Authorization: authorizationHandler,
						Profile:       profileHandler,
						Post:          postHandler,
						Community:     communityHandler,
						Admin:         adminHandler,
						Assistant:     assistantHandler,
						Business:      businessHandler,
						Notification:  notificationHandler,
						Media:         mediaHandler,
					},
				)

				httpServer := httppkg.NewHTTP(
					log,
					getenv("HTTP_HOST", "0.0.0.0"),
					getenv("HTTP_PORT", "8080"),
					router,
				)
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return httpServer.Start()
					},
					OnStop: func(ctx context.Context) error {
						return httpServer.Stop(ctx)
					},
				})
				return httpServer
			},

			// Health gRPC Server
			func(lc fx.Lifecycle, log *zap.Logger, rateLimitMiddleware *middleware.RateLimitMiddleware) *grpcpkg.GRPC {
				grpcServer := grpcpkg.NewGRPC(
					log,
					rateLimitMiddleware,
					getenv("GRPC_HOST", "0.0.0.0"),
					getenv("GRPC_PORT", "9090"),
				)
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return grpcServer.Start()
					},
					OnStop: func(ctx context.Context) error {
						return grpcServer.Stop()
					},
				})
				return grpcServer
			},
		),
		fx.Invoke(
			func(*httppkg.HTTP) {},
			func(*grpcpkg.GRPC) {},
		),
	)
	application.Run()

	err := application.Err()
	if err != nil {
		os.Exit(1)
	}

	return nil
}

func init() {
	rootCommand.AddCommand(serverCommand)
}
