package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	clientpkg "github.com/adopour/backend/internal/client"
	eventpkg "github.com/adopour/backend/internal/event"
	ormpkg "github.com/adopour/backend/internal/orm"
	"github.com/adopour/backend/internal/services"
	workerpkg "github.com/adopour/backend/internal/worker"
)

var workerCommand = &cobra.Command{
	Use:   "worker",
	Short: "Consume domain events: mail, moderation and notifications",
	Long:  "",
	RunE: func(cmd *cobra.Command, args []string) error {
		return workerCommandImpl()
	},
}

func workerCommandImpl() error {
	loadEnv()

	// Application
	application := fx.New(
		fx.NopLogger,
		fx.Provide(
			newLogger,
			newRegistry,

			// Clients
			newPostgresClient,
			newKafkaConsumer,
			newRedisClient,
			newGeminiModel,
			func(logger *zap.Logger) (*clientpkg.MailClient, error) {
				return clientpkg.NewMailClient(clientpkg.MailConfig{
					Host:     getenv("SMTP_HOST", "127.0.0.1"),
					Port:     getenv("SMTP_PORT", "587"),
					Username: os.Getenv("SMTP_USER"),
					Password: os.Getenv("SMTP_PASSWORD"),
					From:     getenv("MAIL_FROM", "Adopour <no-reply@adopour.com>"),
				})
			},

			// Services
			newAssistantService,
			newNotificationService,

			// Metrics endpoint
			func(lifecycle fx.Lifecycle, logger *zap.Logger, registry *prometheus.Registry) *http.Server {
				server := &http.Server{
					Addr:              net.JoinHostPort(getenv("METRICS_HOST", "0.0.0.0"), getenv("METRICS_PORT", "9091")),
					Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 10 * time.Second,
				}
				lifecycle.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						listener, err := net.Listen("tcp", server.Addr)
						if err != nil {
							return err
						}
						go func() {
							err := server.Serve(listener)
							if err != nil && !errors.Is(err, http.ErrServerClosed) {
								logger.Error("metrics server stopped", zap.Error(err))
							}
						}()
						return nil
					},
					OnStop: func(ctx context.Context) error {
						return server.Shutdown(ctx)
					},
				})
				return server
			},

			// Application
			func(
				lifecycle fx.Lifecycle,
				logger *zap.Logger,
				kafkaConsumer *eventpkg.KafkaConsumer,
				mailClient *clientpkg.MailClient,
				databaseClient *ormpkg.PostgresClient,
				assistantService services.AssistantService,
				notificationService services.NotificationService,
			) (*workerpkg.Worker, error) {
				config := &workerpkg.Config{
					VerificationURL: getenv("VERIFICATION_URL", "http://localhost:8080/api/auth/verify"),
					SalesEmail:      getenv("SALES_EMAIL", "sales@adopour.com"),
					SessionMaxIdle:  30 * 24 * time.Hour,
					CleanupInterval: time.Hour,
				}

				worker := workerpkg.NewWorker(
					logger,
					kafkaConsumer,
					mailClient,
					databaseClient,
					assistantService,
					notificationService,
					config,
				)

				lifecycle.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return worker.Start()
					},
					OnStop: func(ctx context.Context) error {
						return worker.Stop()
					},
				})

				return worker, nil
			},
		),
		fx.Invoke(
			func(*http.Server) {},
			func(*workerpkg.Worker) {},
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
	rootCommand.AddCommand(workerCommand)
}
