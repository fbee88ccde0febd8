package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	aipkg "github.com/adopour/backend/internal/ai"
	cachepkg "github.com/adopour/backend/internal/cache"
	eventpkg "github.com/adopour/backend/internal/event"
	loggerpkg "github.com/adopour/backend/internal/logger"
	ormpkg "github.com/adopour/backend/internal/orm"
	"github.com/adopour/backend/internal/services"
	assistantpkg "github.com/adopour/backend/internal/services/assistant"
	notificationpkg "github.com/adopour/backend/internal/services/notification"
)

func newLogger() (*zap.Logger, error) {
	return loggerpkg.NewLogger(os.Getenv("DEBUG") == "1", os.Getenv("LOG_FILE"))
}

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func newPostgresClient(lifecycle fx.Lifecycle) (*ormpkg.PostgresClient, error) {
	client, err := ormpkg.NewPostgresClient(
		getenv("POSTGRES_HOST", "127.0.0.1"),
		getenv("POSTGRES_PORT", "5432"),
		getenv("POSTGRES_USER", "postgres"),
		getenv("POSTGRES_PASSWORD", "postgres"),
		getenv("POSTGRES_DATABASE", "adopour"),
	)
	if err != nil {
		return nil, err
	}

	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func newKafkaPublisher(lifecycle fx.Lifecycle) (*eventpkg.KafkaPublisher, error) {
	publisher, err := eventpkg.NewKafkaPublisher(
		getenv("KAFKA_HOST", "127.0.0.1"),
		getenv("KAFKA_PORT", "9092"),
		getenv("KAFKA_TOPIC", "adopour"),
	)
	if err != nil {
		return nil, err
	}

	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}

func newKafkaConsumer(lifecycle fx.Lifecycle) (*eventpkg.KafkaConsumer, error) {
	consumer, err := eventpkg.NewKafkaConsumer(
		getenv("KAFKA_HOST", "127.0.0.1"),
		getenv("KAFKA_PORT", "9092"),
		getenv("KAFKA_TOPIC", "adopour"),
		getenv("KAFKA_GROUP", "adopour"),
	)
	if err != nil {
		return nil, err
	}

	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return consumer.Close()
		},
	})
	return consumer, nil
}

func newRedisClient(lifecycle fx.Lifecycle) (*cachepkg.RedisClient, error) {
	client, err := cachepkg.NewRedisClient(
		getenv("REDIS_ADDR", "127.0.0.1:6379"),
		os.Getenv("REDIS_PASSWORD"),
		getenvInt("REDIS_DB", 0),
	)
	if err != nil {
		return nil, err
	}

	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func newGeminiModel() (*aipkg.GeminiModel, error) {
	return aipkg.NewGeminiModel(
		context.Background(),
		os.Getenv("GEMINI_API_KEY"),
		os.Getenv("GEMINI_MODEL"),
	)
}

func newAssistantService(
	log *zap.Logger,
	db *ormpkg.PostgresClient,
	model *aipkg.GeminiModel,
	cache *cachepkg.RedisClient,
	registry *prometheus.Registry,
) services.AssistantService {
	return assistantpkg.NewAssistantService(log, db, model, cache, assistantpkg.NewMetrics(registry))
}

func newNotificationService(log *zap.Logger, db *ormpkg.PostgresClient) services.NotificationService {
	return notificationpkg.NewNotificationService(log, db)
}
