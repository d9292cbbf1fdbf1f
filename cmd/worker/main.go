package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/taskdeck/pkg/app"
	"github.com/ghuser/taskdeck/pkg/cache"
	"github.com/ghuser/taskdeck/pkg/config"
	"github.com/ghuser/taskdeck/pkg/database"
	"github.com/ghuser/taskdeck/pkg/events"
	"github.com/ghuser/taskdeck/pkg/logger"
	"github.com/ghuser/taskdeck/pkg/telemetry"
	taskEvents "github.com/ghuser/taskdeck/services/task/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := map[string]func(context.Context, *message.Message) error{
		taskEvents.TopicTaskCreated:   handleTaskCreated(a),
		taskEvents.TopicTaskCompleted: handleTaskCompleted(a),
	}

	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered",
		"topics", []string{taskEvents.TopicTaskCreated, taskEvents.TopicTaskCompleted})
	return nil
}

// handleTaskCreated returns a handler for task.created events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Warms the Redis read-model cache so subsequent GetByID calls are served from cache.
func handleTaskCreated(a *app.Application) func(context.Context, *message.Message) error {
	taskCache := cache.NewTaskCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt taskEvents.TaskCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := taskCache.Set(ctx, cachedTaskFromCreated(&evt)); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for task.created",
				"task_id", evt.TaskID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"task_id", evt.TaskID, "owner_id", evt.OwnerID)
		}

		return nil
	}
}

// cachedTaskFromCreated builds the warmed read-model entry for a freshly
// created task. New tasks are pending at version 1; the event carries every
// field the read model needs, description included.
func cachedTaskFromCreated(evt *taskEvents.TaskCreatedEvent) *cache.CachedTask {
	return &cache.CachedTask{
		ID:          evt.TaskID,
		OwnerID:     evt.OwnerID,
		Title:       evt.Title,
		Description: evt.Description,
		IsCompleted: false,
		CreatedAt:   evt.OccurredAt,
		Version:     1,
	}
}

// handleTaskCompleted returns a handler for task.completed events.
// The API process already invalidates the entry when the toggle lands; this
// handler drops any stale copy warmed by another instance in the meantime.
func handleTaskCompleted(a *app.Application) func(context.Context, *message.Message) error {
	taskCache := cache.NewTaskCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt taskEvents.TaskCompletedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := taskCache.Delete(ctx, evt.OwnerID, evt.TaskID); err != nil {
			a.Logger.WarnContext(ctx, "cache invalidation failed for task.completed",
				"task_id", evt.TaskID, "error", err)
		}

		return nil
	}
}
