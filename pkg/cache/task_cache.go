package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// TaskCacheTTL is the time-to-live for cached tasks.
	TaskCacheTTL = 24 * time.Hour

	taskCacheKeyPrefix = "task"
)

// CachedTask is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash. The concurrency version is cached too so
// an Edit served after a cached read still carries the right version.
type CachedTask struct {
	ID          int64     `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	Version     int64     `json:"version"`
}

// TaskCache provides structured read/write operations for task cache entries.
// Keys are scoped by ownerID so one user's entries can never answer another
// user's reads. Key format: "task:{ownerID}:{taskID}"
type TaskCache struct {
	client *RedisClient
}

// NewTaskCache creates a new TaskCache backed by the given RedisClient.
func NewTaskCache(r *RedisClient) *TaskCache {
	return &TaskCache{client: r}
}

// Get retrieves a cached task by owner + task ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *TaskCache) Get(ctx context.Context, ownerID uuid.UUID, taskID int64) (*CachedTask, error) {
	key := c.key(ownerID, taskID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	oid, err := uuid.Parse(vals["owner_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse owner_id: %w", err)
	}
	completed, err := strconv.ParseBool(vals["is_completed"])
	if err != nil {
		return nil, fmt.Errorf("cache parse is_completed: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	version, err := strconv.ParseInt(vals["version"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse version: %w", err)
	}

	return &CachedTask{
		ID:          id,
		OwnerID:     oid,
		Title:       vals["title"],
		Description: vals["description"],
		IsCompleted: completed,
		CreatedAt:   createdAt,
		Version:     version,
	}, nil
}

// Set writes a cached task as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *TaskCache) Set(ctx context.Context, task *CachedTask) error {
	key := c.key(task.OwnerID, task.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", strconv.FormatInt(task.ID, 10),
		"owner_id", task.OwnerID.String(),
		"title", task.Title,
		"description", task.Description,
		"is_completed", strconv.FormatBool(task.IsCompleted),
		"created_at", task.CreatedAt.UTC().Format(time.RFC3339Nano),
		"version", strconv.FormatInt(task.Version, 10),
	)
	pipe.Expire(ctx, key, TaskCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached task.
func (c *TaskCache) Delete(ctx context.Context, ownerID uuid.UUID, taskID int64) error {
	if err := c.client.Client().Del(ctx, c.key(ownerID, taskID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "task:{ownerID}:{taskID}"
func (c *TaskCache) key(ownerID uuid.UUID, taskID int64) string {
	return fmt.Sprintf("%s:%s:%d", taskCacheKeyPrefix, ownerID, taskID)
}
