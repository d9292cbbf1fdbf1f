package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the task bounded context.
const (
	// TopicTaskCreated is published when a Task is created.
	TopicTaskCreated = "task.created"
	// TopicTaskCompleted is published when a toggle lands a Task on completed.
	TopicTaskCompleted = "task.completed"
)

// TaskCreatedEvent is published after a new Task is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicTaskCreated).
type TaskCreatedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	TaskID      int64     `json:"task_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// TaskCompletedEvent is published when a task transitions to completed.
// Toggling back to pending does not publish an event.
type TaskCompletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	TaskID     int64     `json:"task_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
