package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	pkgcache "github.com/ghuser/taskdeck/pkg/cache"
	"github.com/ghuser/taskdeck/pkg/events"
	"github.com/ghuser/taskdeck/pkg/logger"
	taskdomain "github.com/ghuser/taskdeck/services/task/domain"
	domainevents "github.com/ghuser/taskdeck/services/task/domain/events"
	"github.com/ghuser/taskdeck/services/task/domain/models"
	"github.com/ghuser/taskdeck/services/task/domain/repositories"
	domainsvcs "github.com/ghuser/taskdeck/services/task/domain/services"
)

// EditInput carries the full replacement state for an Edit. The ID must match
// the id addressed by the caller or the edit is rejected as not found.
type EditInput struct {
	ID          int64
	Title       string
	Description string
	IsCompleted bool
}

// TaskService orchestrates the per-user task use cases. Every operation takes
// the authenticated owner's id and scopes all repository access to it, so a
// task owned by someone else is indistinguishable from one that does not
// exist. Creation events are published by the repository layer (outbox
// pattern); completion events are published here. Single-task reads are
// served from Redis cache when available.
type TaskService struct {
	repo  repositories.TaskRepository
	cache *pkgcache.TaskCache
	bus   *events.EventBus
	log   logger.Logger
}

// NewTaskService returns a TaskService wired with the given repository,
// cache, event bus, and logger. Cache, bus, and log may be nil (tests,
// worker process).
func NewTaskService(repo repositories.TaskRepository, taskCache *pkgcache.TaskCache, bus *events.EventBus, log logger.Logger) *TaskService {
	return &TaskService{repo: repo, cache: taskCache, bus: bus, log: log}
}

// List returns the owner's tasks matching filter, most recent first.
// Unrecognized filter values behave as "all".
func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID, filter models.StatusFilter) ([]*models.Task, error) {
	tasks, err := s.repo.FindByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Create validates and persists a new pending Task owned by ownerID.
// The repository publishes TaskCreatedEvent transactionally.
func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*models.Task, error) {
	taskTitle, err := models.NewTaskTitle(title)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", taskdomain.ErrInvalidTask, err)
	}
	taskDescription, err := models.NewTaskDescription(description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", taskdomain.ErrInvalidTask, err)
	}

	task, err := models.NewTask(ownerID, taskTitle, taskDescription)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if err := domainsvcs.ValidateTaskForCreation(task); err != nil {
		return nil, fmt.Errorf("%w: %w", taskdomain.ErrInvalidTask, err)
	}

	if err := s.repo.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return task, nil
}

// GetByID retrieves one of the owner's tasks. It backs the details, edit, and
// delete-confirmation views alike. Reads go through the Redis cache:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
//
// Absent or foreign-owned ids return ErrTaskNotFound.
func (s *TaskService) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*models.Task, error) {
	// Cache misses and cache errors alike fall through to Postgres.
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, ownerID, id); err == nil {
			return cachedToTask(cached), nil
		}
	}

	task, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), taskToCached(task))
		}()
	}

	return task, nil
}

// Edit replaces the title, description, and completion flag of one of the
// owner's tasks. pathID must match input.ID; a mismatch is reported as
// ErrTaskNotFound without touching any record. A concurrency conflict is
// resolved by re-checking existence: a vanished row becomes ErrTaskNotFound,
// a still-present row propagates the conflict unrecoverably (never retried).
func (s *TaskService) Edit(ctx context.Context, ownerID uuid.UUID, pathID int64, input EditInput) (*models.Task, error) {
	if pathID != input.ID {
		return nil, fmt.Errorf("%w: id mismatch", taskdomain.ErrTaskNotFound)
	}

	title, err := models.NewTaskTitle(input.Title)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", taskdomain.ErrInvalidTask, err)
	}
	description, err := models.NewTaskDescription(input.Description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", taskdomain.ErrInvalidTask, err)
	}
	if err := domainsvcs.ValidateTitle(title); err != nil {
		return nil, fmt.Errorf("%w: %w", taskdomain.ErrInvalidTask, err)
	}

	task, err := s.repo.GetByID(ctx, ownerID, pathID)
	if err != nil {
		return nil, fmt.Errorf("get task for edit: %w", err)
	}

	task.Title = title
	task.Description = description
	task.IsCompleted = input.IsCompleted

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, s.resolveUpdateFailure(ctx, ownerID, pathID, err)
	}

	s.invalidate(ownerID, pathID)
	return task, nil
}

// Delete removes one of the owner's tasks. Deleting an absent id is a silent
// no-op so the operation is idempotent.
func (s *TaskService) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.invalidate(ownerID, id)
	return nil
}

// ToggleComplete flips the completion flag of one of the owner's tasks.
// Absent or foreign-owned ids return ErrTaskNotFound; a toggle never creates
// a record. A TaskCompletedEvent is published when the flip lands on
// completed. Conflicts resolve as in Edit.
func (s *TaskService) ToggleComplete(ctx context.Context, ownerID uuid.UUID, id int64) (*models.Task, error) {
	task, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("get task for toggle: %w", err)
	}

	task.ToggleCompleted()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, s.resolveUpdateFailure(ctx, ownerID, id, err)
	}

	s.invalidate(ownerID, id)

	if task.IsCompleted && s.bus != nil {
		if err := s.publishCompleted(ctx, task); err != nil && s.log != nil {
			// The toggle already landed; event delivery is best-effort.
			s.log.WarnContext(ctx, "task completed event publish failed",
				"task_id", task.ID, "error", err)
		}
	}

	return task, nil
}

// resolveUpdateFailure disambiguates a failed update. A concurrency conflict
// on a row that no longer exists is reported as ErrTaskNotFound; a conflict
// on a live row is propagated as-is. Other failures pass through.
func (s *TaskService) resolveUpdateFailure(ctx context.Context, ownerID uuid.UUID, id int64, err error) error {
	if !errors.Is(err, taskdomain.ErrConcurrentUpdate) {
		return fmt.Errorf("update task: %w", err)
	}
	exists, existsErr := s.repo.Exists(ctx, ownerID, id)
	if existsErr != nil {
		return fmt.Errorf("re-check task after conflict: %w", existsErr)
	}
	if !exists {
		return fmt.Errorf("%w: removed during update", taskdomain.ErrTaskNotFound)
	}
	return fmt.Errorf("update task: %w", err)
}

func (s *TaskService) publishCompleted(ctx context.Context, task *models.Task) error {
	event := domainevents.TaskCompletedEvent{
		EventID:    uuid.New(),
		Version:    1,
		TaskID:     task.ID,
		OwnerID:    task.OwnerID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	return s.bus.Publish(ctx, domainevents.TopicTaskCompleted, msg)
}

// invalidate drops the cached read model for a task after any write.
func (s *TaskService) invalidate(ownerID uuid.UUID, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(context.Background(), ownerID, id)
}

func cachedToTask(c *pkgcache.CachedTask) *models.Task {
	return &models.Task{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Title:       models.TaskTitle(c.Title),
		Description: models.TaskDescription(c.Description),
		IsCompleted: c.IsCompleted,
		CreatedAt:   c.CreatedAt,
		Version:     c.Version,
	}
}

func taskToCached(t *models.Task) *pkgcache.CachedTask {
	return &pkgcache.CachedTask{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title.String(),
		Description: t.Description.String(),
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		Version:     t.Version,
	}
}
