package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/services/task/domain/models"
)

// TaskRepository is the persistence interface for the Task aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Every read and write takes the owner ID as a mandatory argument (directly
// or via the aggregate), so an unscoped query cannot be expressed. Ownership
// mismatches surface as ErrTaskNotFound, never as a distinct "forbidden".
type TaskRepository interface {
	// Insert persists a new Task. The store assigns ID and Version and
	// writes them back into the aggregate.
	Insert(ctx context.Context, task *models.Task) error

	// GetByID retrieves a task by ID scoped to the given owner.
	// Returns ErrTaskNotFound when absent or owned by another user.
	GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*models.Task, error)

	// FindByOwner retrieves the owner's tasks matching filter, ordered by
	// creation time descending with ties broken by insertion order.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter models.StatusFilter) ([]*models.Task, error)

	// Update persists changes to an existing Task conditioned on its Version.
	// Returns ErrConcurrentUpdate when the row was modified or removed since
	// it was read; on success the aggregate's Version is incremented.
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task by ID scoped to the given owner.
	// Deleting an absent task is a no-op, not an error.
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error

	// Exists reports whether a task with the given ID exists for the given owner.
	Exists(ctx context.Context, ownerID uuid.UUID, id int64) (bool, error)
}
