package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/taskdeck/pkg/database"
	"github.com/ghuser/taskdeck/pkg/events"
	taskdomain "github.com/ghuser/taskdeck/services/task/domain"
	domainevents "github.com/ghuser/taskdeck/services/task/domain/events"
	"github.com/ghuser/taskdeck/services/task/domain/models"
)

// TaskRepository implements repositories.TaskRepository against PostgreSQL.
// Every query predicate includes owner_id; an unscoped read or write cannot
// be expressed through this type.
type TaskRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewTaskRepository returns a TaskRepository backed by the given connection pool
// and event bus. The bus is used to publish TaskCreatedEvents after a successful insert.
func NewTaskRepository(db *database.Database, bus *events.EventBus) *TaskRepository {
	return &TaskRepository{db: db, bus: bus}
}

// Insert persists a new Task and publishes a TaskCreatedEvent within the same
// transaction. The store-assigned id and initial version are written back
// into the aggregate.
func (r *TaskRepository) Insert(ctx context.Context, task *models.Task) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO tasks (owner_id, title, description, is_completed, created_at, version)
			VALUES ($1, $2, $3, $4, $5, 1)
			RETURNING id, version`,
			task.OwnerID, task.Title.String(), task.Description.String(),
			task.IsCompleted, task.CreatedAt,
		)
		if err := row.Scan(&task.ID, &task.Version); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23514" {
				return fmt.Errorf("%w: %s", taskdomain.ErrInvalidTask, pgErr.ConstraintName)
			}
			return fmt.Errorf("insert task: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, task); err != nil {
				return fmt.Errorf("publish task created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a task by ID scoped to the given owner.
// Returns ErrTaskNotFound when the row is absent or owned by another user.
func (r *TaskRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*models.Task, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, owner_id, title, description, is_completed, created_at, version
		FROM tasks
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, taskdomain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("query task: %w", err)
	}
	return task, nil
}

// FindByOwner retrieves the owner's tasks matching filter, most recent first.
// Creation-time ties keep insertion order (ascending id).
func (r *TaskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter models.StatusFilter) ([]*models.Task, error) {
	query := `
		SELECT id, owner_id, title, description, is_completed, created_at, version
		FROM tasks
		WHERE owner_id = $1`
	args := []any{ownerID}

	switch filter {
	case models.FilterCompleted:
		query += ` AND is_completed = TRUE`
	case models.FilterPending:
		query += ` AND is_completed = FALSE`
	}
	query += ` ORDER BY created_at DESC, id ASC`

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// Update persists changes to an existing Task conditioned on its version
// (compare-and-swap on the version column). Zero rows affected means the row
// was concurrently modified, removed, or never owned by this user; all three
// surface as ErrConcurrentUpdate for the service layer to disambiguate via
// an existence re-check.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, is_completed = $3, version = version + 1
		WHERE id = $4 AND owner_id = $5 AND version = $6`,
		task.Title.String(), task.Description.String(), task.IsCompleted,
		task.ID, task.OwnerID, task.Version,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			return fmt.Errorf("%w: %s", taskdomain.ErrInvalidTask, pgErr.ConstraintName)
		}
		return fmt.Errorf("update task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task rows affected: %w", err)
	}
	if affected == 0 {
		return taskdomain.ErrConcurrentUpdate
	}

	task.Version++
	return nil
}

// Delete removes a task by ID scoped to the given owner.
// Deleting an absent or foreign-owned task is a silent no-op.
func (r *TaskRepository) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if _, err := r.db.DB().ExecContext(ctx, `
		DELETE FROM tasks WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Exists reports whether a task with the given ID exists for the given owner.
func (r *TaskRepository) Exists(ctx context.Context, ownerID uuid.UUID, id int64) (bool, error) {
	var exists bool
	if err := r.db.DB().QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1 AND owner_id = $2)`,
		id, ownerID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check task exists: %w", err)
	}
	return exists, nil
}

func (r *TaskRepository) publishCreated(tx *sql.Tx, task *models.Task) error {
	event := domainevents.TaskCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		TaskID:      task.ID,
		OwnerID:     task.OwnerID,
		Title:       task.Title.String(),
		Description: task.Description.String(),
		OccurredAt:  task.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicTaskCreated, msg)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask maps a tasks row to a domain models.Task.
func scanTask(row rowScanner) (*models.Task, error) {
	var (
		task        models.Task
		title       string
		description string
	)
	if err := row.Scan(
		&task.ID, &task.OwnerID, &title, &description,
		&task.IsCompleted, &task.CreatedAt, &task.Version,
	); err != nil {
		return nil, err
	}
	task.Title = models.TaskTitle(title)
	task.Description = models.TaskDescription(description)
	return &task, nil
}
