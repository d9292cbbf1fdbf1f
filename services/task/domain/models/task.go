package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is the core aggregate for this bounded context.
type Task struct {
	// ID is assigned by the store on insert; zero until then.
	ID          int64
	OwnerID     uuid.UUID // owning user — always filter by this in queries
	Title       TaskTitle
	Description TaskDescription
	IsCompleted bool
	CreatedAt   time.Time
	// Version is the optimistic-concurrency row version, maintained by the
	// store. 0 for unsaved tasks, 1 after insert, +1 on every update.
	Version int64
}

// NewTask constructs a valid pending Task aggregate with the current UTC timestamp.
// The store assigns ID and Version on insert.
func NewTask(ownerID uuid.UUID, title TaskTitle, description TaskDescription) (*Task, error) {
	return &Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		IsCompleted: false,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// ToggleCompleted flips the completion flag: pending becomes completed and
// completed becomes pending. These are the only two lifecycle states.
func (t *Task) ToggleCompleted() {
	t.IsCompleted = !t.IsCompleted
}
