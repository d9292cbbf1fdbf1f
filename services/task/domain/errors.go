package domain

import "errors"

// Sentinel errors for the task domain. Use errors.Is() to check these.
var (
	// ErrTaskNotFound indicates the requested task does not exist for the
	// calling user. A task owned by someone else reports the same error so
	// its existence is never confirmed to non-owners.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTask indicates the task violates domain constraints.
	ErrInvalidTask = errors.New("invalid task")

	// ErrConcurrentUpdate indicates an update lost an optimistic-concurrency
	// race: the row changed (or vanished) since it was read. Callers must
	// re-check existence and report ErrTaskNotFound when the row is gone;
	// a conflict on a still-present row is not retried.
	ErrConcurrentUpdate = errors.New("task was modified concurrently")
)
