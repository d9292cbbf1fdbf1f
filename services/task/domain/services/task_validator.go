// Package services contains stateless domain services for the task bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/services/task/domain/models"
)

// ValidateTitle enforces business rules for TaskTitle beyond the structural
// constraints enforced by the TaskTitle constructor (length 3–100).
//
// Business rules:
//   - Must not be only whitespace characters
//   - No control characters (Unicode category Cc)
func ValidateTitle(title models.TaskTitle) error {
	s := title.String()

	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("task title must not be only whitespace")
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("task title must not contain control characters")
		}
	}

	return nil
}

// ValidateTaskForCreation performs cross-field validation on a fully-constructed
// Task aggregate before it is persisted. It assumes the Task was built via
// models.NewTask (so structural constraints are already satisfied) and adds
// business-level checks that span multiple fields.
func ValidateTaskForCreation(task *models.Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}

	if err := ValidateTitle(task.Title); err != nil {
		return fmt.Errorf("invalid title: %w", err)
	}

	if task.OwnerID == uuid.Nil {
		return fmt.Errorf("owner_id must be set")
	}

	if task.ID != 0 {
		return fmt.Errorf("id must be unset before insert")
	}

	if task.IsCompleted {
		return fmt.Errorf("new tasks must start pending")
	}

	if task.CreatedAt.IsZero() {
		return fmt.Errorf("created_at must be set")
	}

	return nil
}
