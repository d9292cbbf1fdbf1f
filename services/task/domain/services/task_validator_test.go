package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/services/task/domain/models"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"normal title", "Buy milk", false},
		{"only whitespace", "    ", true},
		{"contains newline", "Buy\nmilk", true},
		{"contains tab", "Buy\tmilk", true},
		{"leading space is fine", " Buy milk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(models.TaskTitle(tt.title))
			if tt.wantErr && err == nil {
				t.Fatalf("expected error for %q", tt.title)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.title, err)
			}
		})
	}
}

func TestValidateTaskForCreation(t *testing.T) {
	newValid := func() *models.Task {
		task, err := models.NewTask(uuid.New(), models.TaskTitle("Buy milk"), models.TaskDescription(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return task
	}

	t.Run("valid task passes", func(t *testing.T) {
		if err := ValidateTaskForCreation(newValid()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("nil task fails", func(t *testing.T) {
		if err := ValidateTaskForCreation(nil); err == nil {
			t.Fatal("expected error for nil task")
		}
	})

	t.Run("missing owner fails", func(t *testing.T) {
		task := newValid()
		task.OwnerID = uuid.Nil
		if err := ValidateTaskForCreation(task); err == nil {
			t.Fatal("expected error for missing owner")
		}
	})

	t.Run("pre-assigned id fails", func(t *testing.T) {
		task := newValid()
		task.ID = 7
		if err := ValidateTaskForCreation(task); err == nil {
			t.Fatal("expected error for pre-assigned id")
		}
	})

	t.Run("completed at creation fails", func(t *testing.T) {
		task := newValid()
		task.IsCompleted = true
		if err := ValidateTaskForCreation(task); err == nil {
			t.Fatal("expected error for completed task at creation")
		}
	})
}
