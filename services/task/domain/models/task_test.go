package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	ownerID := uuid.New()
	title := TaskTitle("Buy milk")
	description := TaskDescription("Semi-skimmed")

	t.Run("leaves ID unset for the store to assign", func(t *testing.T) {
		task, err := NewTask(ownerID, title, description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.ID != 0 {
			t.Fatalf("expected zero ID before insert, got %d", task.ID)
		}
		if task.Version != 0 {
			t.Fatalf("expected zero Version before insert, got %d", task.Version)
		}
	})

	t.Run("sets OwnerID correctly", func(t *testing.T) {
		task, err := NewTask(ownerID, title, description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.OwnerID != ownerID {
			t.Fatalf("expected OwnerID %v, got %v", ownerID, task.OwnerID)
		}
	})

	t.Run("starts pending", func(t *testing.T) {
		task, err := NewTask(ownerID, title, description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.IsCompleted {
			t.Fatal("expected new task to start pending")
		}
	})

	t.Run("sets CreatedAt to approximately now UTC", func(t *testing.T) {
		before := time.Now().UTC()
		task, err := NewTask(ownerID, title, description)
		after := time.Now().UTC()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.CreatedAt.IsZero() {
			t.Fatal("expected non-zero CreatedAt")
		}
		if task.CreatedAt.Before(before) || task.CreatedAt.After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", task.CreatedAt, before, after)
		}
	})
}

func TestTask_ToggleCompleted(t *testing.T) {
	task, err := NewTask(uuid.New(), TaskTitle("Buy milk"), TaskDescription(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	task.ToggleCompleted()
	if !task.IsCompleted {
		t.Fatal("expected completed after first toggle")
	}

	task.ToggleCompleted()
	if task.IsCompleted {
		t.Fatal("expected pending again after second toggle")
	}
}
