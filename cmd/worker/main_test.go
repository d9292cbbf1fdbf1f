package main

import (
	"testing"
	"time"

	"github.com/google/uuid"

	taskEvents "github.com/ghuser/taskdeck/services/task/domain/events"
)

func TestCachedTaskFromCreated(t *testing.T) {
	evt := taskEvents.TaskCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		TaskID:      42,
		OwnerID:     uuid.New(),
		Title:       "Buy milk",
		Description: "Semi-skimmed, two bottles",
		OccurredAt:  time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}

	cached := cachedTaskFromCreated(&evt)

	if cached.ID != evt.TaskID {
		t.Errorf("ID: got %d, want %d", cached.ID, evt.TaskID)
	}
	if cached.OwnerID != evt.OwnerID {
		t.Errorf("OwnerID: got %v, want %v", cached.OwnerID, evt.OwnerID)
	}
	if cached.Title != evt.Title {
		t.Errorf("Title: got %q, want %q", cached.Title, evt.Title)
	}
	// The description must survive the warm; a read served from this entry
	// has to match what Postgres would return.
	if cached.Description != evt.Description {
		t.Errorf("Description: got %q, want %q", cached.Description, evt.Description)
	}
	if cached.IsCompleted {
		t.Error("a freshly created task must be cached as pending")
	}
	if !cached.CreatedAt.Equal(evt.OccurredAt) {
		t.Errorf("CreatedAt: got %v, want %v", cached.CreatedAt, evt.OccurredAt)
	}
	if cached.Version != 1 {
		t.Errorf("Version: got %d, want 1", cached.Version)
	}
}
