package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/taskdeck/services/task/domain/events"
)

func TestTaskCreatedEvent_JSONRoundTrip(t *testing.T) {
	original := events.TaskCreatedEvent{
		EventID:     uuid.MustParse("550e8400-e29b-41d4-a716-446655440001"),
		Version:     1,
		TaskID:      42,
		OwnerID:     uuid.MustParse("660e8400-e29b-41d4-a716-446655440000"),
		Title:       "Buy milk",
		Description: "Semi-skimmed, two bottles",
		OccurredAt:  time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var decoded events.TaskCreatedEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	if decoded.EventID != original.EventID {
		t.Errorf("EventID: got %v, want %v", decoded.EventID, original.EventID)
	}
	if decoded.TaskID != original.TaskID {
		t.Errorf("TaskID: got %d, want %d", decoded.TaskID, original.TaskID)
	}
	if decoded.OwnerID != original.OwnerID {
		t.Errorf("OwnerID: got %v, want %v", decoded.OwnerID, original.OwnerID)
	}
	if decoded.Title != original.Title {
		t.Errorf("Title: got %q, want %q", decoded.Title, original.Title)
	}
	if decoded.Description != original.Description {
		t.Errorf("Description: got %q, want %q", decoded.Description, original.Description)
	}
	if !decoded.OccurredAt.Equal(original.OccurredAt) {
		t.Errorf("OccurredAt: got %v, want %v", decoded.OccurredAt, original.OccurredAt)
	}
}

func TestTaskCreatedEvent_JSONFieldNames(t *testing.T) {
	evt := events.TaskCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		TaskID:      1,
		OwnerID:     uuid.New(),
		Title:       "Buy milk",
		Description: "Semi-skimmed",
		OccurredAt:  time.Now().UTC(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "task_id", "owner_id", "title", "description", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestTopics(t *testing.T) {
	if events.TopicTaskCreated != "task.created" {
		t.Errorf("expected %q, got %q", "task.created", events.TopicTaskCreated)
	}
	if events.TopicTaskCompleted != "task.completed" {
		t.Errorf("expected %q, got %q", "task.completed", events.TopicTaskCompleted)
	}
}
