package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	taskdomain "github.com/ghuser/taskdeck/services/task/domain"
	"github.com/ghuser/taskdeck/services/task/domain/models"
)

// fakeTaskRepository is an in-memory TaskRepository honoring the same
// owner-scoping and optimistic-concurrency contract as the Postgres
// implementation. The knobs simulate update races.
type fakeTaskRepository struct {
	tasks  map[int64]*models.Task
	nextID int64

	// forceConflict makes the next Update fail with ErrConcurrentUpdate.
	forceConflict bool
	// deleteOnConflict additionally removes the row, simulating a racing delete.
	deleteOnConflict bool
}

func newFakeRepo() *fakeTaskRepository {
	return &fakeTaskRepository{tasks: make(map[int64]*models.Task), nextID: 1}
}

func (f *fakeTaskRepository) Insert(_ context.Context, task *models.Task) error {
	task.ID = f.nextID
	task.Version = 1
	f.nextID++
	f.tasks[task.ID] = copyTask(task)
	return nil
}

func (f *fakeTaskRepository) GetByID(_ context.Context, ownerID uuid.UUID, id int64) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, taskdomain.ErrTaskNotFound
	}
	return copyTask(task), nil
}

func (f *fakeTaskRepository) FindByOwner(_ context.Context, ownerID uuid.UUID, filter models.StatusFilter) ([]*models.Task, error) {
	var out []*models.Task
	for _, task := range f.tasks {
		if task.OwnerID == ownerID && filter.Matches(task.IsCompleted) {
			out = append(out, copyTask(task))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeTaskRepository) Update(_ context.Context, task *models.Task) error {
	if f.forceConflict {
		f.forceConflict = false
		if f.deleteOnConflict {
			delete(f.tasks, task.ID)
		}
		return taskdomain.ErrConcurrentUpdate
	}
	stored, ok := f.tasks[task.ID]
	if !ok || stored.OwnerID != task.OwnerID || stored.Version != task.Version {
		return taskdomain.ErrConcurrentUpdate
	}
	task.Version++
	f.tasks[task.ID] = copyTask(task)
	return nil
}

func (f *fakeTaskRepository) Delete(_ context.Context, ownerID uuid.UUID, id int64) error {
	if task, ok := f.tasks[id]; ok && task.OwnerID == ownerID {
		delete(f.tasks, id)
	}
	return nil
}

func (f *fakeTaskRepository) Exists(_ context.Context, ownerID uuid.UUID, id int64) (bool, error) {
	task, ok := f.tasks[id]
	return ok && task.OwnerID == ownerID, nil
}

func copyTask(t *models.Task) *models.Task {
	c := *t
	return &c
}

func newService(repo *fakeTaskRepository) *TaskService {
	return NewTaskService(repo, nil, nil, nil)
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("persists a pending task owned by the caller", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(repo)

		before := time.Now().UTC()
		task, err := svc.Create(ctx, ownerID, "Buy milk", "Semi-skimmed")
		after := time.Now().UTC()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.ID == 0 {
			t.Fatal("expected store-assigned id")
		}
		if task.OwnerID != ownerID {
			t.Fatalf("expected owner %v, got %v", ownerID, task.OwnerID)
		}
		if task.IsCompleted {
			t.Fatal("expected new task to start pending")
		}
		if task.CreatedAt.Before(before) || task.CreatedAt.After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", task.CreatedAt, before, after)
		}

		listed, err := svc.List(ctx, ownerID, models.FilterAll)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(listed) != 1 || listed[0].Title.String() != "Buy milk" {
			t.Fatalf("expected exactly one task titled 'Buy milk', got %v", listed)
		}
	})

	t.Run("rejects a two-char title without writing", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(repo)

		_, err := svc.Create(ctx, ownerID, "ab", "")
		if !errors.Is(err, taskdomain.ErrInvalidTask) {
			t.Fatalf("expected ErrInvalidTask, got %v", err)
		}
		if len(repo.tasks) != 0 {
			t.Fatal("validation failure must not write")
		}
	})

	t.Run("accepts a three-char title", func(t *testing.T) {
		svc := newService(newFakeRepo())
		if _, err := svc.Create(ctx, ownerID, "abc", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("accepts a 100-char multibyte title", func(t *testing.T) {
		svc := newService(newFakeRepo())
		if _, err := svc.Create(ctx, ownerID, strings.Repeat("é", 100), strings.Repeat("é", 500)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects a 501-char description, accepts 500", func(t *testing.T) {
		svc := newService(newFakeRepo())
		if _, err := svc.Create(ctx, ownerID, "Buy milk", strings.Repeat("d", 501)); !errors.Is(err, taskdomain.ErrInvalidTask) {
			t.Fatalf("expected ErrInvalidTask, got %v", err)
		}
		if _, err := svc.Create(ctx, ownerID, "Buy milk", strings.Repeat("d", 500)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects whitespace-only title", func(t *testing.T) {
		svc := newService(newFakeRepo())
		if _, err := svc.Create(ctx, ownerID, "    ", ""); !errors.Is(err, taskdomain.ErrInvalidTask) {
			t.Fatalf("expected ErrInvalidTask, got %v", err)
		}
	})
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := newFakeRepo()
	svc := newService(repo)

	mustCreate := func(title string) *models.Task {
		task, err := svc.Create(ctx, ownerID, title, "")
		if err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
		return task
	}

	first := mustCreate("First task")
	second := mustCreate("Second task")
	third := mustCreate("Third task")

	// Force identical creation times so the insertion-order tiebreak is exercised.
	for _, stored := range repo.tasks {
		stored.CreatedAt = first.CreatedAt
	}

	if _, err := svc.ToggleComplete(ctx, ownerID, second.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	t.Run("all returns everything in stable order", func(t *testing.T) {
		tasks, err := svc.List(ctx, ownerID, models.FilterAll)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tasks) != 3 {
			t.Fatalf("expected 3 tasks, got %d", len(tasks))
		}
		// Equal timestamps: insertion order (ascending id) breaks the tie.
		for i, want := range []int64{first.ID, second.ID, third.ID} {
			if tasks[i].ID != want {
				t.Fatalf("position %d: expected id %d, got %d", i, want, tasks[i].ID)
			}
		}
	})

	t.Run("completed returns only completed", func(t *testing.T) {
		tasks, err := svc.List(ctx, ownerID, models.FilterCompleted)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tasks) != 1 || tasks[0].ID != second.ID {
			t.Fatalf("expected only the toggled task, got %v", tasks)
		}
	})

	t.Run("pending returns only pending", func(t *testing.T) {
		tasks, err := svc.List(ctx, ownerID, models.FilterPending)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("expected 2 pending tasks, got %d", len(tasks))
		}
		for _, task := range tasks {
			if task.IsCompleted {
				t.Fatalf("pending filter returned completed task %d", task.ID)
			}
		}
	})

	t.Run("newer tasks come first", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(repo)
		old, _ := svc.Create(ctx, ownerID, "Old task", "")
		fresh, _ := svc.Create(ctx, ownerID, "Fresh task", "")
		repo.tasks[old.ID].CreatedAt = time.Now().UTC().Add(-time.Hour)

		tasks, err := svc.List(ctx, ownerID, models.FilterAll)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tasks[0].ID != fresh.ID || tasks[1].ID != old.ID {
			t.Fatal("expected creation-time descending order")
		}
	})
}

func TestTaskService_OwnershipMasking(t *testing.T) {
	ctx := context.Background()
	alice := uuid.New()
	mallory := uuid.New()

	repo := newFakeRepo()
	svc := newService(repo)

	task, err := svc.Create(ctx, alice, "Alice's task", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("foreign get is not found", func(t *testing.T) {
		if _, err := svc.GetByID(ctx, mallory, task.ID); !errors.Is(err, taskdomain.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("foreign edit is not found", func(t *testing.T) {
		_, err := svc.Edit(ctx, mallory, task.ID, EditInput{ID: task.ID, Title: "Hijacked"})
		if !errors.Is(err, taskdomain.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
		stored, _ := svc.GetByID(ctx, alice, task.ID)
		if stored.Title.String() != "Alice's task" {
			t.Fatal("foreign edit must not modify the record")
		}
	})

	t.Run("foreign toggle is not found", func(t *testing.T) {
		if _, err := svc.ToggleComplete(ctx, mallory, task.ID); !errors.Is(err, taskdomain.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("foreign delete leaves the record intact", func(t *testing.T) {
		if err := svc.Delete(ctx, mallory, task.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.GetByID(ctx, alice, task.ID); err != nil {
			t.Fatal("foreign delete must not remove the record")
		}
	})

	t.Run("foreign list is empty", func(t *testing.T) {
		tasks, err := svc.List(ctx, mallory, models.FilterAll)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tasks) != 0 {
			t.Fatalf("expected empty list for non-owner, got %d tasks", len(tasks))
		}
	})
}

func TestTaskService_Edit(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	setup := func() (*fakeTaskRepository, *TaskService, *models.Task) {
		repo := newFakeRepo()
		svc := newService(repo)
		task, err := svc.Create(ctx, ownerID, "Buy milk", "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		return repo, svc, task
	}

	t.Run("replaces title, description, and completion", func(t *testing.T) {
		_, svc, task := setup()
		updated, err := svc.Edit(ctx, ownerID, task.ID, EditInput{
			ID:          task.ID,
			Title:       "Buy oat milk",
			Description: "The barista kind",
			IsCompleted: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Title.String() != "Buy oat milk" || !updated.IsCompleted {
			t.Fatalf("edit not applied: %+v", updated)
		}
		if updated.Version != task.Version+1 {
			t.Fatalf("expected version bump to %d, got %d", task.Version+1, updated.Version)
		}
	})

	t.Run("path and payload id mismatch is not found and touches nothing", func(t *testing.T) {
		_, svc, task := setup()
		_, err := svc.Edit(ctx, ownerID, task.ID, EditInput{ID: task.ID + 1, Title: "Changed"})
		if !errors.Is(err, taskdomain.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
		stored, _ := svc.GetByID(ctx, ownerID, task.ID)
		if stored.Title.String() != "Buy milk" {
			t.Fatal("mismatched edit must not modify any record")
		}
	})

	t.Run("absent id is not found", func(t *testing.T) {
		_, svc, _ := setup()
		_, err := svc.Edit(ctx, ownerID, 9999, EditInput{ID: 9999, Title: "Ghost edit"})
		if !errors.Is(err, taskdomain.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("invalid input is rejected before any store access", func(t *testing.T) {
		_, svc, task := setup()
		_, err := svc.Edit(ctx, ownerID, task.ID, EditInput{ID: task.ID, Title: "ab"})
		if !errors.Is(err, taskdomain.ErrInvalidTask) {
			t.Fatalf("expected ErrInvalidTask, got %v", err)
		}
	})

	t.Run("conflict on a vanished row becomes not found", func(t *testing.T) {
		repo, svc, task := setup()
		repo.forceConflict = true
		repo.deleteOnConflict = true
		_, err := svc.Edit(ctx, ownerID, task.ID, EditInput{ID: task.ID, Title: "Late edit"})
		if !errors.Is(err, taskdomain.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("conflict on a live row propagates unrecoverably", func(t *testing.T) {
		repo, svc, task := setup()
		repo.forceConflict = true
		_, err := svc.Edit(ctx, ownerID, task.ID, EditInput{ID: task.ID, Title: "Late edit"})
		if !errors.Is(err, taskdomain.ErrConcurrentUpdate) {
			t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
		}
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := newFakeRepo()
	svc := newService(repo)

	task, err := svc.Create(ctx, ownerID, "Buy milk", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("removes an owned task", func(t *testing.T) {
		if err := svc.Delete(ctx, ownerID, task.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.GetByID(ctx, ownerID, task.ID); !errors.Is(err, taskdomain.ErrTaskNotFound) {
			t.Fatal("expected task to be gone")
		}
	})

	t.Run("deleting an absent id is a silent no-op", func(t *testing.T) {
		if err := svc.Delete(ctx, ownerID, 424242); err != nil {
			t.Fatalf("expected idempotent delete, got %v", err)
		}
		if err := svc.Delete(ctx, ownerID, task.ID); err != nil {
			t.Fatalf("expected repeated delete to succeed, got %v", err)
		}
	})
}

func TestTaskService_ToggleComplete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := newFakeRepo()
	svc := newService(repo)

	task, err := svc.Create(ctx, ownerID, "Buy milk", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("double toggle restores the original state", func(t *testing.T) {
		once, err := svc.ToggleComplete(ctx, ownerID, task.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !once.IsCompleted {
			t.Fatal("expected completed after first toggle")
		}

		twice, err := svc.ToggleComplete(ctx, ownerID, task.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if twice.IsCompleted {
			t.Fatal("expected pending again after second toggle")
		}
	})

	t.Run("absent id is not found and creates nothing", func(t *testing.T) {
		if _, err := svc.ToggleComplete(ctx, ownerID, 9999); !errors.Is(err, taskdomain.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
		if _, ok := repo.tasks[9999]; ok {
			t.Fatal("toggle must never create a record")
		}
	})

	t.Run("conflict on a vanished row becomes not found", func(t *testing.T) {
		repo.forceConflict = true
		repo.deleteOnConflict = true
		if _, err := svc.ToggleComplete(ctx, ownerID, task.ID); !errors.Is(err, taskdomain.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})
}
