package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	taskdomain "github.com/ghuser/taskdeck/services/task/domain"
	"github.com/ghuser/taskdeck/services/task/domain/models"
)

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID          int64     `json:"id"           example:"42"`
	Title       string    `json:"title"        example:"Buy milk"`
	Description string    `json:"description"  example:"Semi-skimmed, two bottles"`
	IsCompleted bool      `json:"is_completed" example:"false"`
	CreatedAt   time.Time `json:"created_at"   example:"2024-01-15T10:30:00Z"`
} // @name TaskResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"task not found"`
} // @name ErrorResponse

func toTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title.String(),
		Description: t.Description.String(),
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
	}
}

func toTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

// taskIDFromPath parses the {id} route parameter. A non-numeric id cannot
// address any record, so it reports ErrTaskNotFound rather than a bad-request
// error.
func taskIDFromPath(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", taskdomain.ErrTaskNotFound, raw)
	}
	return id, nil
}
