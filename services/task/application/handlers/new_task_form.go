package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/httpx"
)

// NewTaskFormHandler handles GET /tasks/new requests.
type NewTaskFormHandler struct{}

// NewNewTaskFormHandler returns a NewTaskFormHandler.
func NewNewTaskFormHandler() *NewTaskFormHandler {
	return &NewTaskFormHandler{}
}

// Execute returns the empty create-form shape for the presentation layer.
//
//	@Summary		Create-task form shape
//	@Description	Returns an empty CreateTaskRequest for form rendering
//	@Tags			tasks
//	@Produce		json
//	@Success		200	{object}	CreateTaskRequest
//	@Failure		401	{object}	ErrorResponse
//	@Router			/tasks/new [get]
func (h *NewTaskFormHandler) Execute(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, CreateTaskRequest{})
}
