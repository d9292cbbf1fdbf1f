package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	appsvcs "github.com/ghuser/taskdeck/services/task/application/services"
)

// ToggleTaskHandler handles POST /tasks/{id}/toggle requests.
type ToggleTaskHandler struct {
	svc *appsvcs.Services
}

// NewToggleTaskHandler returns a ToggleTaskHandler backed by the given services.
func NewToggleTaskHandler(svc *appsvcs.Services) *ToggleTaskHandler {
	return &ToggleTaskHandler{svc: svc}
}

// Execute flips the completion flag of one of the caller's tasks.
//
//	@Summary		Toggle task completion
//	@Description	Flips the completion flag; toggling an absent task is not found, never a create
//	@Tags			tasks
//	@Produce		json
//	@Param			id	path		int	true	"Task ID"
//	@Success		200	{object}	TaskResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/tasks/{id}/toggle [post]
func (h *ToggleTaskHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, err := taskIDFromPath(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	task, err := h.svc.Task.ToggleComplete(r.Context(), userID, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTaskResponse(task))
}
