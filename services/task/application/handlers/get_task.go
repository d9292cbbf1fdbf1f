package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	appsvcs "github.com/ghuser/taskdeck/services/task/application/services"
)

// GetTaskHandler handles GET /tasks/{id} requests. The same representation
// backs the details, edit, and delete-confirmation views.
type GetTaskHandler struct {
	svc *appsvcs.Services
}

// NewGetTaskHandler returns a GetTaskHandler backed by the given services.
func NewGetTaskHandler(svc *appsvcs.Services) *GetTaskHandler {
	return &GetTaskHandler{svc: svc}
}

// Execute fetches one of the caller's tasks by id.
//
//	@Summary		Get task
//	@Description	Fetches one of the authenticated user's tasks; foreign-owned ids are reported as not found
//	@Tags			tasks
//	@Produce		json
//	@Param			id	path		int	true	"Task ID"
//	@Success		200	{object}	TaskResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/tasks/{id} [get]
func (h *GetTaskHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	task, err := h.svc.Task.GetByID(r.Context(), userID, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTaskResponse(task))
}
