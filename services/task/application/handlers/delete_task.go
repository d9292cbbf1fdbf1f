package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	appsvcs "github.com/ghuser/taskdeck/services/task/application/services"
)

// DeleteTaskHandler handles DELETE /tasks/{id} requests.
type DeleteTaskHandler struct {
	svc *appsvcs.Services
}

// NewDeleteTaskHandler returns a DeleteTaskHandler backed by the given services.
func NewDeleteTaskHandler(svc *appsvcs.Services) *DeleteTaskHandler {
	return &DeleteTaskHandler{svc: svc}
}

// Execute deletes one of the caller's tasks. Deleting an absent id succeeds
// silently, so repeated deletes are safe.
//
//	@Summary		Delete task
//	@Description	Idempotently deletes one of the authenticated user's tasks
//	@Tags			tasks
//	@Param			id	path	int	true	"Task ID"
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Router			/tasks/{id} [delete]
func (h *DeleteTaskHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, err := taskIDFromPath(r)
	if err != nil {
		// A non-numeric id addresses nothing; deletion of nothing succeeds.
		httpx.NoContent(w)
		return
	}

	if err := h.svc.Task.Delete(r.Context(), userID, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.NoContent(w)
}
