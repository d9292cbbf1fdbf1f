package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	appsvcs "github.com/ghuser/taskdeck/services/task/application/services"
	"github.com/ghuser/taskdeck/services/task/domain/models"
)

// ListTasksHandler handles GET /tasks requests.
type ListTasksHandler struct {
	svc *appsvcs.Services
}

// NewListTasksHandler returns a ListTasksHandler backed by the given services.
func NewListTasksHandler(svc *appsvcs.Services) *ListTasksHandler {
	return &ListTasksHandler{svc: svc}
}

// Execute lists the caller's tasks, most recent first.
//
//	@Summary		List tasks
//	@Description	Lists the authenticated user's tasks, optionally filtered by completion status
//	@Tags			tasks
//	@Produce		json
//	@Param			filter	query		string	false	"all | completed | pending (unrecognized values behave as all)"
//	@Success		200		{array}		TaskResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/tasks [get]
func (h *ListTasksHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	filter := models.ParseStatusFilter(r.URL.Query().Get("filter"))

	tasks, err := h.svc.Task.List(r.Context(), userID, filter)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTaskResponses(tasks))
}
