package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	pkgvalidator "github.com/ghuser/taskdeck/pkg/validator"
	appsvcs "github.com/ghuser/taskdeck/services/task/application/services"
)

// EditTaskRequest is the request body for PUT /tasks/{id}. The id must match
// the path id; a mismatch is reported as not found.
type EditTaskRequest struct {
	ID          int64  `json:"id"           validate:"required"               example:"42"`
	Title       string `json:"title"        validate:"required,min=3,max=100" example:"Buy oat milk"`
	Description string `json:"description"  validate:"max=500"                example:"The barista kind"`
	IsCompleted bool   `json:"is_completed" example:"false"`
} // @name EditTaskRequest

// EditTaskHandler handles PUT /tasks/{id} requests.
type EditTaskHandler struct {
	svc *appsvcs.Services
}

// NewEditTaskHandler returns an EditTaskHandler backed by the given services.
func NewEditTaskHandler(svc *appsvcs.Services) *EditTaskHandler {
	return &EditTaskHandler{svc: svc}
}

// Execute replaces the title, description, and completion flag of one of the
// caller's tasks.
//
//	@Summary		Edit task
//	@Description	Full update of one of the authenticated user's tasks
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Task ID"
//	@Param			request	body		EditTaskRequest	true	"Task edit request"
//	@Success		200		{object}	TaskResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/tasks/{id} [put]
func (h *EditTaskHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	req, ok := pkgvalidator.ValidateRequest[EditTaskRequest](w, r)
	if !ok {
		return
	}

	task, err := h.svc.Task.Edit(r.Context(), userID, id, appsvcs.EditInput{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTaskResponse(task))
}
