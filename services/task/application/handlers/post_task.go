package handlers

import (
	"net/http"

	"github.com/ghuser/taskdeck/pkg/auth"
	"github.com/ghuser/taskdeck/pkg/errhttp"
	"github.com/ghuser/taskdeck/pkg/httpx"
	pkgvalidator "github.com/ghuser/taskdeck/pkg/validator"
	appsvcs "github.com/ghuser/taskdeck/services/task/application/services"
)

// CreateTaskRequest is the request body for POST /tasks.
// Its zero value doubles as the empty form shape served by GET /tasks/new.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,min=3,max=100" example:"Buy milk"`
	Description string `json:"description" validate:"max=500"                example:"Semi-skimmed, two bottles"`
} // @name CreateTaskRequest

// CreateTaskHandler handles POST /tasks requests.
type CreateTaskHandler struct {
	svc *appsvcs.Services
}

// NewCreateTaskHandler returns a CreateTaskHandler backed by the given services.
func NewCreateTaskHandler(svc *appsvcs.Services) *CreateTaskHandler {
	return &CreateTaskHandler{svc: svc}
}

// Execute creates a new pending task owned by the caller.
//
//	@Summary		Create task
//	@Description	Creates a new pending task owned by the authenticated user
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateTaskRequest	true	"Task creation request"
//	@Success		201		{object}	TaskResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/tasks [post]
func (h *CreateTaskHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateTaskRequest](w, r)
	if !ok {
		return
	}

	task, err := h.svc.Task.Create(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toTaskResponse(task))
}
