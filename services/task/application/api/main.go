package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/taskdeck/pkg/app"
	"github.com/ghuser/taskdeck/services/task/application/handlers"
	appsvcs "github.com/ghuser/taskdeck/services/task/application/services"
)

// TaskRoutes registers task endpoints on the provided chi router.
func TaskRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", handlers.NewListTasksHandler(svcs).Execute)
			r.Post("/", handlers.NewCreateTaskHandler(svcs).Execute)
			r.Get("/new", handlers.NewNewTaskFormHandler().Execute)
			r.Get("/{id}", handlers.NewGetTaskHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewEditTaskHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteTaskHandler(svcs).Execute)
			r.Post("/{id}/toggle", handlers.NewToggleTaskHandler(svcs).Execute)
		})
	})
}
