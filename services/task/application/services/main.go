package services

import (
	"github.com/ghuser/taskdeck/pkg/app"
	"github.com/ghuser/taskdeck/pkg/cache"
	"github.com/ghuser/taskdeck/services/task/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Task *TaskService
}

// New wires all task application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewTaskRepository(a.Db, a.EventBus)
	taskCache := cache.NewTaskCache(a.Redis)
	return &Services{
		Task: NewTaskService(repo, taskCache, a.EventBus, a.Logger),
	}
}
