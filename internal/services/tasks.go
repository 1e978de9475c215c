package services

import (
	"context"

	"task-tracker/internal/apperror"
	"task-tracker/internal/models"
	"task-tracker/internal/repositories"
	"task-tracker/internal/validation"
)

type TaskService interface {
	CreateTask(ctx context.Context, input validation.Valid[models.TaskInput]) error
	GetTasks(ctx context.Context) ([]models.Task, error)
	CompleteTask(ctx context.Context, id int64) error
}

type TaskServiceImpl struct {
	repo repositories.TaskRepository
}

func NewTaskService(repo repositories.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{repo: repo}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, input validation.Valid[models.TaskInput]) error {
	return s.repo.Create(ctx, input)
}

func (s *TaskServiceImpl) GetTasks(ctx context.Context) ([]models.Task, error) {
	return s.repo.List(ctx)
}

// CompleteTask returns nil only for the call that actually completed the task.
// Later calls get an AlreadyCompleted error; unknown ids get NotFound.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, id int64) error {
	transitioned, err := s.repo.Complete(ctx, id)
	if err != nil {
		return err
	}
	if !transitioned {
		return apperror.AlreadyCompleted(id)
	}
	return nil
}
