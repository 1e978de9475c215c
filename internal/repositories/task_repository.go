package repositories

import (
	"context"
	"errors"
	"fmt"

	"task-tracker/internal/apperror"
	"task-tracker/internal/models"
	"task-tracker/internal/validation"

	"gorm.io/gorm"
)

var errUnvalidated = errors.New("task input was not produced by validation.Validate")

type TaskRepository interface {
	Create(ctx context.Context, input validation.Valid[models.TaskInput]) error
	List(ctx context.Context) ([]models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	Complete(ctx context.Context, id int64) (bool, error)
}

// GormTaskRepository keeps no state of its own beyond the shared pool handle.
// Every method holds exactly one pooled connection for its duration.
type GormTaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// withConn runs fn on a dedicated pooled connection that is released on return.
// fn receives a NewDB session, so each chain it starts builds its own statement
// while still running on that connection. Errors from fn are already
// classified; anything else came from acquiring the connection and is reported
// as the pool being unavailable.
func (r *GormTaskRepository) withConn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(conn.Session(&gorm.Session{NewDB: true}))
	})
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Unavailable(err)
}

func (r *GormTaskRepository) Create(ctx context.Context, input validation.Valid[models.TaskInput]) error {
	if !input.Sealed() {
		return apperror.Store(errUnvalidated)
	}
	task := input.Value()

	return r.withConn(ctx, func(tx *gorm.DB) error {
		err := tx.Exec("INSERT INTO tasks (person, description) VALUES (?, ?)",
			task.Person, task.Description).Error
		if err != nil {
			return apperror.Store(fmt.Errorf("insert task: %w", err))
		}
		return nil
	})
}

func (r *GormTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.withConn(ctx, func(tx *gorm.DB) error {
		if err := tx.Order("created_at DESC").Order("id DESC").Find(&tasks).Error; err != nil {
			return apperror.Store(fmt.Errorf("list tasks: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get returns nil, nil when no task has the given id.
func (r *GormTaskRepository) Get(ctx context.Context, id int64) (*models.Task, error) {
	var tasks []models.Task
	err := r.withConn(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Limit(1).Find(&tasks).Error; err != nil {
			return apperror.Store(fmt.Errorf("get task %d: %w", id, err))
		}
		return nil
	})
	if err != nil || len(tasks) == 0 {
		return nil, err
	}
	return &tasks[0], nil
}

// Complete sets completed_at with one conditional UPDATE, so of any number of
// concurrent callers only one sees true. It reports false for a task that was
// already completed and a not-found error for an unknown id.
func (r *GormTaskRepository) Complete(ctx context.Context, id int64) (bool, error) {
	transitioned := false
	err := r.withConn(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.Task{}).
			Where("id = ? AND completed_at IS NULL", id).
			Update("completed_at", gorm.Expr("CURRENT_TIMESTAMP"))
		if result.Error != nil {
			return apperror.Store(fmt.Errorf("complete task %d: %w", id, result.Error))
		}
		if result.RowsAffected == 1 {
			transitioned = true
			return nil
		}

		var count int64
		if err := tx.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return apperror.Store(fmt.Errorf("probe task %d: %w", id, err))
		}
		if count == 0 {
			return apperror.NotFound(id)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return transitioned, nil
}
