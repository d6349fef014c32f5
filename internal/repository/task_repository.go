package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dhamidullin/ds-test/internal/domain"
)

// TaskRepository defines the data operations for tasks. Absence is signalled
// with domain.ErrTaskNotFound (or false from Delete), never with a panic or
// an opaque driver error.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uint) (*domain.Task, error)
	// FindAll returns every task ordered newest-first by creation time.
	FindAll(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	// Delete removes the task and reports whether a row existed.
	Delete(ctx context.Context, id uint) (bool, error)
}

// gormTaskRepository implements TaskRepository on a GORM connection.
type gormTaskRepository struct {
	db *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *gormTaskRepository) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}
	return &task, nil
}

func (r *gormTaskRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	// id DESC breaks ties between rows created within the same timestamp tick.
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *gormTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	// Save writes all fields and refreshes UpdatedAt via autoUpdateTime.
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("update task %d: %w", task.ID, err)
	}
	return nil
}

func (r *gormTaskRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete task %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
