package service

import (
	"context"
	"time"

	"github.com/dhamidullin/ds-test/internal/domain"
	"github.com/dhamidullin/ds-test/internal/repository"
	"github.com/dhamidullin/ds-test/internal/validate"
)

// CreateTaskRequest holds the data needed to create a new task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTaskRequest holds a partial update. Pointer fields distinguish a
// field being omitted from being set to its zero value (e.g. Completed
// explicitly set to false).
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TaskResponse is the transfer representation of a task: timestamps as
// RFC3339 strings, description omitted when empty (never null).
type TaskResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// TaskService contains the business logic for managing tasks. Not-found is
// reported as domain.ErrTaskNotFound, validation failures as
// *validate.ValidationError; anything else is unexpected.
type TaskService interface {
	ListTasks(ctx context.Context) ([]TaskResponse, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error)
	GetTaskByID(ctx context.Context, id uint) (*TaskResponse, error)
	UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, id uint) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService wires the service to a repository. Composition happens once
// at process startup; there is no runtime container.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) ListTasks(ctx context.Context) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, toResponse(&tasks[i]))
	}
	return responses, nil
}

func (s *taskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	input, err := validate.Create(req.Title, req.Description)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	resp := toResponse(task)
	return &resp, nil
}

func (s *taskService) GetTaskByID(ctx context.Context, id uint) (*TaskResponse, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(task)
	return &resp, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*TaskResponse, error) {
	input, err := validate.Update(req.Title, req.Description, req.Completed)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only supplied fields change; everything else keeps its stored value.
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	resp := toResponse(task)
	return &resp, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	return nil
}

func toResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
