package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dhamidullin/ds-test/internal/domain"
)

// memoryTaskRepository keeps tasks in a process-local map. It backs the
// development mode when no DATABASE_URL is configured, and doubles as the
// repository used by the service and handler tests.
type memoryTaskRepository struct {
	mu     sync.RWMutex
	tasks  map[uint]domain.Task
	nextID uint
}

func NewMemoryTaskRepository() TaskRepository {
	return &memoryTaskRepository{tasks: make(map[uint]domain.Task), nextID: 1}
}

func (r *memoryTaskRepository) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	task.ID = r.nextID
	task.CreatedAt = now
	task.UpdatedAt = now
	r.nextID++
	r.tasks[task.ID] = *task
	return nil
}

func (r *memoryTaskRepository) FindByID(_ context.Context, id uint) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *memoryTaskRepository) FindAll(_ context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memoryTaskRepository) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now().UTC()
	r.tasks[task.ID] = *task
	return nil
}

func (r *memoryTaskRepository) Delete(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}
