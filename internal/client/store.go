package client

import "context"

const listKey = "/tasks"

// Store layers the read cache over the API client: reads are served from
// the cache when possible, writes refresh the keys they affect on success.
type Store struct {
	api   *Client
	cache *Cache
}

func NewStore(api *Client) *Store {
	return &Store{api: api, cache: NewCache()}
}

// Cache exposes the underlying cache, mainly so callers can invalidate
// keys explicitly.
func (s *Store) Cache() *Cache {
	return s.cache
}

// Tasks returns the cached task list, fetching it on a miss.
func (s *Store) Tasks(ctx context.Context) ([]Task, error) {
	if v, ok := s.cache.get(listKey); ok {
		if tasks, ok := v.([]Task); ok {
			return tasks, nil
		}
	}
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.set(listKey, tasks)
	return tasks, nil
}

// Task returns the cached task for the id, fetching it on a miss.
func (s *Store) Task(ctx context.Context, id uint) (Task, error) {
	key := taskPath(id)
	if v, ok := s.cache.get(key); ok {
		if task, ok := v.(Task); ok {
			return task, nil
		}
	}
	task, err := s.api.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}
	s.cache.set(key, task)
	return task, nil
}

// CreateTask creates a task and invalidates the list so the next read picks
// the new row up.
func (s *Store) CreateTask(ctx context.Context, data TaskCreation) (Task, error) {
	task, err := s.api.CreateTask(ctx, data)
	if err != nil {
		return Task{}, err
	}
	s.cache.Invalidate(listKey)
	return task, nil
}

// UpdateTask applies a partial update, caches the server's version of the
// task and invalidates the list.
func (s *Store) UpdateTask(ctx context.Context, id uint, data TaskUpdate) (Task, error) {
	task, err := s.api.UpdateTask(ctx, id, data)
	if err != nil {
		return Task{}, err
	}
	s.cache.set(taskPath(id), task)
	s.cache.Invalidate(listKey)
	return task, nil
}

// DeleteTask removes the task and drops both its cache entry and the list.
func (s *Store) DeleteTask(ctx context.Context, id uint) error {
	if err := s.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(taskPath(id), listKey)
	return nil
}
