package client

import (
	"context"
	"errors"
	"net/http"
)

// State is the phase of an edit session.
type State int

const (
	StateInitial State = iota
	StateLoaded
	StateEditing
	StateSubmitting
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateLoaded:
		return "loaded"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled-back"
	default:
		return "unknown"
	}
}

// EditSession drives the optimistic update flow for one task: load the task
// into the cache, accumulate local edits, then submit. On submit the cache
// is overwritten with the edited value before the request completes; on
// failure it is reset to the pre-submit value and the failure is surfaced
// through the Notifier.
type EditSession struct {
	store  *Store
	notify Notifier
	id     uint

	state State
	task  *Task
	draft TaskUpdate
}

func NewEditSession(store *Store, notify Notifier, id uint) *EditSession {
	return &EditSession{store: store, notify: notify, id: id, state: StateInitial}
}

func (s *EditSession) State() State {
	return s.state
}

// Task returns the value the session currently shows: the cached task,
// optimistic or confirmed, or nil before a successful Load.
func (s *EditSession) Task() *Task {
	if v, ok := s.store.cache.get(taskPath(s.id)); ok {
		if task, ok := v.(Task); ok {
			return &task
		}
	}
	return s.task
}

// Load fetches the task through the store, filling the cache.
func (s *EditSession) Load(ctx context.Context) error {
	task, err := s.store.Task(ctx, s.id)
	if err != nil {
		return err
	}
	s.task = &task
	s.draft = TaskUpdate{}
	s.state = StateLoaded
	return nil
}

// Edit folds a field change into the local draft. No network activity.
func (s *EditSession) Edit(update TaskUpdate) {
	s.draft = s.draft.merge(update)
	s.state = StateEditing
}

// Submit sends the draft to the server. If no task is loaded it is a no-op.
// The cache immediately shows the edited value; on success the server's
// response is authoritative and replaces it, on failure the pre-submit value
// is restored. A stale in-flight submit is neither deduplicated nor
// cancelled; one submit per session at a time is expected.
func (s *EditSession) Submit(ctx context.Context) error {
	if s.task == nil {
		return nil
	}

	key := taskPath(s.id)
	previous := *s.task
	optimistic := s.draft.apply(previous)
	s.store.cache.set(key, optimistic)
	s.state = StateSubmitting

	updated, err := s.store.api.UpdateTask(ctx, s.id, s.draft)
	if err != nil {
		s.store.cache.set(key, previous)
		s.state = StateRolledBack
		s.notify.Error(submitErrorMessage(err))
		return err
	}

	s.store.cache.set(key, updated)
	s.store.cache.Invalidate(listKey)
	s.task = &updated
	s.draft = TaskUpdate{}
	s.state = StateCommitted
	s.notify.Success("Changes saved successfully")
	return nil
}

// submitErrorMessage distinguishes the three failure classes: client errors
// carry the server's message verbatim, server errors get a generic message,
// and transport failures get their own wording.
func submitErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status < http.StatusInternalServerError {
			return "Failed to save changes: " + apiErr.Message
		}
		return "Failed to save changes: An unknown server error occurred"
	}
	return "Failed to save changes: Could not reach the server"
}
