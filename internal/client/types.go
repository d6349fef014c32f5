package client

// Task is the wire shape of a task as the API serves it. Timestamps stay
// RFC3339 strings; description is omitted by the server when empty.
type Task struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// TaskCreation is the payload for creating a task.
type TaskCreation struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// TaskUpdate is a partial update; nil fields are left out of the request
// body and keep their server-side values.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// apply merges the supplied fields over a base task, producing the value the
// edit session shows optimistically before the server confirms.
func (u TaskUpdate) apply(base Task) Task {
	out := base
	if u.Title != nil {
		out.Title = *u.Title
	}
	if u.Description != nil {
		out.Description = *u.Description
	}
	if u.Completed != nil {
		out.Completed = *u.Completed
	}
	return out
}

// merge folds a later edit into an accumulated draft.
func (u TaskUpdate) merge(next TaskUpdate) TaskUpdate {
	out := u
	if next.Title != nil {
		out.Title = next.Title
	}
	if next.Description != nil {
		out.Description = next.Description
	}
	if next.Completed != nil {
		out.Completed = next.Completed
	}
	return out
}
