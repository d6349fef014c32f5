// Package validate rejects malformed task input before it reaches
// persistence. Validation failures are a distinct error kind from
// not-found and from unexpected errors, so handlers can map them to 400.
package validate

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

// ValidationError carries the specific constraint that was violated. The
// message is safe to surface to clients verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidation reports whether err is a validation failure.
func AsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// CreateTaskInput is a validated, normalized creation payload.
type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput is a validated partial-update payload. Nil fields were
// not supplied and must leave the stored value untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Create validates a creation payload. Title is trimmed before the length
// checks; the trimmed value is what gets persisted.
func Create(title, description string) (CreateTaskInput, error) {
	t, err := checkTitle(title)
	if err != nil {
		return CreateTaskInput{}, err
	}
	if err := checkDescription(description); err != nil {
		return CreateTaskInput{}, err
	}
	return CreateTaskInput{Title: t, Description: description}, nil
}

// Update validates a partial-update payload. Every field is optional, but
// any supplied field must satisfy the same constraints as on creation.
func Update(title, description *string, completed *bool) (UpdateTaskInput, error) {
	out := UpdateTaskInput{Description: description, Completed: completed}
	if title != nil {
		t, err := checkTitle(*title)
		if err != nil {
			return UpdateTaskInput{}, err
		}
		out.Title = &t
	}
	if description != nil {
		if err := checkDescription(*description); err != nil {
			return UpdateTaskInput{}, err
		}
	}
	return out, nil
}

// TaskID coerces a path parameter to a positive integer id.
func TaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, &ValidationError{Field: "id", Message: "Task ID must be a positive number"}
	}
	return uint(id), nil
}

func checkTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", &ValidationError{Field: "title", Message: "Title is required"}
	}
	if utf8.RuneCountInString(t) > maxTitleLen {
		return "", &ValidationError{Field: "title", Message: "Title is too long"}
	}
	return t, nil
}

func checkDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return &ValidationError{Field: "description", Message: "Description is too long"}
	}
	return nil
}
