package domain

import (
	"errors"
	"time"
)

// ErrTaskNotFound signals that an id did not resolve to a stored task.
// It is an expected outcome, not a failure; callers check it with errors.Is.
var ErrTaskNotFound = errors.New("task not found")

// Task is the persisted todo record. It deliberately does not embed
// gorm.Model: deletes are hard deletes, so there is no DeletedAt column.
type Task struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:500"`
	Completed   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}
