package model

import "github.com/severinoia/central/internal/codec"

// Task status constants.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// Task is a user-created to-do item with an optional due date.
type Task struct {
	ID          string      `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Status      string      `json:"status" db:"status"`
	DueDate     *codec.Time `json:"due_date,omitempty" db:"due_date"`
	CreatedAt   codec.Time  `json:"created_at" db:"created_at"`
}

func (t Task) RecordID() string { return t.ID }

// IsCompleted reports whether the task has reached its terminal status.
func (t Task) IsCompleted() bool { return t.Status == TaskStatusCompleted }
