package localstore

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

// TaskStore owns the tasks collection.
type TaskStore struct {
	c *Collection[model.Task]
}

// NewTaskStore creates the tasks store backed by kv.
func NewTaskStore(kv KV, log zerolog.Logger) *TaskStore {
	return &TaskStore{c: NewCollection("tasks", kv, log,
		func(t *model.Task) {
			if t.ID == "" {
				t.ID = uuid.New().String()
			}
			if t.CreatedAt.IsZero() {
				t.CreatedAt = codec.Now()
			}
			if t.Status == "" {
				t.Status = model.TaskStatusPending
			}
		},
		nil,
	)}
}

// List returns all tasks, most recently created first.
func (s *TaskStore) List() ([]model.Task, error) {
	return s.c.List()
}

// ListByStatus returns tasks with the given status.
func (s *TaskStore) ListByStatus(status string) ([]model.Task, error) {
	tasks, err := s.c.List()
	if err != nil {
		return nil, err
	}
	out := tasks[:0:0]
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

// DueToday returns tasks whose due date falls on the current day.
// Comparison is at day granularity.
func (s *TaskStore) DueToday() ([]model.Task, error) {
	tasks, err := s.c.List()
	if err != nil {
		return nil, err
	}
	today := codec.Now()
	out := tasks[:0:0]
	for _, t := range tasks {
		if t.DueDate != nil && t.DueDate.SameDay(today) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Add creates a new task in pending status.
func (s *TaskStore) Add(title, description string, due *codec.Time) (model.Task, error) {
	return s.c.Add(model.Task{Title: title, Description: description, DueDate: due})
}

// TaskPatch is a partial update to a task.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *codec.Time
}

// Apply merges the patch into t.
func (p TaskPatch) Apply(t *model.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
}

// Update applies the patch to the task with the given id.
func (s *TaskStore) Update(id string, p TaskPatch) (model.Task, bool, error) {
	return s.c.Update(id, func(t *model.Task) { p.Apply(t) })
}

// UpdateStatus moves a task to the given status.
func (s *TaskStore) UpdateStatus(id, status string) (model.Task, bool, error) {
	return s.Update(id, TaskPatch{Status: &status})
}

// Delete removes a task, reporting whether one existed.
func (s *TaskStore) Delete(id string) (bool, error) {
	return s.c.Remove(id)
}

// Snapshot returns the current state for migration.
func (s *TaskStore) Snapshot() ([]model.Task, error) {
	return s.c.Snapshot()
}
