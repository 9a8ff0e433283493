package localstore

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

// IdeaStore owns the ideas collection.
type IdeaStore struct {
	c *Collection[model.Idea]
}

// NewIdeaStore creates the ideas store backed by kv.
func NewIdeaStore(kv KV, log zerolog.Logger) *IdeaStore {
	return &IdeaStore{c: NewCollection("ideas", kv, log,
		func(i *model.Idea) {
			if i.ID == "" {
				i.ID = uuid.New().String()
			}
			if i.CreatedAt.IsZero() {
				i.CreatedAt = codec.Now()
			}
		},
		nil,
	)}
}

// List returns all ideas, most recently created first.
func (s *IdeaStore) List() ([]model.Idea, error) {
	return s.c.List()
}

// ListByCategory returns ideas in the given category.
func (s *IdeaStore) ListByCategory(category string) ([]model.Idea, error) {
	ideas, err := s.c.List()
	if err != nil {
		return nil, err
	}
	out := ideas[:0:0]
	for _, i := range ideas {
		if i.Category == category {
			out = append(out, i)
		}
	}
	return out, nil
}

// Add creates a new idea.
func (s *IdeaStore) Add(title, description, category string) (model.Idea, error) {
	return s.c.Add(model.Idea{Title: title, Description: description, Category: category})
}

// IdeaPatch is a partial update to an idea.
type IdeaPatch struct {
	Title       *string
	Description *string
	Category    *string
}

// Apply merges the patch into i.
func (p IdeaPatch) Apply(i *model.Idea) {
	if p.Title != nil {
		i.Title = *p.Title
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
}

// Update applies the patch to the idea with the given id.
func (s *IdeaStore) Update(id string, p IdeaPatch) (model.Idea, bool, error) {
	return s.c.Update(id, func(i *model.Idea) { p.Apply(i) })
}

// Delete removes an idea, reporting whether one existed.
func (s *IdeaStore) Delete(id string) (bool, error) {
	return s.c.Remove(id)
}

// Snapshot returns the current state for migration.
func (s *IdeaStore) Snapshot() ([]model.Idea, error) {
	return s.c.Snapshot()
}
