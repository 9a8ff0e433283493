package localstore

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

// PromptStore owns the saved prompts collection.
type PromptStore struct {
	c *Collection[model.Prompt]
}

// NewPromptStore creates the prompts store backed by kv.
func NewPromptStore(kv KV, log zerolog.Logger) *PromptStore {
	return &PromptStore{c: NewCollection("prompts", kv, log,
		func(p *model.Prompt) {
			if p.ID == "" {
				p.ID = uuid.New().String()
			}
			if p.CreatedAt.IsZero() {
				p.CreatedAt = codec.Now()
			}
		},
		nil,
	)}
}

// List returns all prompts, most recently created first.
func (s *PromptStore) List() ([]model.Prompt, error) {
	return s.c.List()
}

// ListByCategory returns prompts in the given category.
func (s *PromptStore) ListByCategory(category string) ([]model.Prompt, error) {
	prompts, err := s.c.List()
	if err != nil {
		return nil, err
	}
	out := prompts[:0:0]
	for _, p := range prompts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// Add creates a new saved prompt.
func (s *PromptStore) Add(title, content, category string) (model.Prompt, error) {
	return s.c.Add(model.Prompt{Title: title, Content: content, Category: category})
}

// PromptPatch is a partial update to a prompt.
type PromptPatch struct {
	Title    *string
	Content  *string
	Category *string
}

// Apply merges the patch into pr.
func (p PromptPatch) Apply(pr *model.Prompt) {
	if p.Title != nil {
		pr.Title = *p.Title
	}
	if p.Content != nil {
		pr.Content = *p.Content
	}
	if p.Category != nil {
		pr.Category = *p.Category
	}
}

// Update applies the patch to the prompt with the given id.
func (s *PromptStore) Update(id string, p PromptPatch) (model.Prompt, bool, error) {
	return s.c.Update(id, func(pr *model.Prompt) { p.Apply(pr) })
}

// Delete removes a prompt, reporting whether one existed.
func (s *PromptStore) Delete(id string) (bool, error) {
	return s.c.Remove(id)
}

// Snapshot returns the current state for migration.
func (s *PromptStore) Snapshot() ([]model.Prompt, error) {
	return s.c.Snapshot()
}
