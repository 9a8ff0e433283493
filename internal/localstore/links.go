package localstore

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

// LinkStore owns the useful links collection.
type LinkStore struct {
	c *Collection[model.UsefulLink]
}

// NewLinkStore creates the links store backed by kv.
func NewLinkStore(kv KV, log zerolog.Logger) *LinkStore {
	return &LinkStore{c: NewCollection("useful_links", kv, log,
		func(l *model.UsefulLink) {
			if l.ID == "" {
				l.ID = uuid.New().String()
			}
			if l.CreatedAt.IsZero() {
				l.CreatedAt = codec.Now()
			}
		},
		nil,
	)}
}

// List returns all links, most recently created first.
func (s *LinkStore) List() ([]model.UsefulLink, error) {
	return s.c.List()
}

// ListByCategory returns links in the given category.
func (s *LinkStore) ListByCategory(category string) ([]model.UsefulLink, error) {
	links, err := s.c.List()
	if err != nil {
		return nil, err
	}
	out := links[:0:0]
	for _, l := range links {
		if l.Category == category {
			out = append(out, l)
		}
	}
	return out, nil
}

// Add creates a new link.
func (s *LinkStore) Add(title, url, description, category string) (model.UsefulLink, error) {
	return s.c.Add(model.UsefulLink{
		Title:       title,
		URL:         url,
		Description: description,
		Category:    category,
	})
}

// LinkPatch is a partial update to a link.
type LinkPatch struct {
	Title       *string
	URL         *string
	Description *string
	Category    *string
}

// Apply merges the patch into l.
func (p LinkPatch) Apply(l *model.UsefulLink) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.URL != nil {
		l.URL = *p.URL
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
}

// Update applies the patch to the link with the given id.
func (s *LinkStore) Update(id string, p LinkPatch) (model.UsefulLink, bool, error) {
	return s.c.Update(id, func(l *model.UsefulLink) { p.Apply(l) })
}

// Delete removes a link, reporting whether one existed.
func (s *LinkStore) Delete(id string) (bool, error) {
	return s.c.Remove(id)
}

// Snapshot returns the current state for migration.
func (s *LinkStore) Snapshot() ([]model.UsefulLink, error) {
	return s.c.Snapshot()
}
