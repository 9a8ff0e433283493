package localstore

import (
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/codec"
	"github.com/severinoia/central/internal/model"
)

// NoteStore owns the notes collection.
type NoteStore struct {
	c *Collection[model.Note]
}

// NewNoteStore creates the notes store backed by kv.
func NewNoteStore(kv KV, log zerolog.Logger) *NoteStore {
	return &NoteStore{c: NewCollection("notes", kv, log,
		func(n *model.Note) {
			if n.ID == "" {
				n.ID = uuid.New().String()
			}
			if n.CreatedAt.IsZero() {
				now := codec.Now()
				n.CreatedAt = now
				n.UpdatedAt = now
			}
		},
		func(n *model.Note) { n.UpdatedAt = codec.Now() },
	)}
}

// List returns all notes, most recently created first.
func (s *NoteStore) List() ([]model.Note, error) {
	return s.c.List()
}

// ListRecentlyUpdated returns all notes sorted by last update, newest first.
func (s *NoteStore) ListRecentlyUpdated() ([]model.Note, error) {
	notes, err := s.c.List()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt.Time)
	})
	return notes, nil
}

// Add creates a new note.
func (s *NoteStore) Add(title, content string) (model.Note, error) {
	return s.c.Add(model.Note{Title: title, Content: content})
}

// NotePatch is a partial update to a note.
type NotePatch struct {
	Title   *string
	Content *string
}

// Apply merges the patch into n.
func (p NotePatch) Apply(n *model.Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
}

// Update applies the patch to the note with the given id.
func (s *NoteStore) Update(id string, p NotePatch) (model.Note, bool, error) {
	return s.c.Update(id, func(n *model.Note) { p.Apply(n) })
}

// Delete removes a note, reporting whether one existed.
func (s *NoteStore) Delete(id string) (bool, error) {
	return s.c.Remove(id)
}

// Snapshot returns the current state for migration.
func (s *NoteStore) Snapshot() ([]model.Note, error) {
	return s.c.Snapshot()
}
