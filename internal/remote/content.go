package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/severinoia/central/internal/model"
)

// InsertNote inserts a note row for the given user.
func (s *Store) InsertNote(ctx context.Context, userID string, n model.Note) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (user_id, id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, n.ID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting note %s: %w", n.ID, err)
	}
	return nil
}

// UpdateNote replaces a note's mutable fields. Reports found=false when
// the id does not exist for this user.
func (s *Store) UpdateNote(ctx context.Context, userID string, n model.Note) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE notes SET title = ?, content = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		n.Title, n.Content, n.UpdatedAt, userID, n.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating note %s: %w", n.ID, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteNote removes a note row, reporting whether one existed.
func (s *Store) DeleteNote(ctx context.Context, userID, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM notes WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, fmt.Errorf("deleting note %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetNote retrieves a single note.
func (s *Store) GetNote(ctx context.Context, userID, id string) (model.Note, bool, error) {
	var n model.Note
	err := s.db.GetContext(ctx, &n, `
		SELECT id, title, content, created_at, updated_at
		FROM notes WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, false, nil
	}
	if err != nil {
		return model.Note{}, false, fmt.Errorf("getting note %s: %w", id, err)
	}
	return n, true, nil
}

// ListNotes returns the user's notes, most recently created first.
func (s *Store) ListNotes(ctx context.Context, userID string) ([]model.Note, error) {
	var notes []model.Note
	err := s.db.SelectContext(ctx, &notes, `
		SELECT id, title, content, created_at, updated_at
		FROM notes WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	return notes, nil
}

// InsertTask inserts a task row for the given user.
func (s *Store) InsertTask(ctx context.Context, userID string, t model.Task) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (user_id, id, title, description, status, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, t.ID, t.Title, t.Description, t.Status, t.DueDate, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting task %s: %w", t.ID, err)
	}
	return nil
}

// UpdateTask replaces a task's mutable fields.
func (s *Store) UpdateTask(ctx context.Context, userID string, t model.Task) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, status = ?, due_date = ?
		WHERE user_id = ? AND id = ?`,
		t.Title, t.Description, t.Status, t.DueDate, userID, t.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating task %s: %w", t.ID, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteTask removes a task row, reporting whether one existed.
func (s *Store) DeleteTask(ctx context.Context, userID, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetTask retrieves a single task.
func (s *Store) GetTask(ctx context.Context, userID, id string) (model.Task, bool, error) {
	var t model.Task
	err := s.db.GetContext(ctx, &t, `
		SELECT id, title, description, status, due_date, created_at
		FROM tasks WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, false, nil
	}
	if err != nil {
		return model.Task{}, false, fmt.Errorf("getting task %s: %w", id, err)
	}
	return t, true, nil
}

// ListTasks returns the user's tasks, most recently created first.
func (s *Store) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	err := s.db.SelectContext(ctx, &tasks, `
		SELECT id, title, description, status, due_date, created_at
		FROM tasks WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	return tasks, nil
}

// InsertLink inserts a useful link row for the given user.
func (s *Store) InsertLink(ctx context.Context, userID string, l model.UsefulLink) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO useful_links (user_id, id, title, url, description, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, l.ID, l.Title, l.URL, l.Description, l.Category, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting link %s: %w", l.ID, err)
	}
	return nil
}

// UpdateLink replaces a link's mutable fields.
func (s *Store) UpdateLink(ctx context.Context, userID string, l model.UsefulLink) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE useful_links SET title = ?, url = ?, description = ?, category = ?
		WHERE user_id = ? AND id = ?`,
		l.Title, l.URL, l.Description, l.Category, userID, l.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating link %s: %w", l.ID, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteLink removes a link row, reporting whether one existed.
func (s *Store) DeleteLink(ctx context.Context, userID, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM useful_links WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, fmt.Errorf("deleting link %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetLink retrieves a single link.
func (s *Store) GetLink(ctx context.Context, userID, id string) (model.UsefulLink, bool, error) {
	var l model.UsefulLink
	err := s.db.GetContext(ctx, &l, `
		SELECT id, title, url, description, category, created_at
		FROM useful_links WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UsefulLink{}, false, nil
	}
	if err != nil {
		return model.UsefulLink{}, false, fmt.Errorf("getting link %s: %w", id, err)
	}
	return l, true, nil
}

// ListLinks returns the user's links, most recently created first.
func (s *Store) ListLinks(ctx context.Context, userID string) ([]model.UsefulLink, error) {
	var links []model.UsefulLink
	err := s.db.SelectContext(ctx, &links, `
		SELECT id, title, url, description, category, created_at
		FROM useful_links WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	return links, nil
}

// InsertIdea inserts an idea row for the given user.
func (s *Store) InsertIdea(ctx context.Context, userID string, i model.Idea) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ideas (user_id, id, title, description, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, i.ID, i.Title, i.Description, i.Category, i.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting idea %s: %w", i.ID, err)
	}
	return nil
}

// UpdateIdea replaces an idea's mutable fields.
func (s *Store) UpdateIdea(ctx context.Context, userID string, i model.Idea) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE ideas SET title = ?, description = ?, category = ?
		WHERE user_id = ? AND id = ?`,
		i.Title, i.Description, i.Category, userID, i.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating idea %s: %w", i.ID, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteIdea removes an idea row, reporting whether one existed.
func (s *Store) DeleteIdea(ctx context.Context, userID, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM ideas WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, fmt.Errorf("deleting idea %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetIdea retrieves a single idea.
func (s *Store) GetIdea(ctx context.Context, userID, id string) (model.Idea, bool, error) {
	var i model.Idea
	err := s.db.GetContext(ctx, &i, `
		SELECT id, title, description, category, created_at
		FROM ideas WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Idea{}, false, nil
	}
	if err != nil {
		return model.Idea{}, false, fmt.Errorf("getting idea %s: %w", id, err)
	}
	return i, true, nil
}

// ListIdeas returns the user's ideas, most recently created first.
func (s *Store) ListIdeas(ctx context.Context, userID string) ([]model.Idea, error) {
	var ideas []model.Idea
	err := s.db.SelectContext(ctx, &ideas, `
		SELECT id, title, description, category, created_at
		FROM ideas WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying ideas: %w", err)
	}
	return ideas, nil
}

// InsertPrompt inserts a prompt row for the given user.
func (s *Store) InsertPrompt(ctx context.Context, userID string, p model.Prompt) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prompts (user_id, id, title, content, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, p.ID, p.Title, p.Content, p.Category, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting prompt %s: %w", p.ID, err)
	}
	return nil
}

// UpdatePrompt replaces a prompt's mutable fields.
func (s *Store) UpdatePrompt(ctx context.Context, userID string, p model.Prompt) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE prompts SET title = ?, content = ?, category = ?
		WHERE user_id = ? AND id = ?`,
		p.Title, p.Content, p.Category, userID, p.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating prompt %s: %w", p.ID, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeletePrompt removes a prompt row, reporting whether one existed.
func (s *Store) DeletePrompt(ctx context.Context, userID, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM prompts WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return false, fmt.Errorf("deleting prompt %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// GetPrompt retrieves a single prompt.
func (s *Store) GetPrompt(ctx context.Context, userID, id string) (model.Prompt, bool, error) {
	var p model.Prompt
	err := s.db.GetContext(ctx, &p, `
		SELECT id, title, content, category, created_at
		FROM prompts WHERE user_id = ? AND id = ?`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Prompt{}, false, nil
	}
	if err != nil {
		return model.Prompt{}, false, fmt.Errorf("getting prompt %s: %w", id, err)
	}
	return p, true, nil
}

// ListPrompts returns the user's prompts, most recently created first.
func (s *Store) ListPrompts(ctx context.Context, userID string) ([]model.Prompt, error) {
	var prompts []model.Prompt
	err := s.db.SelectContext(ctx, &prompts, `
		SELECT id, title, content, category, created_at
		FROM prompts WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying prompts: %w", err)
	}
	return prompts, nil
}
