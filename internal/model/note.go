package model

import "github.com/severinoia/central/internal/codec"

// Note is a free-form text note. Content may be empty but is always present.
type Note struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	CreatedAt codec.Time `json:"created_at" db:"created_at"`
	UpdatedAt codec.Time `json:"updated_at" db:"updated_at"`
}

func (n Note) RecordID() string { return n.ID }
