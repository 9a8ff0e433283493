package model

import "github.com/severinoia/central/internal/codec"

// Idea is a captured thought or project seed.
type Idea struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	CreatedAt   codec.Time `json:"created_at" db:"created_at"`
}

func (i Idea) RecordID() string { return i.ID }
