package model

import "github.com/severinoia/central/internal/codec"

// Prompt is a saved LLM prompt template.
type Prompt struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	Category  string     `json:"category" db:"category"`
	CreatedAt codec.Time `json:"created_at" db:"created_at"`
}

func (p Prompt) RecordID() string { return p.ID }
