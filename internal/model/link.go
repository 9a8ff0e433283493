package model

import "github.com/severinoia/central/internal/codec"

// UsefulLink is a bookmarked URL with a category label.
type UsefulLink struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	URL         string     `json:"url" db:"url"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	CreatedAt   codec.Time `json:"created_at" db:"created_at"`
}

func (l UsefulLink) RecordID() string { return l.ID }
