package model

import "github.com/severinoia/central/internal/codec"

// Chat message roles, matching the completion API contract.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

// ChatMessage is a single entry in a conversation tab.
type ChatMessage struct {
	ID        string     `json:"id"`
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	CreatedAt codec.Time `json:"created_at"`
}

// ChatTab is one independent conversation. Initialized marks whether the
// welcome sequence has already played; clearing a tab resets it.
type ChatTab struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Messages    []ChatMessage `json:"messages"`
	Initialized bool          `json:"initialized"`
	CreatedAt   codec.Time    `json:"created_at"`
}
