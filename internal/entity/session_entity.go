package entity

import (
	"encoding/json"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message of a chat. Chart holds the serialized chart
// payload so the client can re-render it later.
type ConversationTurn struct {
	Role    string          `json:"role"`
	Content string          `json:"content"`
	Chart   json.RawMessage `json:"chart,omitempty"`
}

type Session struct {
	Id        string             `json:"id"`
	UserId    string             `json:"user_id"`
	Title     string             `json:"title"`
	Turns     []ConversationTurn `json:"messages"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type SessionSummary struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}
