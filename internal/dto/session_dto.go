package dto

import (
	"encoding/json"
	"time"
)

type ChatTurnDTO struct {
	Role    string          `json:"role" validate:"required,oneof=user assistant"`
	Content string          `json:"content"`
	Chart   json.RawMessage `json:"chart,omitempty"`
}

type SaveSessionRequest struct {
	ChatHistory []ChatTurnDTO `json:"chat_history" validate:"dive"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type SessionSummaryResponse struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SessionResponse struct {
	Id          string        `json:"id"`
	Title       string        `json:"title"`
	ChatHistory []ChatTurnDTO `json:"chat_history"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
