package dto

import (
	"encoding/json"
	"time"
)

// QueryAnsweredMessage is published on the in-process bus after every answer.
type QueryAnsweredMessage struct {
	UserId      string          `json:"user_id"`
	SessionId   string          `json:"session_id,omitempty"`
	Question    string          `json:"question"`
	DisplayText string          `json:"display_text"`
	Route       string          `json:"route"`
	Failure     string          `json:"failure"`
	Chart       json.RawMessage `json:"chart,omitempty"`
	DurationMs  int64           `json:"duration_ms"`
	AnsweredAt  time.Time       `json:"answered_at"`
}
