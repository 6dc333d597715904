package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type QueryLog struct {
	Id          uuid.UUID
	UserId      string
	SessionId   *string
	Question    string
	DisplayText string
	Route       string
	Failure     string
	Chart       json.RawMessage
	DurationMs  int64
	CreatedAt   time.Time
}
