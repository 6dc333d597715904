package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentResponse struct {
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	Source       string    `json:"source"`
	GenerationId uuid.UUID `json:"generation_id"`
	Chunks       int       `json:"chunks"`
	IndexedAt    time.Time `json:"indexed_at"`
}

type DocumentStatusResponse struct {
	Loaded       bool       `json:"loaded"`
	Source       string     `json:"source,omitempty"`
	GenerationId *uuid.UUID `json:"generation_id,omitempty"`
	Chunks       int        `json:"chunks"`
	IndexedAt    *time.Time `json:"indexed_at,omitempty"`
}
