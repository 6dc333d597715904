package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// DocumentChunk is one embedded chunk of an indexed document. All chunks of
// one build share a GenerationId.
type DocumentChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GenerationId   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Source         string          `gorm:"type:varchar(255);not null"`
	Ordinal        int             `gorm:"not null;default:0"`
	Document       string          `gorm:"type:text;not null"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector"` // dimension depends on the embedding model
	CreatedAt      time.Time       `gorm:"autoCreateTime;index"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
