package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id             uuid.UUID
	GenerationId   uuid.UUID
	Source         string
	Ordinal        int
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
}

// ScoredDocumentChunk pairs a chunk with its cosine similarity to a query.
type ScoredDocumentChunk struct {
	Chunk      *DocumentChunk
	Similarity float64
}

// GenerationInfo summarizes one stored generation.
type GenerationInfo struct {
	GenerationId uuid.UUID
	Source       string
	ChunkCount   int
	Dimensions   int
	BuiltAt      time.Time
}
