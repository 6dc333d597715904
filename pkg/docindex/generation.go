package docindex

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Chunk is one overlapping slice of the source document.
type Chunk struct {
	Ordinal int
	Text    string
	Vector  []float32
}

type ScoredChunk struct {
	Chunk
	Score float64
}

// Generation is the complete index of one document. It is immutable once
// published.
type Generation struct {
	ID         uuid.UUID
	Source     string
	Chunks     []Chunk // empty for generations restored from a persistent backend
	ChunkCount int
	Dimensions int
	BuiltAt    time.Time
}

// Backend stores generations and answers nearest-neighbour queries against one.
type Backend interface {
	Store(ctx context.Context, gen *Generation) error
	Search(ctx context.Context, gen *Generation, query []float32, k int) ([]ScoredChunk, error)
	Drop(ctx context.Context, id uuid.UUID) error
}

// Restorer is implemented by backends that survive a restart.
type Restorer interface {
	Latest(ctx context.Context) (*Generation, error)
}
