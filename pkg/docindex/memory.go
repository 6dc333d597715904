package docindex

import (
	"context"
	"math"

	"github.com/google/uuid"
)

// MemoryBackend searches the vectors held by the generation itself.
type MemoryBackend struct{}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Store(ctx context.Context, gen *Generation) error {
	return nil
}

func (b *MemoryBackend) Drop(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (b *MemoryBackend) Search(ctx context.Context, gen *Generation, query []float32, k int) ([]ScoredChunk, error) {
	hits := make([]ScoredChunk, 0, len(gen.Chunks))
	for _, c := range gen.Chunks {
		hits = append(hits, ScoredChunk{Chunk: c, Score: CosineSimilarity(query, c.Vector)})
	}
	rank(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// CosineSimilarity returns 0 for mismatched or zero-length vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
