package contract

import (
	"context"

	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByGenerationId(ctx context.Context, generationId uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns the closest chunks of one generation,
	// nearest first, ties by ordinal.
	SearchSimilarWithScore(ctx context.Context, generationId uuid.UUID, embedding []float32, limit int) ([]*entity.ScoredDocumentChunk, error)
	// LatestGeneration returns nil when no chunks are stored.
	LatestGeneration(ctx context.Context) (*entity.GenerationInfo, error)
}
