package implementation

import (
	"context"
	"time"

	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/mapper"
	"insightgpt-be/internal/model"
	"insightgpt-be/internal/repository/contract"
	"insightgpt-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

const chunkBatchSize = 200

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).CreateInBatches(models, chunkBatchSize).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) DeleteByGenerationId(ctx context.Context, generationId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("generation_id = ?", generationId).Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}

func (r *DocumentChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, generationId uuid.UUID, embedding []float32, limit int) ([]*entity.ScoredDocumentChunk, error) {
	if limit <= 0 {
		limit = 4
	}

	// pgvector's <=> is cosine distance, so similarity is 1 - distance.
	type result struct {
		model.DocumentChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, 1 - (embedding_value <=> ?) AS similarity", queryVector).
		Where("generation_id = ?", generationId).
		Order(gorm.Expr("embedding_value <=> ?", queryVector)).
		Order("ordinal ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredDocumentChunk, len(results))
	for i := range results {
		scored[i] = &entity.ScoredDocumentChunk{
			Chunk:      r.mapper.ToEntity(&results[i].DocumentChunk),
			Similarity: results[i].Similarity,
		}
	}
	return scored, nil
}

func (r *DocumentChunkRepositoryImpl) LatestGeneration(ctx context.Context) (*entity.GenerationInfo, error) {
	var row struct {
		GenerationId uuid.UUID
		Source       string
		ChunkCount   int
		Dimensions   int
		BuiltAt      time.Time
	}

	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Select("generation_id, MIN(source) AS source, COUNT(*) AS chunk_count, MAX(vector_dims(embedding_value)) AS dimensions, MAX(created_at) AS built_at").
		Group("generation_id").
		Order("built_at DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.GenerationId == uuid.Nil {
		return nil, nil
	}

	return &entity.GenerationInfo{
		GenerationId: row.GenerationId,
		Source:       row.Source,
		ChunkCount:   row.ChunkCount,
		Dimensions:   row.Dimensions,
		BuiltAt:      row.BuiltAt,
	}, nil
}
