// Package indexstore persists document index generations in Postgres with
// pgvector so the active document survives a restart.
package indexstore

import (
	"context"
	"fmt"

	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/repository/specification"
	"insightgpt-be/internal/repository/unitofwork"
	"insightgpt-be/pkg/docindex"

	"github.com/google/uuid"
)

type PgvectorBackend struct {
	uowFactory unitofwork.RepositoryFactory
}

var (
	_ docindex.Backend  = (*PgvectorBackend)(nil)
	_ docindex.Restorer = (*PgvectorBackend)(nil)
)

func NewPgvectorBackend(uowFactory unitofwork.RepositoryFactory) *PgvectorBackend {
	return &PgvectorBackend{uowFactory: uowFactory}
}

// Store writes every chunk of gen in one transaction, so a crashed upload
// never leaves a partial generation behind.
func (b *PgvectorBackend) Store(ctx context.Context, gen *docindex.Generation) error {
	rows := make([]*entity.DocumentChunk, len(gen.Chunks))
	for i, c := range gen.Chunks {
		rows[i] = &entity.DocumentChunk{
			Id:             uuid.New(),
			GenerationId:   gen.ID,
			Source:         gen.Source,
			Ordinal:        c.Ordinal,
			Document:       c.Text,
			EmbeddingValue: c.Vector,
			CreatedAt:      gen.BuiltAt,
		}
	}

	uow := b.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	repo := uow.DocumentChunkRepository()
	if err := repo.CreateBulk(ctx, rows); err != nil {
		return fmt.Errorf("insert chunks: %w", err)
	}

	stored, err := repo.Count(ctx, specification.ByGenerationID{GenerationID: gen.ID})
	if err != nil {
		return fmt.Errorf("count chunks: %w", err)
	}
	if stored != int64(len(rows)) {
		return fmt.Errorf("generation %s stored %d of %d chunks", gen.ID, stored, len(rows))
	}
	return uow.Commit()
}

func (b *PgvectorBackend) Search(ctx context.Context, gen *docindex.Generation, query []float32, k int) ([]docindex.ScoredChunk, error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	hits, err := uow.DocumentChunkRepository().SearchSimilarWithScore(ctx, gen.ID, query, k)
	if err != nil {
		return nil, err
	}

	out := make([]docindex.ScoredChunk, len(hits))
	for i, h := range hits {
		out[i] = docindex.ScoredChunk{
			Chunk: docindex.Chunk{
				Ordinal: h.Chunk.Ordinal,
				Text:    h.Chunk.Document,
			},
			Score: h.Similarity,
		}
	}
	return out, nil
}

func (b *PgvectorBackend) Drop(ctx context.Context, id uuid.UUID) error {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentChunkRepository().DeleteByGenerationId(ctx, id)
}

func (b *PgvectorBackend) Latest(ctx context.Context) (*docindex.Generation, error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	info, err := uow.DocumentChunkRepository().LatestGeneration(ctx)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, nil
	}
	return &docindex.Generation{
		ID:         info.GenerationId,
		Source:     info.Source,
		ChunkCount: info.ChunkCount,
		Dimensions: info.Dimensions,
		BuiltAt:    info.BuiltAt,
	}, nil
}
