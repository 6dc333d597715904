package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"insightgpt-be/internal/constant"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/docindex"
)

// ChunkDelimiter separates retrieved chunks in the retrieval context.
const ChunkDelimiter = "\n---\n"

// Worker turns a question into context for the synthesizer. It never fails:
// problems are described in the returned text and reported as a FailureKind.
type Worker interface {
	Run(ctx context.Context, question string) (string, FailureKind)
}

// StructuredQuerier answers a natural-language question from tabular data.
type StructuredQuerier interface {
	Execute(ctx context.Context, question string) (string, error)
}

type StructuredWorker struct {
	querier StructuredQuerier
	logger  logger.ILogger
}

func NewStructuredWorker(querier StructuredQuerier, log logger.ILogger) *StructuredWorker {
	return &StructuredWorker{querier: querier, logger: log}
}

func (w *StructuredWorker) Run(ctx context.Context, question string) (string, FailureKind) {
	start := time.Now()
	out, err := w.querier.Execute(ctx, question)
	if err != nil {
		w.logger.Warn("StructuredWorker", "Structured query failed", map[string]interface{}{
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return constant.StructuredFailureContext + err.Error(), FailureWorker
	}
	return out, FailureNone
}

// DocumentSearcher is the read side of docindex.Index.
type DocumentSearcher interface {
	Search(ctx context.Context, question string) ([]docindex.ScoredChunk, error)
}

type RetrievalWorker struct {
	index  DocumentSearcher
	logger logger.ILogger
}

func NewRetrievalWorker(index DocumentSearcher, log logger.ILogger) *RetrievalWorker {
	return &RetrievalWorker{index: index, logger: log}
}

func (w *RetrievalWorker) Run(ctx context.Context, question string) (string, FailureKind) {
	hits, err := w.index.Search(ctx, question)
	if errors.Is(err, docindex.ErrNoDocument) {
		return docindex.NoDocumentMessage, FailureIndexUnavailable
	}
	if err != nil {
		w.logger.Warn("RetrievalWorker", "Retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
		return constant.RetrievalFailureContext + err.Error(), FailureWorker
	}

	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Text
	}
	w.logger.Debug("RetrievalWorker", "Chunks retrieved", map[string]interface{}{
		"hits": len(hits),
	})
	return strings.Join(texts, ChunkDelimiter), FailureNone
}
