package service

import (
	"context"
	"fmt"
	"time"

	"insightgpt-be/internal/dto"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/docindex"
	"insightgpt-be/pkg/events"
)

type IIngestService interface {
	Ingest(ctx context.Context, userId, filename string, data []byte) (*dto.UploadDocumentResponse, error)
	Status() *dto.DocumentStatusResponse
}

// DocumentIndex is the write side of docindex.Index.
type DocumentIndex interface {
	BuildFromFile(ctx context.Context, filename string, data []byte) (*docindex.Generation, error)
	Current() *docindex.Generation
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ingestService struct {
	index     DocumentIndex
	publisher EventPublisher
	maxBytes  int64
	logger    logger.ILogger
}

// NewIngestService accepts a nil publisher when NATS is unavailable.
func NewIngestService(index DocumentIndex, publisher EventPublisher, maxBytes int64, log logger.ILogger) IIngestService {
	return &ingestService{
		index:     index,
		publisher: publisher,
		maxBytes:  maxBytes,
		logger:    log,
	}
}

// Ingest replaces the active document. When it returns successfully every
// later query sees only the new document.
func (s *ingestService) Ingest(ctx context.Context, userId, filename string, data []byte) (*dto.UploadDocumentResponse, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrUploadTooLarge, len(data), s.maxBytes)
	}

	gen, err := s.index.BuildFromFile(ctx, filename, data)
	if err != nil {
		s.logger.Error("IngestService", "Failed to index document", map[string]interface{}{
			"user_id":  userId,
			"filename": filename,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.publishIndexed(ctx, userId, gen)

	return &dto.UploadDocumentResponse{
		Status:       "success",
		Message:      fmt.Sprintf("Document '%s' processed successfully.", filename),
		Source:       gen.Source,
		GenerationId: gen.ID,
		Chunks:       gen.ChunkCount,
		IndexedAt:    gen.BuiltAt,
	}, nil
}

func (s *ingestService) Status() *dto.DocumentStatusResponse {
	gen := s.index.Current()
	if gen == nil {
		return &dto.DocumentStatusResponse{Loaded: false}
	}
	id, builtAt := gen.ID, gen.BuiltAt
	return &dto.DocumentStatusResponse{
		Loaded:       true,
		Source:       gen.Source,
		GenerationId: &id,
		Chunks:       gen.ChunkCount,
		IndexedAt:    &builtAt,
	}
}

func (s *ingestService) publishIndexed(ctx context.Context, userId string, gen *docindex.Generation) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	evt := events.NewDocumentIndexed(userId, gen.Source, gen.ID.String(), gen.ChunkCount, gen.BuiltAt)
	if err := s.publisher.Publish(pubCtx, evt); err != nil {
		s.logger.Warn("IngestService", "Failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}
