package service

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"testing"

	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/docindex"
	"insightgpt-be/pkg/embedding"
	"insightgpt-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hashEmbedder struct{}

func (hashEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	vec := make([]float32, 32)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		vec[h.Sum32()%32]++
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: vec}}, nil
}

type recordingEvents struct {
	published []events.Event
	err       error
}

func (r *recordingEvents) Publish(ctx context.Context, event events.Event) error {
	r.published = append(r.published, event)
	return r.err
}

func newTestIndex() *docindex.Index {
	return docindex.New(hashEmbedder{}, nil, docindex.Options{ChunkSize: 200, ChunkOverlap: 20}, logger.NewNopLogger())
}

func TestIngestServiceIngest(t *testing.T) {
	index := newTestIndex()
	pub := &recordingEvents{}
	svc := NewIngestService(index, pub, 1024, logger.NewNopLogger())

	assert.False(t, svc.Status().Loaded)

	res, err := svc.Ingest(context.Background(), "alice", "letter.txt", []byte("The CEO said revenue grew twelve percent."))
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "letter.txt", res.Source)
	assert.Equal(t, 1, res.Chunks)

	status := svc.Status()
	assert.True(t, status.Loaded)
	require.NotNil(t, status.GenerationId)
	assert.Equal(t, res.GenerationId, *status.GenerationId)

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.TypeDocumentIndexed, pub.published[0].EventType())
	assert.Equal(t, "alice", pub.published[0].Payload()["user_id"])
}

func TestIngestServiceRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErr  error
	}{
		{"empty", "a.txt", nil, ErrEmptyUpload},
		{"too large", "a.txt", []byte(strings.Repeat("x", 2048)), ErrUploadTooLarge},
		{"unsupported", "a.xlsx", []byte("cells"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := newTestIndex()
			svc := NewIngestService(index, nil, 1024, logger.NewNopLogger())

			_, err := svc.Ingest(context.Background(), "alice", tt.filename, tt.data)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Nil(t, index.Current())
		})
	}
}

func TestIngestServicePublishFailureIsNotFatal(t *testing.T) {
	svc := NewIngestService(newTestIndex(), &recordingEvents{err: errors.New("nats down")}, 0, logger.NewNopLogger())
	_, err := svc.Ingest(context.Background(), "alice", "a.md", []byte("# Report\n\nProfit rose."))
	assert.NoError(t, err)
}
