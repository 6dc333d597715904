// Package docindex holds the single active document index used for retrieval.
//
// An Index owns one Generation at a time: the chunks and vectors of exactly one
// uploaded document. Build prepares a complete new generation off to the side
// and publishes it with one atomic pointer swap, so a concurrent Search sees
// either the old generation or the new one and never a mix of both. A replaced
// generation is dropped from the backend only once no Search still reads it.
package docindex

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/document"
	"insightgpt-be/pkg/embedding"
	"insightgpt-be/pkg/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const moduleName = "DocIndex"

// NoDocumentMessage is returned to the synthesizer in place of context when
// nothing has been indexed yet.
const NoDocumentMessage = "No document has been uploaded and processed yet. Please upload a PDF first."

var ErrNoDocument = errors.New("no document has been indexed")

type Options struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	// EmbedWorkers bounds concurrent embedding calls during Build.
	EmbedWorkers int
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = 1000
	}
	if o.ChunkOverlap < 0 || o.ChunkOverlap >= o.ChunkSize {
		o.ChunkOverlap = 0
	}
	if o.TopK <= 0 {
		o.TopK = 4
	}
	if o.EmbedWorkers <= 0 {
		o.EmbedWorkers = 4
	}
	return o
}

type Index struct {
	embedder embedding.EmbeddingProvider
	backend  Backend
	opts     Options
	logger   logger.ILogger

	current atomic.Pointer[Generation]
	buildMu sync.Mutex

	// pinMu guards readers and retired. A retired generation is dropped by
	// whoever brings its reader count to zero.
	pinMu   sync.Mutex
	readers map[uuid.UUID]int
	retired map[uuid.UUID]bool
}

func New(embedder embedding.EmbeddingProvider, backend Backend, opts Options, log logger.ILogger) *Index {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Index{
		embedder: embedder,
		backend:  backend,
		opts:     opts.withDefaults(),
		logger:   log,
		readers:  make(map[uuid.UUID]int),
		retired:  make(map[uuid.UUID]bool),
	}
}

// Current returns the active generation, or nil when nothing is indexed.
func (ix *Index) Current() *Generation {
	return ix.current.Load()
}

// BuildFromFile loads the document's pages and builds a new generation from them.
func (ix *Index) BuildFromFile(ctx context.Context, filename string, data []byte) (*Generation, error) {
	pages, err := document.LoadPages(filename, data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}
	return ix.Build(ctx, filename, pages)
}

// Build replaces the active generation with one built from pages. On error the
// previous generation stays active. Builds are serialized; searches never wait.
func (ix *Index) Build(ctx context.Context, source string, pages []string) (*Generation, error) {
	ctx, span := otel.Tracer("insightgpt/docindex").Start(ctx, "docindex.Build")
	defer span.End()

	texts := utils.SplitPages(pages, ix.opts.ChunkSize, ix.opts.ChunkOverlap)
	if len(texts) == 0 {
		return nil, errors.New("document has no text to index")
	}
	span.SetAttributes(attribute.String("source", source), attribute.Int("chunks", len(texts)))

	ix.buildMu.Lock()
	defer ix.buildMu.Unlock()

	start := time.Now()
	chunks, err := ix.embedChunks(ctx, texts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	gen := &Generation{
		ID:         uuid.New(),
		Source:     source,
		Chunks:     chunks,
		ChunkCount: len(chunks),
		Dimensions: len(chunks[0].Vector),
		BuiltAt:    time.Now(),
	}

	if err := ix.backend.Store(ctx, gen); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("store generation: %w", err)
	}

	if old := ix.publish(gen); old != nil {
		ix.drop(ctx, old.ID)
	}

	ix.logger.Info(moduleName, "Document indexed", map[string]interface{}{
		"source":        source,
		"generation_id": gen.ID.String(),
		"chunks":        gen.ChunkCount,
		"duration_ms":   time.Since(start).Milliseconds(),
	})
	return gen, nil
}

// publish makes gen the active generation. It returns the previous generation
// when nothing reads it any more; otherwise the last reader drops it.
func (ix *Index) publish(gen *Generation) *Generation {
	ix.pinMu.Lock()
	defer ix.pinMu.Unlock()

	old := ix.current.Swap(gen)
	if old == nil {
		return nil
	}
	if ix.readers[old.ID] > 0 {
		ix.retired[old.ID] = true
		return nil
	}
	return old
}

// acquire pins the active generation for the duration of one search.
func (ix *Index) acquire() *Generation {
	ix.pinMu.Lock()
	defer ix.pinMu.Unlock()

	gen := ix.current.Load()
	if gen != nil {
		ix.readers[gen.ID]++
	}
	return gen
}

func (ix *Index) release(ctx context.Context, gen *Generation) {
	ix.pinMu.Lock()
	ix.readers[gen.ID]--
	last := ix.readers[gen.ID] <= 0
	if last {
		delete(ix.readers, gen.ID)
	}
	dropNow := last && ix.retired[gen.ID]
	if dropNow {
		delete(ix.retired, gen.ID)
	}
	ix.pinMu.Unlock()

	if dropNow {
		ix.drop(ctx, gen.ID)
	}
}

// drop runs on a detached context so a cancelled request still cleans up.
func (ix *Index) drop(ctx context.Context, id uuid.UUID) {
	if err := ix.backend.Drop(context.WithoutCancel(ctx), id); err != nil {
		ix.logger.Warn(moduleName, "Failed to drop previous generation", map[string]interface{}{
			"generation_id": id.String(),
			"error":         err.Error(),
		})
	}
}

func (ix *Index) embedChunks(ctx context.Context, texts []string) ([]Chunk, error) {
	chunks := make([]Chunk, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.opts.EmbedWorkers)
	for i, text := range texts {
		g.Go(func() error {
			res, err := ix.embedder.Generate(gctx, text, embedding.TaskRetrievalDocument)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", i, err)
			}
			chunks[i] = Chunk{Ordinal: i, Text: text, Vector: res.Embedding.Values}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dims := len(chunks[0].Vector)
	if dims == 0 {
		return nil, errors.New("embedding provider returned an empty vector")
	}
	for _, c := range chunks {
		if len(c.Vector) != dims {
			return nil, fmt.Errorf("chunk %d has %d dimensions, expected %d", c.Ordinal, len(c.Vector), dims)
		}
	}
	return chunks, nil
}

// Search returns the TopK chunks of the active generation closest to question,
// best first, ties broken by chunk order. It returns ErrNoDocument when nothing
// is indexed.
func (ix *Index) Search(ctx context.Context, question string) ([]ScoredChunk, error) {
	gen := ix.acquire()
	if gen == nil {
		return nil, ErrNoDocument
	}
	defer ix.release(ctx, gen)

	ctx, span := otel.Tracer("insightgpt/docindex").Start(ctx, "docindex.Search")
	defer span.End()
	span.SetAttributes(attribute.String("generation_id", gen.ID.String()))

	res, err := ix.embedder.Generate(ctx, question, embedding.TaskRetrievalQuery)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("embed question: %w", err)
	}
	if gen.Dimensions != 0 && len(res.Embedding.Values) != gen.Dimensions {
		return nil, fmt.Errorf("question embedding has %d dimensions, index has %d", len(res.Embedding.Values), gen.Dimensions)
	}

	hits, err := ix.backend.Search(ctx, gen, res.Embedding.Values, ix.opts.TopK)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("search generation %s: %w", gen.ID, err)
	}

	rank(hits)
	if len(hits) > ix.opts.TopK {
		hits = hits[:ix.opts.TopK]
	}
	return hits, nil
}

// Restore re-activates the newest persisted generation, if the backend keeps one.
// It reports whether a generation was restored.
func (ix *Index) Restore(ctx context.Context) (bool, error) {
	r, ok := ix.backend.(Restorer)
	if !ok {
		return false, nil
	}

	ix.buildMu.Lock()
	defer ix.buildMu.Unlock()

	gen, err := r.Latest(ctx)
	if err != nil {
		return false, err
	}
	if gen == nil {
		return false, nil
	}
	ix.current.CompareAndSwap(nil, gen)
	ix.logger.Info(moduleName, "Restored persisted generation", map[string]interface{}{
		"source":        gen.Source,
		"generation_id": gen.ID.String(),
		"chunks":        gen.ChunkCount,
	})
	return true, nil
}

func rank(hits []ScoredChunk) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Ordinal < hits[j].Ordinal
	})
}
