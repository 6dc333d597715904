package bootstrap

import (
	"context"
	"fmt"

	"insightgpt-be/internal/config"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/internal/repository/indexstore"
	"insightgpt-be/internal/repository/unitofwork"
	"insightgpt-be/pkg/ai/pipeline"
	"insightgpt-be/pkg/ai/router"
	"insightgpt-be/pkg/docindex"
	"insightgpt-be/pkg/embedding"
	"insightgpt-be/pkg/embedding/jina"
	"insightgpt-be/pkg/llm/factory"
	"insightgpt-be/pkg/sqlagent"

	"gorm.io/gorm"
)

// Pipeline groups the query pipeline with the document index it reads, so
// callers can both answer questions and ingest documents.
type Pipeline struct {
	Query *pipeline.QueryPipeline
	Index *docindex.Index
}

func newEmbeddingProvider(cfg *config.Config) (embedding.EmbeddingProvider, error) {
	if cfg.Ai.EmbeddingProvider == "jina" {
		if cfg.Keys.Jina == "" {
			return nil, fmt.Errorf("jina embeddings require JINA_API_KEY")
		}
		return jina.NewJinaProvider(cfg.Keys.Jina, cfg.Ai.EmbeddingModel), nil
	}
	return embedding.NewEmbeddingProvider(embedding.Settings{
		Provider:      cfg.Ai.EmbeddingProvider,
		Model:         cfg.Ai.EmbeddingModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
		OpenAIKey:     cfg.Keys.OpenAI,
		GeminiKey:     cfg.Keys.GoogleGemini,
	})
}

// NewPipeline wires router, workers and synthesizer over the configured
// providers. With the pgvector backend the last stored generation is restored.
func NewPipeline(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.ILogger) (*Pipeline, error) {
	embedder, err := newEmbeddingProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("init embedding provider: %w", err)
	}
	log.Info("Bootstrap", "Embedding provider ready", map[string]interface{}{
		"provider": cfg.Ai.EmbeddingProvider,
		"model":    cfg.Ai.EmbeddingModel,
	})

	llmProvider, err := factory.NewLLMProvider(factory.Settings{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
		OpenAIKey:     cfg.Keys.OpenAI,
		GeminiKey:     cfg.Keys.GoogleGemini,
	})
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	log.Info("Bootstrap", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	var backend docindex.Backend
	if cfg.Pipeline.IndexBackend == "pgvector" {
		backend = indexstore.NewPgvectorBackend(unitofwork.NewRepositoryFactory(db))
	}
	index := docindex.New(embedder, backend, docindex.Options{
		ChunkSize:    cfg.Pipeline.ChunkSize,
		ChunkOverlap: cfg.Pipeline.ChunkOverlap,
		TopK:         cfg.Pipeline.TopK,
	}, log)

	restored, err := index.Restore(ctx)
	if err != nil {
		log.Warn("Bootstrap", "Failed to restore document index", map[string]interface{}{"error": err.Error()})
	} else if restored {
		gen := index.Current()
		log.Info("Bootstrap", "Restored document index", map[string]interface{}{
			"source": gen.Source,
			"chunks": gen.ChunkCount,
		})
	}

	agent := sqlagent.NewAgent(llmProvider, sqlagent.NewGormExecutor(db), cfg.Pipeline.StructuredTable, cfg.Pipeline.MaxRows, log)

	query := pipeline.NewQueryPipeline(
		router.NewRouter(llmProvider, log),
		pipeline.NewStructuredWorker(agent, log),
		pipeline.NewRetrievalWorker(index, log),
		pipeline.NewSynthesizer(llmProvider, log),
		log,
	)

	return &Pipeline{Query: query, Index: index}, nil
}
