package router

import (
	"context"
	"fmt"
	"time"

	"insightgpt-be/internal/constant"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/llm"
)

const moduleName = "Router"

// Router classifies a question with a single model call. It never retries.
type Router struct {
	llm    llm.LLMProvider
	logger logger.ILogger
}

func NewRouter(provider llm.LLMProvider, log logger.ILogger) *Router {
	return &Router{
		llm:    provider,
		logger: log,
	}
}

// Route returns the worker for question. A failed model call is returned as
// an error; an unrecognised answer is not an error and yields DocumentRetrieval.
func (r *Router) Route(ctx context.Context, question string) (Route, error) {
	start := time.Now()
	prompt := fmt.Sprintf(constant.RouterPromptTemplate, question)

	response, err := r.llm.Generate(ctx, prompt, llm.WithTemperature(0), llm.WithMaxTokens(16))
	if err != nil {
		r.logger.Error(moduleName, "Classification call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", fmt.Errorf("classify question: %w", err)
	}

	route := ParseDecision(response)
	r.logger.Info(moduleName, "Route selected", map[string]interface{}{
		"route":       route.String(),
		"raw":         truncateLog(response, 80),
		"question":    truncateLog(question, 80),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return route, nil
}

func truncateLog(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
