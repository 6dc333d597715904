package factory

import (
	"fmt"

	"insightgpt-be/pkg/llm"
	"insightgpt-be/pkg/llm/gemini"
	"insightgpt-be/pkg/llm/ollama"
	"insightgpt-be/pkg/llm/openai"
)

type Settings struct {
	Provider      string
	Model         string
	OllamaBaseURL string
	OpenAIBaseURL string
	OpenAIKey     string
	GeminiKey     string
}

func NewLLMProvider(s Settings) (llm.LLMProvider, error) {
	switch s.Provider {
	case "ollama":
		baseURL := s.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, s.Model), nil
	case "gemini":
		if s.GeminiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(s.GeminiKey, s.Model), nil
	case "openai":
		if s.OpenAIKey == "" && s.OpenAIBaseURL == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY or OPENAI_BASE_URL")
		}
		return openai.NewOpenAIProvider(s.OpenAIKey, s.OpenAIBaseURL, s.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
