package embedding

import "fmt"

type Settings struct {
	Provider      string
	Model         string
	OllamaBaseURL string
	OpenAIBaseURL string
	OpenAIKey     string
	GeminiKey     string
}

// NewEmbeddingProvider builds the built-in providers. Jina lives in its own
// package and is selected by the caller.
func NewEmbeddingProvider(s Settings) (EmbeddingProvider, error) {
	switch s.Provider {
	case "ollama":
		return NewOllamaProvider(s.OllamaBaseURL, s.Model), nil
	case "gemini":
		if s.GeminiKey == "" {
			return nil, fmt.Errorf("gemini embeddings require GOOGLE_GEMINI_API_KEY")
		}
		return NewGeminiProvider(s.GeminiKey, s.Model), nil
	case "openai":
		if s.OpenAIKey == "" && s.OpenAIBaseURL == "" {
			return nil, fmt.Errorf("openai embeddings require OPENAI_API_KEY or OPENAI_BASE_URL")
		}
		return NewOpenAIProvider(s.OpenAIKey, s.OpenAIBaseURL, s.Model), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", s.Provider)
	}
}
