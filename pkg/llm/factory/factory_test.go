package factory

import (
	"testing"

	"insightgpt-be/pkg/llm/gemini"
	"insightgpt-be/pkg/llm/ollama"
	"insightgpt-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
		check    func(t *testing.T, p interface{})
	}{
		{
			name:     "ollama default url",
			settings: Settings{Provider: "ollama", Model: "llama3"},
			check: func(t *testing.T, p interface{}) {
				o, ok := p.(*ollama.OllamaProvider)
				require.True(t, ok)
				assert.Equal(t, "http://localhost:11434", o.BaseURL)
			},
		},
		{
			name:     "gemini",
			settings: Settings{Provider: "gemini", GeminiKey: "k"},
			check: func(t *testing.T, p interface{}) {
				_, ok := p.(*gemini.GeminiProvider)
				assert.True(t, ok)
			},
		},
		{
			name:     "gemini without key",
			settings: Settings{Provider: "gemini"},
			wantErr:  true,
		},
		{
			name:     "openai compatible base url",
			settings: Settings{Provider: "openai", OpenAIBaseURL: "http://localhost:1234/v1"},
			check: func(t *testing.T, p interface{}) {
				_, ok := p.(*openai.OpenAIProvider)
				assert.True(t, ok)
			},
		},
		{
			name:     "unknown",
			settings: Settings{Provider: "claude"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLLMProvider(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}
