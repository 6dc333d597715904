package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "SELECT 1", "SELECT 1"},
		{"sql fence", "```sql\nSELECT region FROM sales_data\n```", "SELECT region FROM sales_data"},
		{"json fence", "```json\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"bare fence", "```\nhello\n```", "hello"},
		{"single line fence", "```SELECT 1```", "SELECT 1"},
		{"surrounding space", "  \n```sql\nSELECT 2\n```  \n", "SELECT 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestApplyOptions(t *testing.T) {
	o := ApplyOptions()
	assert.Equal(t, 0.0, o.Temperature)

	o = ApplyOptions(WithTemperature(0.7), WithModel("llama3"), WithMaxTokens(16))
	assert.Equal(t, 0.7, o.Temperature)
	assert.Equal(t, "llama3", o.Model)
	assert.Equal(t, 16, o.MaxTokens)
}
