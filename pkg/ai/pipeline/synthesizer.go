package pipeline

import (
	"context"
	"fmt"
	"strings"

	"insightgpt-be/internal/constant"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/ai/chart"
	"insightgpt-be/pkg/llm"
)

type Synthesizer struct {
	llm    llm.LLMProvider
	logger logger.ILogger
}

func NewSynthesizer(provider llm.LLMProvider, log logger.ILogger) *Synthesizer {
	return &Synthesizer{llm: provider, logger: log}
}

// Synthesize makes one generation call and turns its output into an answer.
// Only the generation call itself can fail.
func (s *Synthesizer) Synthesize(ctx context.Context, question, workerContext string) (FinalAnswer, error) {
	prompt := fmt.Sprintf(constant.SynthesisPromptTemplate, workerContext, question)
	out, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return FinalAnswer{}, fmt.Errorf("generate answer: %w", err)
	}

	answer := ComposeAnswer(out)
	if answer.Failure == FailureChartParse {
		s.logger.Warn("Synthesizer", "Chart payload could not be parsed, returning plain text", nil)
	}
	return answer, nil
}

// ComposeAnswer builds the answer for a model output: the chart and its
// comment when the output carries a valid chart payload, the whole output
// otherwise.
func ComposeAnswer(output string) FinalAnswer {
	if spec, comment, ok := chart.Extract(output); ok {
		return FinalAnswer{DisplayText: comment, Chart: spec}
	}
	answer := FinalAnswer{DisplayText: output}
	if strings.Contains(output, `"chart_details"`) {
		answer.Failure = FailureChartParse
	}
	return answer
}
