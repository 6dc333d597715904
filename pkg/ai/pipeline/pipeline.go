// Package pipeline answers a question in three fixed stages: route it, run
// the chosen worker, and synthesize the final answer from the worker's
// context.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"insightgpt-be/internal/constant"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/ai/router"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const moduleName = "Pipeline"

var tracer = otel.Tracer("insightgpt/pipeline")

type Classifier interface {
	Route(ctx context.Context, question string) (router.Route, error)
}

type AnswerSynthesizer interface {
	Synthesize(ctx context.Context, question, workerContext string) (FinalAnswer, error)
}

type QueryPipeline struct {
	classifier  Classifier
	structured  Worker
	retrieval   Worker
	synthesizer AnswerSynthesizer
	logger      logger.ILogger
}

func NewQueryPipeline(classifier Classifier, structured, retrieval Worker, synthesizer AnswerSynthesizer, log logger.ILogger) *QueryPipeline {
	return &QueryPipeline{
		classifier:  classifier,
		structured:  structured,
		retrieval:   retrieval,
		synthesizer: synthesizer,
		logger:      log,
	}
}

// Answer always returns an answer. Failures that abort the pipeline become a
// plain-language message with Failure set.
func (p *QueryPipeline) Answer(ctx context.Context, question string) (answer FinalAnswer) {
	if strings.TrimSpace(question) == "" {
		return FinalAnswer{DisplayText: constant.EmptyQuestionMessage}
	}

	start := time.Now()
	ctx, span := tracer.Start(ctx, "pipeline.Answer", trace.WithSpanKind(trace.SpanKindInternal))
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(moduleName, "Recovered from panic", map[string]interface{}{
				"panic": fmt.Sprint(r),
			})
			answer = FinalAnswer{DisplayText: constant.SynthesisFailureMessage, Failure: FailureInternal}
		}
		span.SetAttributes(
			attribute.String("route", string(answer.Route)),
			attribute.String("failure", string(answer.Failure)),
			attribute.Bool("chart", answer.Chart != nil),
		)
		if answer.Failure.Fatal() {
			span.SetStatus(codes.Error, string(answer.Failure))
		}
		span.End()
		p.logAnswer(question, answer, start)
	}()

	route, err := p.route(ctx, question)
	if err != nil {
		return p.abort(ctx, route, err, FailureRouting, constant.RoutingFailureMessage)
	}

	workerContext, workerFailure := p.runWorker(ctx, route, question)
	if ctx.Err() != nil {
		return p.abort(ctx, route, ctx.Err(), FailureTimeout, constant.TimeoutMessage)
	}

	answer, err = p.synthesize(ctx, question, workerContext)
	if err != nil {
		return p.abort(ctx, route, err, FailureSynthesis, constant.SynthesisFailureMessage)
	}

	answer.Route = route
	if answer.Failure == FailureNone {
		answer.Failure = workerFailure
	}
	return answer
}

func (p *QueryPipeline) route(ctx context.Context, question string) (router.Route, error) {
	ctx, span := tracer.Start(ctx, "pipeline.Route")
	defer span.End()

	route, err := p.classifier.Route(ctx, question)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	span.SetAttributes(attribute.String("route", string(route)))
	return route, nil
}

func (p *QueryPipeline) runWorker(ctx context.Context, route router.Route, question string) (string, FailureKind) {
	ctx, span := tracer.Start(ctx, "pipeline.Worker")
	defer span.End()
	span.SetAttributes(attribute.String("route", string(route)))

	worker := p.retrieval
	if route == router.RouteStructuredQuery {
		worker = p.structured
	}
	out, kind := worker.Run(ctx, question)
	if kind != FailureNone {
		span.SetAttributes(attribute.String("failure", string(kind)))
	}
	return out, kind
}

func (p *QueryPipeline) synthesize(ctx context.Context, question, workerContext string) (FinalAnswer, error) {
	ctx, span := tracer.Start(ctx, "pipeline.Synthesize")
	defer span.End()

	answer, err := p.synthesizer.Synthesize(ctx, question, workerContext)
	if err != nil {
		span.RecordError(err)
	}
	return answer, err
}

// abort builds the answer for a stage failure. Cancellation wins over the
// stage's own kind so callers can tell a timeout from a broken model.
func (p *QueryPipeline) abort(ctx context.Context, route router.Route, err error, kind FailureKind, message string) FinalAnswer {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		kind, message = FailureTimeout, constant.TimeoutMessage
	}
	p.logger.Error(moduleName, "Pipeline aborted", map[string]interface{}{
		"failure": string(kind),
		"route":   string(route),
		"error":   err.Error(),
	})
	return FinalAnswer{DisplayText: message, Route: route, Failure: kind}
}

func (p *QueryPipeline) logAnswer(question string, answer FinalAnswer, start time.Time) {
	p.logger.Info(moduleName, "Question answered", map[string]interface{}{
		"question":    truncate(question, 80),
		"route":       string(answer.Route),
		"failure":     string(answer.Failure),
		"chart":       answer.Chart != nil,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
