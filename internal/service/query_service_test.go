package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"insightgpt-be/internal/dto"
	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/ai/chart"
	"insightgpt-be/pkg/ai/pipeline"
	"insightgpt-be/pkg/ai/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnswerer struct {
	answer      pipeline.FinalAnswer
	sawDeadline bool
	calls       int
}

func (f *fakeAnswerer) Answer(ctx context.Context, question string) pipeline.FinalAnswer {
	f.calls++
	_, f.sawDeadline = ctx.Deadline()
	return f.answer
}

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return p.err
}

func barAnswer() pipeline.FinalAnswer {
	return pipeline.FinalAnswer{
		DisplayText: "Here is a bar chart.",
		Chart: &chart.Spec{
			Kind:          chart.KindBar,
			CategoryField: "region",
			ValueField:    "total_revenue",
			Rows:          []chart.Row{{"region": "North", "total_revenue": 867.5}},
		},
		Route: router.RouteStructuredQuery,
	}
}

func TestQueryServiceAsk(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessionService()
	sessionId, err := sessions.Create(ctx, "alice", nil)
	require.NoError(t, err)

	answerer := &fakeAnswerer{answer: barAnswer()}
	pub := &recordingPublisher{}
	svc := NewQueryService(answerer, sessions, pub, time.Minute, "guest_", logger.NewNopLogger())

	res, err := svc.Ask(ctx, "alice", &dto.QueryRequest{Query: "Sales by region chart", SessionId: sessionId})
	require.NoError(t, err)

	assert.Equal(t, "Here is a bar chart.", res.Answer)
	assert.Equal(t, "structured_query", res.Route)
	require.NotNil(t, res.Chart)
	assert.True(t, answerer.sawDeadline)

	s, err := sessions.Get(ctx, "alice", sessionId)
	require.NoError(t, err)
	require.Len(t, s.Turns, 2)
	assert.Equal(t, entity.RoleUser, s.Turns[0].Role)
	assert.Equal(t, "Sales by region chart", s.Turns[0].Content)
	assert.Contains(t, string(s.Turns[1].Chart), `"chart_details"`)

	require.Len(t, pub.payloads, 1)
	var msg dto.QueryAnsweredMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, "alice", msg.UserId)
	assert.Equal(t, sessionId, msg.SessionId)
	assert.Equal(t, "structured_query", msg.Route)
}

func TestQueryServiceRejectsForeignSessionBeforeAnswering(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessionService()
	sessionId, err := sessions.Create(ctx, "alice", nil)
	require.NoError(t, err)

	answerer := &fakeAnswerer{answer: barAnswer()}
	svc := NewQueryService(answerer, sessions, &recordingPublisher{}, 0, "guest_", logger.NewNopLogger())

	_, err = svc.Ask(ctx, "bob", &dto.QueryRequest{Query: "q", SessionId: sessionId})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, answerer.calls)
}

func TestQueryServiceGuestAndPublishFailure(t *testing.T) {
	answerer := &fakeAnswerer{answer: pipeline.FinalAnswer{DisplayText: "No document.", Failure: pipeline.FailureIndexUnavailable}}
	pub := &recordingPublisher{err: errors.New("bus closed")}
	svc := NewQueryService(answerer, newTestSessionService(), pub, 0, "guest_", logger.NewNopLogger())

	res, err := svc.Ask(context.Background(), "guest_42", &dto.QueryRequest{Query: "CEO?", SessionId: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "No document.", res.Answer)
	assert.Equal(t, "index_unavailable", res.Failure)
	assert.Nil(t, res.Chart)
	assert.False(t, answerer.sawDeadline)
}
