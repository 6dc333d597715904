package service

import (
	"context"
	"testing"
	"time"

	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService() ISessionService {
	return NewSessionService(memory.NewSessionRepository(), "guest_", logger.NewNopLogger())
}

func turns(contents ...string) []entity.ConversationTurn {
	out := make([]entity.ConversationTurn, len(contents))
	for i, c := range contents {
		role := entity.RoleUser
		if i%2 == 1 {
			role = entity.RoleAssistant
		}
		out[i] = entity.ConversationTurn{Role: role, Content: c}
	}
	return out
}

func TestSessionCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService()

	id, err := svc.Create(ctx, "alice", turns("Revenue by region?", "North leads."))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s, err := svc.Get(ctx, "alice", id)
	require.NoError(t, err)
	assert.Equal(t, "Revenue by region?", s.Title)
	assert.Len(t, s.Turns, 2)

	_, err = svc.Get(ctx, "bob", id)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(ctx, "alice", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionGuestRules(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService()

	_, err := svc.Create(ctx, "guest_123", turns("hi"))
	assert.ErrorIs(t, err, ErrGuestSession)

	list, err := svc.List(ctx, "guest_123")
	require.NoError(t, err)
	assert.Empty(t, list)

	err = svc.Append(ctx, "guest_123", "any", turns("hi")...)
	assert.ErrorIs(t, err, ErrGuestSession)
}

func TestSessionReplaceAndAppend(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService()

	id, err := svc.Create(ctx, "alice", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Replace(ctx, "alice", id, turns("What did the CEO say?", "Record year.")))
	require.NoError(t, svc.Append(ctx, "alice", id, turns("And revenue?")...))

	s, err := svc.Get(ctx, "alice", id)
	require.NoError(t, err)
	require.Len(t, s.Turns, 3)
	assert.Equal(t, "What did the CEO say?", s.Title)
	assert.Equal(t, "And revenue?", s.Turns[2].Content)

	assert.ErrorIs(t, svc.Replace(ctx, "bob", id, nil), ErrForbidden)
	assert.ErrorIs(t, svc.Append(ctx, "alice", "missing", turns("x")...), ErrNotFound)
}

func TestSessionListNewestFirstSkipsEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService()

	first, err := svc.Create(ctx, "alice", turns("First question"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", nil)
	require.NoError(t, err)
	third, err := svc.Create(ctx, "alice", turns("   ", "answer"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", turns("Bob's"))
	require.NoError(t, err)

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, third, list[0].Id)
	assert.Equal(t, "Untitled Chat", list[0].Title)
	assert.Equal(t, first, list[1].Id)
	assert.Equal(t, "First question", list[1].Title)
}

func TestSessionConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService()
	id, err := svc.Create(ctx, "alice", nil)
	require.NoError(t, err)

	done := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func() { done <- svc.Append(ctx, "alice", id, turns("q", "a")...) }()
	}
	for i := 0; i < 20; i++ {
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("append did not finish")
		}
	}

	s, err := svc.Get(ctx, "alice", id)
	require.NoError(t, err)
	assert.Len(t, s.Turns, 40)
}
