package redis

import (
	"context"
	"os"
	"testing"

	"insightgpt-be/internal/entity"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server; set REDIS_TEST_URL to enable.
func TestSessionRepositoryIntegration(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_TEST_URL not set")
	}

	opt, err := goredis.ParseURL(url)
	require.NoError(t, err)
	rdb := goredis.NewClient(opt)
	defer rdb.Close()

	ctx := context.Background()
	repo := NewSessionRepository(rdb)

	user := "it_" + uuid.NewString()
	first, second := uuid.NewString(), uuid.NewString()
	defer rdb.Del(ctx, userKey(user), sessionKey(first), sessionKey(second))

	require.NoError(t, repo.Save(ctx, &entity.Session{Id: first, UserId: user, Title: "Revenue", Turns: []entity.ConversationTurn{
		{Role: entity.RoleUser, Content: "Revenue by region?"},
		{Role: entity.RoleAssistant, Content: "Here is a bar chart.", Chart: []byte(`{"chart_details":{"type":"bar","x_col":"region","y_col":"revenue"},"data":[]}`)},
	}}))
	require.NoError(t, repo.AddToUser(ctx, user, first))
	require.NoError(t, repo.AddToUser(ctx, user, second))

	got, err := repo.Get(ctx, first)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Revenue", got.Title)
	require.Len(t, got.Turns, 2)
	assert.JSONEq(t, `{"chart_details":{"type":"bar","x_col":"region","y_col":"revenue"},"data":[]}`, string(got.Turns[1].Chart))

	ids, err := repo.ListIds(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []string{second, first}, ids)

	missing, err := repo.Get(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
