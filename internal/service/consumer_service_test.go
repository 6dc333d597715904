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
	"insightgpt-be/internal/repository/contract"
	"insightgpt-be/internal/repository/specification"
	"insightgpt-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueryLogRepo struct {
	mu         sync.Mutex
	created    []*entity.QueryLog
	err        error
	findSpecs  []specification.Specification
	countSpecs []specification.Specification
}

func (r *fakeQueryLogRepo) Create(ctx context.Context, log *entity.QueryLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, log)
	return nil
}

func (r *fakeQueryLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QueryLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findSpecs = specs
	return append([]*entity.QueryLog(nil), r.created...), nil
}

func (r *fakeQueryLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countSpecs = specs
	return int64(len(r.created)), nil
}

type logUow struct{ repo *fakeQueryLogRepo }

func (u *logUow) Begin(ctx context.Context) error { return nil }
func (u *logUow) Commit() error { return nil }
func (u *logUow) Rollback() error { return nil }
func (u *logUow) DocumentChunkRepository() contract.DocumentChunkRepository { return nil }
func (u *logUow) QueryLogRepository() contract.QueryLogRepository { return u.repo }

type logUowFactory struct{ repo *fakeQueryLogRepo }

func (f *logUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &logUow{repo: f.repo}
}

func TestConsumerStoresAnsweredQueries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	repo := &fakeQueryLogRepo{}
	consumer := NewConsumerService(pubSub, "QUERY_ANSWERED", &logUowFactory{repo: repo}, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("QUERY_ANSWERED", pubSub)

	// malformed payloads are acked and dropped
	require.NoError(t, publisher.Publish(ctx, []byte("not json")))

	payload, err := json.Marshal(dto.QueryAnsweredMessage{
		UserId:      "alice",
		SessionId:   "s-1",
		Question:    "Revenue by region?",
		DisplayText: "Here is a bar chart.",
		Route:       "structured_query",
		Chart:       json.RawMessage(`{"chart_details":{"type":"bar","x_col":"region","y_col":"revenue"},"data":[]}`),
		DurationMs:  120,
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	require.Eventually(t, func() bool {
		n, _ := repo.Count(ctx)
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)

	logs, _ := repo.FindAll(ctx)
	assert.Equal(t, "alice", logs[0].UserId)
	require.NotNil(t, logs[0].SessionId)
	assert.Equal(t, "s-1", *logs[0].SessionId)
	assert.Equal(t, int64(120), logs[0].DurationMs)
	assert.JSONEq(t, `{"chart_details":{"type":"bar","x_col":"region","y_col":"revenue"},"data":[]}`, string(logs[0].Chart))
}

func TestConsumerNacksOnStorageError(t *testing.T) {
	repo := &fakeQueryLogRepo{err: errors.New("db down")}
	cs := &consumerService{uowFactory: &logUowFactory{repo: repo}, logger: logger.NewNopLogger()}

	payload, _ := json.Marshal(dto.QueryAnsweredMessage{UserId: "alice", Question: "q"})
	msg := message.NewMessage(watermill.NewUUID(), payload)
	cs.processMessage(context.Background(), msg)

	select {
	case <-msg.Nacked():
	case <-time.After(time.Second):
		t.Fatal("message was not nacked")
	}
}
