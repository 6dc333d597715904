// Package redis stores chat sessions in Redis: one JSON document per session
// under session:{id} and a newest-first list of ids under user_sessions:{user}.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/repository/contract"

	goredis "github.com/redis/go-redis/v9"
)

type SessionRepository struct {
	rdb *goredis.Client
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(rdb *goredis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func sessionKey(id string) string { return "session:" + id }

func userKey(userId string) string { return "user_sessions:" + userId }

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.rdb.Set(ctx, sessionKey(session.Id), data, 0).Err()
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

func (r *SessionRepository) AddToUser(ctx context.Context, userId, id string) error {
	return r.rdb.LPush(ctx, userKey(userId), id).Err()
}

func (r *SessionRepository) ListIds(ctx context.Context, userId string) ([]string, error) {
	return r.rdb.LRange(ctx, userKey(userId), 0, -1).Result()
}
