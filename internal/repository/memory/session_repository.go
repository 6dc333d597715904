package memory

import (
	"context"
	"sync"
	"time"

	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps sessions in process memory. It is used when Redis
// is unreachable at startup; contents are lost on restart.
type SessionRepository struct {
	cache *cache.Cache
	mu    sync.Mutex // guards the user index read-modify-write
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository() *SessionRepository {
	// Sessions never expire on their own; the janitor only sweeps deleted keys.
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func sessionKey(id string) string { return "session:" + id }

func userKey(userId string) string { return "user_sessions:" + userId }

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	cp := *session
	cp.Turns = append([]entity.ConversationTurn(nil), session.Turns...)
	r.cache.Set(sessionKey(session.Id), &cp, cache.NoExpiration)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	x, found := r.cache.Get(sessionKey(id))
	if !found {
		return nil, nil
	}
	stored := x.(*entity.Session)
	cp := *stored
	cp.Turns = append([]entity.ConversationTurn(nil), stored.Turns...)
	return &cp, nil
}

func (r *SessionRepository) AddToUser(ctx context.Context, userId, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	if x, found := r.cache.Get(userKey(userId)); found {
		ids = x.([]string)
	}
	updated := make([]string, 0, len(ids)+1)
	updated = append(updated, id)
	updated = append(updated, ids...)
	r.cache.Set(userKey(userId), updated, cache.NoExpiration)
	return nil
}

func (r *SessionRepository) ListIds(ctx context.Context, userId string) ([]string, error) {
	x, found := r.cache.Get(userKey(userId))
	if !found {
		return nil, nil
	}
	ids := x.([]string)
	return append([]string(nil), ids...), nil
}
