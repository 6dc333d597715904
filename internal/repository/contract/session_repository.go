package contract

import (
	"context"

	"insightgpt-be/internal/entity"
)

// SessionRepository stores chat sessions and each user's session index.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	// Get returns nil, nil when the session does not exist.
	Get(ctx context.Context, id string) (*entity.Session, error)
	// AddToUser records id as the user's newest session.
	AddToUser(ctx context.Context, userId, id string) error
	// ListIds returns the user's session ids, newest first.
	ListIds(ctx context.Context, userId string) ([]string, error)
}
