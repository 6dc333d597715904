package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/internal/repository/contract"

	"github.com/google/uuid"
)

const untitledSession = "Untitled Chat"

type ISessionService interface {
	Create(ctx context.Context, userId string, turns []entity.ConversationTurn) (string, error)
	Replace(ctx context.Context, userId, id string, turns []entity.ConversationTurn) error
	Append(ctx context.Context, userId, id string, turns ...entity.ConversationTurn) error
	Get(ctx context.Context, userId, id string) (*entity.Session, error)
	List(ctx context.Context, userId string) ([]entity.SessionSummary, error)
}

type sessionService struct {
	repo        contract.SessionRepository
	guestPrefix string
	logger      logger.ILogger
	now         func() time.Time

	// striped locks serialize read-modify-write on one session
	locks [32]sync.Mutex
}

func NewSessionService(repo contract.SessionRepository, guestPrefix string, log logger.ILogger) ISessionService {
	return &sessionService{
		repo:        repo,
		guestPrefix: guestPrefix,
		logger:      log,
		now:         time.Now,
	}
}

func (s *sessionService) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%uint32(len(s.locks))]
}

func (s *sessionService) Create(ctx context.Context, userId string, turns []entity.ConversationTurn) (string, error) {
	if IsGuest(userId, s.guestPrefix) {
		return "", ErrGuestSession
	}

	now := s.now()
	session := &entity.Session{
		Id:        uuid.NewString(),
		UserId:    userId,
		Title:     titleFor(turns),
		Turns:     turns,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	if err := s.repo.AddToUser(ctx, userId, session.Id); err != nil {
		return "", fmt.Errorf("index session: %w", err)
	}

	s.logger.Info("SessionService", "Session created", map[string]interface{}{
		"user_id":    userId,
		"session_id": session.Id,
		"turns":      len(turns),
	})
	return session.Id, nil
}

func (s *sessionService) Replace(ctx context.Context, userId, id string, turns []entity.ConversationTurn) error {
	return s.update(ctx, userId, id, func(session *entity.Session) {
		session.Turns = turns
	})
}

func (s *sessionService) Append(ctx context.Context, userId, id string, turns ...entity.ConversationTurn) error {
	return s.update(ctx, userId, id, func(session *entity.Session) {
		session.Turns = append(session.Turns, turns...)
	})
}

func (s *sessionService) update(ctx context.Context, userId, id string, mutate func(*entity.Session)) error {
	if IsGuest(userId, s.guestPrefix) {
		return ErrGuestSession
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.load(ctx, userId, id)
	if err != nil {
		return err
	}

	mutate(session)
	session.Title = titleFor(session.Turns)
	session.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *sessionService) Get(ctx context.Context, userId, id string) (*entity.Session, error) {
	if IsGuest(userId, s.guestPrefix) {
		return nil, ErrNotFound
	}
	return s.load(ctx, userId, id)
}

func (s *sessionService) load(ctx context.Context, userId, id string) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrNotFound
	}
	if session.UserId != userId {
		return nil, ErrForbidden
	}
	return session, nil
}

// List returns the user's non-empty sessions, newest first.
func (s *sessionService) List(ctx context.Context, userId string) ([]entity.SessionSummary, error) {
	result := make([]entity.SessionSummary, 0)
	if IsGuest(userId, s.guestPrefix) {
		return result, nil
	}

	ids, err := s.repo.ListIds(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		session, err := s.repo.Get(ctx, id)
		if err != nil {
			s.logger.Warn("SessionService", "Skipping unreadable session", map[string]interface{}{
				"session_id": id,
				"error":      err.Error(),
			})
			continue
		}
		if session == nil || session.UserId != userId || len(session.Turns) == 0 {
			continue
		}
		result = append(result, entity.SessionSummary{
			Id:        session.Id,
			Title:     session.Title,
			UpdatedAt: session.UpdatedAt,
		})
	}
	return result, nil
}

func titleFor(turns []entity.ConversationTurn) string {
	if len(turns) == 0 {
		return untitledSession
	}
	if title := strings.TrimSpace(turns[0].Content); title != "" {
		return title
	}
	return untitledSession
}
