package service

import (
	"context"
	"encoding/json"
	"time"

	"insightgpt-be/internal/dto"
	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/ai/pipeline"
)

type IQueryService interface {
	Ask(ctx context.Context, userId string, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

// Answerer is satisfied by *pipeline.QueryPipeline.
type Answerer interface {
	Answer(ctx context.Context, question string) pipeline.FinalAnswer
}

type queryService struct {
	pipeline    Answerer
	sessions    ISessionService
	publisher   IPublisherService
	timeout     time.Duration
	guestPrefix string
	logger      logger.ILogger
}

func NewQueryService(
	answerer Answerer,
	sessions ISessionService,
	publisher IPublisherService,
	timeout time.Duration,
	guestPrefix string,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		pipeline:    answerer,
		sessions:    sessions,
		publisher:   publisher,
		timeout:     timeout,
		guestPrefix: guestPrefix,
		logger:      log,
	}
}

func (s *queryService) Ask(ctx context.Context, userId string, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	// Guests have no sessions; their session_id is ignored rather than rejected.
	saveTurns := req.SessionId != "" && !IsGuest(userId, s.guestPrefix)
	if saveTurns {
		if _, err := s.sessions.Get(ctx, userId, req.SessionId); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	answerCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		answerCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	answer := s.pipeline.Answer(answerCtx, req.Query)
	duration := time.Since(start)

	var chartJSON json.RawMessage
	if answer.Chart != nil {
		if b, err := json.Marshal(answer.Chart); err == nil {
			chartJSON = b
		}
	}

	if saveTurns {
		err := s.sessions.Append(ctx, userId, req.SessionId,
			entity.ConversationTurn{Role: entity.RoleUser, Content: req.Query},
			entity.ConversationTurn{Role: entity.RoleAssistant, Content: answer.DisplayText, Chart: chartJSON},
		)
		if err != nil {
			s.logger.Warn("QueryService", "Failed to append turns to session", map[string]interface{}{
				"session_id": req.SessionId,
				"error":      err.Error(),
			})
		}
	}

	s.publishAnswered(ctx, userId, req, answer, chartJSON, duration)

	return &dto.QueryResponse{
		Answer:  answer.DisplayText,
		Chart:   answer.Chart,
		Route:   string(answer.Route),
		Failure: string(answer.Failure),
	}, nil
}

func (s *queryService) publishAnswered(ctx context.Context, userId string, req *dto.QueryRequest, answer pipeline.FinalAnswer, chartJSON json.RawMessage, duration time.Duration) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(dto.QueryAnsweredMessage{
		UserId:      userId,
		SessionId:   req.SessionId,
		Question:    req.Query,
		DisplayText: answer.DisplayText,
		Route:       string(answer.Route),
		Failure:     string(answer.Failure),
		Chart:       chartJSON,
		DurationMs:  duration.Milliseconds(),
		AnsweredAt:  time.Now(),
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), payload); err != nil {
		s.logger.Warn("QueryService", "Failed to publish answered event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
