package service

import (
	"context"
	"encoding/json"

	"insightgpt-be/internal/dto"
	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService writes every answered query to the audit log.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.QueryAnsweredMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // a malformed message never becomes valid; drop it
		return
	}

	var sessionId *string
	if payload.SessionId != "" {
		sessionId = &payload.SessionId
	}

	record := &entity.QueryLog{
		Id:          uuid.New(),
		UserId:      payload.UserId,
		SessionId:   sessionId,
		Question:    payload.Question,
		DisplayText: payload.DisplayText,
		Route:       payload.Route,
		Failure:     payload.Failure,
		Chart:       payload.Chart,
		DurationMs:  payload.DurationMs,
		CreatedAt:   payload.AnsweredAt,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.QueryLogRepository().Create(ctx, record); err != nil {
		cs.logger.Error("Consumer", "Failed to store query log", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
