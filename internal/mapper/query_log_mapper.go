package mapper

import (
	"encoding/json"

	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/model"

	"gorm.io/datatypes"
)

type QueryLogMapper struct{}

func NewQueryLogMapper() *QueryLogMapper {
	return &QueryLogMapper{}
}

func (m *QueryLogMapper) ToEntity(l *model.QueryLog) *entity.QueryLog {
	if l == nil {
		return nil
	}
	var chart json.RawMessage
	if len(l.Chart) > 0 {
		chart = json.RawMessage(l.Chart)
	}
	return &entity.QueryLog{
		Id:          l.Id,
		UserId:      l.UserId,
		SessionId:   l.SessionId,
		Question:    l.Question,
		DisplayText: l.DisplayText,
		Route:       l.Route,
		Failure:     l.Failure,
		Chart:       chart,
		DurationMs:  l.DurationMs,
		CreatedAt:   l.CreatedAt,
	}
}

func (m *QueryLogMapper) ToModel(l *entity.QueryLog) *model.QueryLog {
	if l == nil {
		return nil
	}
	var chart datatypes.JSON
	if len(l.Chart) > 0 {
		chart = datatypes.JSON(l.Chart)
	}
	return &model.QueryLog{
		Id:          l.Id,
		UserId:      l.UserId,
		SessionId:   l.SessionId,
		Question:    l.Question,
		DisplayText: l.DisplayText,
		Route:       l.Route,
		Failure:     l.Failure,
		Chart:       chart,
		DurationMs:  l.DurationMs,
		CreatedAt:   l.CreatedAt,
	}
}
