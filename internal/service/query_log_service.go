package service

import (
	"context"

	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/repository/specification"
	"insightgpt-be/internal/repository/unitofwork"
)

const defaultQueryLogPageSize = 20

type QueryLogFilter struct {
	Route      string
	FailedOnly bool
	Limit      int
	Offset     int
}

type IQueryLogService interface {
	// List returns one page of the caller's audit trail, newest first, and
	// the number of entries matching the filter across all pages.
	List(ctx context.Context, userId string, filter QueryLogFilter) ([]*entity.QueryLog, int64, error)
}

type queryLogService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewQueryLogService(uowFactory unitofwork.RepositoryFactory) IQueryLogService {
	return &queryLogService{uowFactory: uowFactory}
}

func (s *queryLogService) List(ctx context.Context, userId string, filter QueryLogFilter) ([]*entity.QueryLog, int64, error) {
	specs := []specification.Specification{specification.ByUserID{UserID: userId}}
	if filter.Route != "" {
		specs = append(specs, specification.ByRoute{Route: filter.Route})
	}
	if filter.FailedOnly {
		specs = append(specs, specification.WithFailure{})
	}

	repo := s.uowFactory.NewUnitOfWork(ctx).QueryLogRepository()

	total, err := repo.Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultQueryLogPageSize
	}
	page := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: filter.Offset},
	)
	logs, err := repo.FindAll(ctx, page...)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
