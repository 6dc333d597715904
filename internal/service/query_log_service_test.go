package service

import (
	"context"
	"testing"

	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryLogServiceList(t *testing.T) {
	newest := specification.OrderBy{Field: "created_at", Desc: true}

	tests := []struct {
		name       string
		filter     QueryLogFilter
		wantCount  []specification.Specification
		wantFinder []specification.Specification
	}{
		{
			name:      "owner only with default page",
			filter:    QueryLogFilter{},
			wantCount: []specification.Specification{specification.ByUserID{UserID: "alice"}},
			wantFinder: []specification.Specification{
				specification.ByUserID{UserID: "alice"},
				newest,
				specification.Pagination{Limit: defaultQueryLogPageSize},
			},
		},
		{
			name:   "route and failures",
			filter: QueryLogFilter{Route: "SQLDatabase", FailedOnly: true, Limit: 5, Offset: 10},
			wantCount: []specification.Specification{
				specification.ByUserID{UserID: "alice"},
				specification.ByRoute{Route: "SQLDatabase"},
				specification.WithFailure{},
			},
			wantFinder: []specification.Specification{
				specification.ByUserID{UserID: "alice"},
				specification.ByRoute{Route: "SQLDatabase"},
				specification.WithFailure{},
				newest,
				specification.Pagination{Limit: 5, Offset: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeQueryLogRepo{created: []*entity.QueryLog{{Question: "q1"}, {Question: "q2"}}}
			svc := NewQueryLogService(&logUowFactory{repo: repo})

			logs, total, err := svc.List(context.Background(), "alice", tt.filter)
			require.NoError(t, err)
			assert.Len(t, logs, 2)
			assert.Equal(t, int64(2), total)
			assert.Equal(t, tt.wantCount, repo.countSpecs)
			assert.Equal(t, tt.wantFinder, repo.findSpecs)
		})
	}
}
