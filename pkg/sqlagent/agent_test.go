package sqlagent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM returns replies in order.
type scriptedLLM struct {
	replies []string
	err     error
	prompts []string
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r, nil
}

type fakeExecutor struct {
	columns     []Column
	rows        []map[string]interface{}
	queryErr    error
	queries     []string
	describeHit int
}

func (f *fakeExecutor) Columns(ctx context.Context, table string) ([]Column, error) {
	f.describeHit++
	return f.columns, nil
}

func (f *fakeExecutor) Query(ctx context.Context, query string, maxRows int) ([]map[string]interface{}, error) {
	f.queries = append(f.queries, query)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func salesExecutor() *fakeExecutor {
	return &fakeExecutor{
		columns: []Column{{Name: "region", Type: "TEXT"}, {Name: "revenue", Type: "NUMERIC"}},
		rows: []map[string]interface{}{
			{"region": "North", "total_revenue": 867.5},
			{"region": "South", "total_revenue": 120.0},
		},
	}
}

func TestAgentExecute(t *testing.T) {
	exec := salesExecutor()
	stub := &scriptedLLM{replies: []string{
		"```sql\nSELECT region, SUM(revenue) AS total_revenue FROM sales_data GROUP BY region;\n```",
		"North had the highest revenue at 867.5.",
	}}
	agent := NewAgent(stub, exec, "sales_data", 50, logger.NewNopLogger())

	out, err := agent.Execute(context.Background(), "Which region sold the most?")
	require.NoError(t, err)

	assert.Equal(t, "North had the highest revenue at 867.5.", out)
	require.Len(t, exec.queries, 1)
	assert.Equal(t, "SELECT region, SUM(revenue) AS total_revenue FROM sales_data GROUP BY region", exec.queries[0])

	require.Len(t, stub.prompts, 2)
	assert.Contains(t, stub.prompts[0], "- region (text)")
	assert.Contains(t, stub.prompts[0], "at most 50 rows")
	assert.Contains(t, stub.prompts[1], `"total_revenue":867.5`)
}

func TestAgentChartAnswerIsUnfenced(t *testing.T) {
	chartJSON := `{"chart_details":{"type":"bar","x_col":"region","y_col":"total_revenue"},"data":[{"region":"North","total_revenue":867.5}]}`
	stub := &scriptedLLM{replies: []string{
		"SELECT region, SUM(revenue) AS total_revenue FROM sales_data GROUP BY region",
		"```json\n" + chartJSON + "\n```",
	}}
	agent := NewAgent(stub, salesExecutor(), "sales_data", 0, logger.NewNopLogger())

	out, err := agent.Execute(context.Background(), "Show a bar chart of revenue by region")
	require.NoError(t, err)
	assert.Equal(t, chartJSON, out)
}

func TestAgentRejectsWrites(t *testing.T) {
	exec := salesExecutor()
	stub := &scriptedLLM{replies: []string{"DROP TABLE sales_data"}}
	agent := NewAgent(stub, exec, "sales_data", 10, logger.NewNopLogger())

	_, err := agent.Execute(context.Background(), "delete everything")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotReadOnly)
	assert.Empty(t, exec.queries)
}

func TestAgentFailures(t *testing.T) {
	t.Run("llm down", func(t *testing.T) {
		agent := NewAgent(&scriptedLLM{err: errors.New("connection refused")}, salesExecutor(), "sales_data", 10, logger.NewNopLogger())
		_, err := agent.Execute(context.Background(), "q")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "connection refused"))
	})

	t.Run("query error", func(t *testing.T) {
		exec := salesExecutor()
		exec.queryErr = errors.New(`column "revnue" does not exist`)
		agent := NewAgent(&scriptedLLM{replies: []string{"SELECT revnue FROM sales_data"}}, exec, "sales_data", 10, logger.NewNopLogger())
		_, err := agent.Execute(context.Background(), "q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "revnue")
	})

	t.Run("missing table", func(t *testing.T) {
		agent := NewAgent(&scriptedLLM{}, &fakeExecutor{}, "nope", 10, logger.NewNopLogger())
		_, err := agent.Execute(context.Background(), "q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope")
	})
}

func TestAgentCachesSchema(t *testing.T) {
	exec := salesExecutor()
	stub := &scriptedLLM{replies: []string{"SELECT 1", "one", "SELECT 2", "two"}}
	agent := NewAgent(stub, exec, "sales_data", 10, logger.NewNopLogger())

	_, err := agent.Execute(context.Background(), "a")
	require.NoError(t, err)
	_, err = agent.Execute(context.Background(), "b")
	require.NoError(t, err)

	assert.Equal(t, 1, exec.describeHit)
}
