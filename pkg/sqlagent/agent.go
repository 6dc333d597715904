// Package sqlagent answers questions about one analytics table by having a
// model write a read-only query, running it, and having the model describe
// the rows (or lay them out as a chart payload when a chart was asked for).
package sqlagent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"insightgpt-be/internal/constant"
	"insightgpt-be/internal/pkg/logger"
	"insightgpt-be/pkg/llm"
)

const moduleName = "SQLAgent"

type Column struct {
	Name string
	Type string
}

// Executor is the database side of the agent.
type Executor interface {
	Columns(ctx context.Context, table string) ([]Column, error)
	Query(ctx context.Context, query string, maxRows int) ([]map[string]interface{}, error)
}

type Agent struct {
	llm     llm.LLMProvider
	exec    Executor
	table   string
	maxRows int
	logger  logger.ILogger

	schemaMu sync.Mutex
	schema   string
}

func NewAgent(provider llm.LLMProvider, exec Executor, table string, maxRows int, log logger.ILogger) *Agent {
	if maxRows <= 0 {
		maxRows = 200
	}
	return &Agent{
		llm:     provider,
		exec:    exec,
		table:   table,
		maxRows: maxRows,
		logger:  log,
	}
}

// Execute answers question from the table. The returned text is either a
// natural-language answer or a chart payload.
func (a *Agent) Execute(ctx context.Context, question string) (string, error) {
	start := time.Now()

	schema, err := a.describe(ctx)
	if err != nil {
		return "", err
	}

	generated, err := a.llm.Generate(ctx, fmt.Sprintf(constant.SQLGenerationPromptTemplate, a.table, schema, a.maxRows, question))
	if err != nil {
		return "", fmt.Errorf("generate sql: %w", err)
	}

	query, err := Validate(llm.StripCodeFence(generated))
	if err != nil {
		a.logger.Warn(moduleName, "Rejected generated query", map[string]interface{}{
			"sql":   generated,
			"error": err.Error(),
		})
		return "", fmt.Errorf("generated query rejected: %w", err)
	}

	rows, err := a.exec.Query(ctx, query, a.maxRows)
	if err != nil {
		return "", fmt.Errorf("run query: %w", err)
	}

	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode rows: %w", err)
	}

	answer, err := a.llm.Generate(ctx, fmt.Sprintf(constant.SQLAnswerPromptTemplate, question, query, string(rowsJSON)))
	if err != nil {
		return "", fmt.Errorf("summarize rows: %w", err)
	}

	a.logger.Info(moduleName, "Query answered", map[string]interface{}{
		"sql":         query,
		"rows":        len(rows),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return llm.StripCodeFence(answer), nil
}

// describe lists the table's columns, cached after the first success.
func (a *Agent) describe(ctx context.Context) (string, error) {
	a.schemaMu.Lock()
	defer a.schemaMu.Unlock()

	if a.schema != "" {
		return a.schema, nil
	}

	cols, err := a.exec.Columns(ctx, a.table)
	if err != nil {
		return "", fmt.Errorf("describe table %s: %w", a.table, err)
	}
	if len(cols) == 0 {
		return "", errors.New("table " + a.table + " has no columns or does not exist")
	}

	var b strings.Builder
	for _, c := range cols {
		fmt.Fprintf(&b, "- %s (%s)\n", c.Name, strings.ToLower(c.Type))
	}
	a.schema = strings.TrimRight(b.String(), "\n")
	return a.schema, nil
}
