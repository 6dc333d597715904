package sqlagent

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GormExecutor runs agent queries inside read-only transactions.
type GormExecutor struct {
	db *gorm.DB
}

func NewGormExecutor(db *gorm.DB) *GormExecutor {
	return &GormExecutor{db: db}
}

func (e *GormExecutor) Columns(ctx context.Context, table string) ([]Column, error) {
	types, err := e.db.WithContext(ctx).Migrator().ColumnTypes(table)
	if err != nil {
		return nil, err
	}
	cols := make([]Column, 0, len(types))
	for _, ct := range types {
		cols = append(cols, Column{Name: ct.Name(), Type: ct.DatabaseTypeName()})
	}
	return cols, nil
}

func (e *GormExecutor) Query(ctx context.Context, query string, maxRows int) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET TRANSACTION READ ONLY").Error; err != nil {
			return err
		}
		limited := fmt.Sprintf("SELECT * FROM (%s) AS agent_query LIMIT %d", query, maxRows)
		return tx.Raw(limited).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		for k, v := range row {
			row[k] = normalizeValue(v)
		}
	}
	return rows, nil
}

// normalizeValue turns driver values into JSON-friendly ones.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return v
	}
}
