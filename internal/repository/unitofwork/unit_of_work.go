// Package unitofwork scopes repositories to one connection or one transaction.
package unitofwork

import (
	"context"
	"errors"

	"insightgpt-be/internal/repository/contract"
)

var (
	ErrTxActive = errors.New("transaction already started")
	ErrNoTx     = errors.New("no active transaction")
)

// UnitOfWork hands out repositories bound to the same handle. After Begin
// they all share the transaction until Commit or Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentChunkRepository() contract.DocumentChunkRepository
	QueryLogRepository() contract.QueryLogRepository
}

type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
