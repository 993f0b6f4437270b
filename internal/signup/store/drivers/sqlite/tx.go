package sqlite

import (
	"context"
	"database/sql"

	"github.com/delveng/signup/internal/signup/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer Store owns the connection.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(context.Context) error { return nil }

func (t *txStore) Tx(context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(context.Context, func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) SessionTokens() store.SessionTokens { return &sessionTokensRepo{db: t.tx} }
func (t *txStore) Attempts() store.Attempts           { return &attemptsRepo{db: t.tx} }

// migrations run against the Store before any transaction is opened
func (t *txStore) ApplyMigrations() error { return nil }
