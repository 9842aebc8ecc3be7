package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"glosaguard/internal/config"
	"glosaguard/internal/metrics"
	"glosaguard/internal/port"
)

// NewDB creates a new PostgreSQL connection pool.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}

// observe records the duration of a repository call. Use as
// defer observe("op", time.Now()).
func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}

type txKey struct{}

type transactor struct {
	db *sqlx.DB
}

// NewTransactor creates a port.Transactor over db. Repositories built on the
// same db join the transaction through the context.
func NewTransactor(db *sqlx.DB) port.Transactor {
	return &transactor{db: db}
}

// WithinTx runs fn in a transaction, or inside the caller's transaction when
// ctx already carries one.
func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transactor.WithinTx begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("transactor.WithinTx commit: %w", err)
	}
	return nil
}

// executor returns the transaction carried by ctx, or db.
func executor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}
