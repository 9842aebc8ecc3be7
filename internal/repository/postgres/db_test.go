package postgres

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestExecutor(t *testing.T) {
	db := &sqlx.DB{}
	tx := &sqlx.Tx{}

	assert.Same(t, db, executor(context.Background(), db))
	assert.Same(t, tx, executor(context.WithValue(context.Background(), txKey{}, tx), db))
}

func TestTransactor_JoinsOuterTransaction(t *testing.T) {
	// A nil db would panic on BeginTxx, so fn running proves no new transaction was opened.
	tr := NewTransactor(nil)
	outer := context.WithValue(context.Background(), txKey{}, &sqlx.Tx{})

	var got context.Context
	err := tr.WithinTx(outer, func(ctx context.Context) error {
		got = ctx
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, outer, got)
}
