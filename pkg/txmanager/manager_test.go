package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityService/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) ExecContext(context.Context, string, ...any) (sql.Result, error) { return nil, nil }
func (t *fakeTx) QueryContext(context.Context, string, ...any) (*sql.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRowContext(context.Context, string, ...any) *sql.Row        { return nil }

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	opts     *sql.TxOptions
	begun    int
	beginErr error
}

func (d *fakeDB) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	d.begun++
	d.opts = opts
	return d.tx, nil
}

func TestDoSerializable_Commits(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, db.opts.Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	failure := errors.New("conflict")

	err := NewTransactionManager(db).Do(context.Background(), func(context.Context) error {
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}

func TestDo_NestedCallJoinsOuterTransaction(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, db.begun)
}

func TestDo_BeginAndCommitErrors(t *testing.T) {
	err := NewTransactionManager(&fakeDB{beginErr: errors.New("no conn")}).
		Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)

	db := &fakeDB{tx: &fakeTx{commitErr: errors.New("serialization failure")}}
	err = NewTransactionManager(db).DoReadOnly(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCommitTx)
	assert.True(t, db.opts.ReadOnly)
}

func TestDo_RollsBackOnPanic(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}

	assert.Panics(t, func() {
		_ = NewTransactionManager(db).Do(context.Background(), func(context.Context) error {
			panic("boom")
		})
	})
	assert.True(t, db.tx.rolledBack)
}
