package dataaccess

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestWithTx_RollsBackOnError(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()
	errBoom := errors.New("boom")

	err := c.withTx(ctx, "test", "rollback", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insertModuleRoleSql, 7); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	ok, err := c.IsModuleRole(ctx, 7)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	c := newTestConnector(t)
	ctx := context.Background()

	require.Panics(t, func() {
		_ = c.withTx(ctx, "test", "panic", func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, insertModuleRoleSql, 8); err != nil {
				return err
			}
			panic("boom")
		})
	})

	// The handle was released, so the next operation can take the write lock.
	require.NoError(t, c.AddModuleRole(ctx, 9))

	ok, err := c.IsModuleRole(ctx, 8)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWithScope_ClosesHandle(t *testing.T) {
	c := newTestConnector(t)

	var leaked *sqlx.DB
	require.NoError(t, c.withScope(context.Background(), func(s *scope) error {
		leaked = s.db
		return s.db.Ping()
	}))

	require.Error(t, leaked.Ping())
}
