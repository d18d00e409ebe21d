package dataaccess

import (
	"context"
	"fmt"

	"github.com/Jacobbrewer1/sam/pkg/dataaccess/monitoring"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
)

// scope is a database handle that lives for a single operation.
type scope struct {
	db *sqlx.DB
}

// observe starts the prometheus metrics for a query. The returned function stops the timer.
func (s *scope) observe(dal, query string) func() {
	monitoring.SQLiteTotalRequests.WithLabelValues(dal, query).Inc()
	t := prometheus.NewTimer(monitoring.SQLiteLatency.WithLabelValues(dal, query))
	return func() {
		t.ObserveDuration()
	}
}

// withScope opens the database, runs fn and closes the database again, whether fn returns, fails or panics.
func (c *connector) withScope(ctx context.Context, fn func(s *scope) error) (err error) {
	db, err := c.db.Open(ctx)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing database: %w", closeErr)
		}
	}()

	return fn(&scope{db: db})
}

// withTx runs fn in a transaction inside a new scope. The transaction is committed only if fn succeeds, otherwise
// nothing fn wrote is persisted.
func (c *connector) withTx(ctx context.Context, dal, query string, fn func(tx *sqlx.Tx) error) error {
	return c.withScope(ctx, func(s *scope) error {
		// Start the prometheus metrics.
		defer s.observe(dal, query)()

		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("error starting transaction: %w", err)
		}
		// Rolling back a committed transaction is a no-op.
		defer tx.Rollback() // nolint:errcheck

		if err := fn(tx); err != nil {
			monitoring.SQLiteErrors.WithLabelValues(dal, query).Inc()
			return err
		}

		if err := tx.Commit(); err != nil {
			monitoring.SQLiteErrors.WithLabelValues(dal, query).Inc()
			return fmt.Errorf("error committing transaction: %w", err)
		}
		return nil
	})
}

// withRead runs a read-only fn inside a new scope.
func (c *connector) withRead(ctx context.Context, dal, query string, fn func(db *sqlx.DB) error) error {
	return c.withScope(ctx, func(s *scope) error {
		// Start the prometheus metrics.
		defer s.observe(dal, query)()

		if err := fn(s.db); err != nil {
			monitoring.SQLiteErrors.WithLabelValues(dal, query).Inc()
			return err
		}
		return nil
	})
}
