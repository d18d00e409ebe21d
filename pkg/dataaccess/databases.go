package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/sam/pkg/dataaccess/connection"
	"github.com/Jacobbrewer1/sam/pkg/logging"
	"github.com/mattn/go-sqlite3"
)

// ErrMissingStorePath is returned when the connector is created without a database file.
var ErrMissingStorePath = errors.New("database filepath and/or filename hasn't been set")

// Connector is the entity store. Every method opens its own connection scope and releases it before returning.
type Connector interface {
	IModuleRoleDal
	IModmailDal
	IBotOnlyDal
	IGroupExchangeDal

	// Ping checks that the database file can be opened and queried.
	Ping(ctx context.Context) error
}

type connector struct {
	// l is the logger.
	l *slog.Logger

	// db describes the database file.
	db *connection.SQLite
}

// NewConnector creates the entity store backed by the SQLite file at path and applies the init script once. A failing
// schema statement is logged and skipped. An empty init script path applies the default schema.
func NewConnector(ctx context.Context, l *slog.Logger, path string, initScript string) (Connector, error) {
	if path == "" {
		return nil, ErrMissingStorePath
	}
	if l == nil {
		l = slog.Default()
	}

	c := &connector{
		l:  l,
		db: &connection.SQLite{Path: path},
	}

	script, err := ReadScript(initScript)
	if err != nil {
		return nil, err
	}

	_, statErr := os.Stat(path)
	fresh := errors.Is(statErr, os.ErrNotExist)

	statements := ParseScript(script)
	applied := 0
	err = c.withScope(ctx, func(s *scope) error {
		applied = applySchema(ctx, l.With(slog.String(logging.KeyDal, schemaDalName)), s.db, statements)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error initialising database: %w", err)
	}

	l.Info("Database initialised",
		slog.String("path", path),
		slog.Bool("fresh", fresh),
		slog.Int("statements", len(statements)),
		slog.Int("applied", applied),
	)

	return c, nil
}

func (c *connector) Ping(ctx context.Context) error {
	return c.withScope(ctx, func(s *scope) error {
		defer s.observe("connector", "ping")()

		if err := s.db.PingContext(ctx); err != nil {
			return fmt.Errorf("error pinging database: %w", err)
		}
		return nil
	})
}

// logger returns the connector logger for a data access layer.
func (c *connector) logger(dal string) *slog.Logger {
	return c.l.With(slog.String(logging.KeyDal, dal))
}

// IsConstraintViolation reports whether err was caused by a violated constraint, such as inserting a duplicate key.
func IsConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
