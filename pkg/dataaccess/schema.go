package dataaccess

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Jacobbrewer1/sam/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/sam/pkg/logging"
	"github.com/jmoiron/sqlx"
)

const schemaDalName = "schema"

// DefaultSchema is the schema script applied when no init script is configured.
//
//go:embed sql/init_db.sql
var DefaultSchema string

// ParseScript splits a schema script into its statements. Statements are separated by a literal ';'; a ';' inside a
// string literal is not recognised and splits the statement.
func ParseScript(script string) []string {
	parts := strings.Split(script, ";")

	statements := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		statements = append(statements, p)
	}
	return statements
}

// ReadScript reads the schema script at the given path. An empty path returns the default schema.
func ReadScript(path string) (string, error) {
	if path == "" {
		return DefaultSchema, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading init script: %w", err)
	}
	return string(b), nil
}

// applySchema executes every statement on its own. A failing statement is logged and skipped, so the returned count
// is the number of statements that succeeded.
func applySchema(ctx context.Context, l *slog.Logger, db *sqlx.DB, statements []string) int {
	applied := 0
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			monitoring.SchemaStatementsSkipped.Inc()
			l.Warn("Schema statement could not be executed, skipping it",
				slog.String(logging.KeyQuery, firstLine(stmt)),
				slog.String(logging.KeyError, err.Error()),
			)
			continue
		}
		applied++
	}
	return applied
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
