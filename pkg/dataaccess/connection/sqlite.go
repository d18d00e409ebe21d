package connection

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	dbMonitoring "github.com/Jacobbrewer1/sam/pkg/dataaccess/monitoring"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DriverName is the name of the SQLite driver.
	DriverName = "sqlite3"

	// defaultBusyTimeout is how long a connection waits for the file lock held by another writer.
	defaultBusyTimeout = 5 * time.Second
)

// ErrNoPath is returned when no database file has been configured.
var ErrNoPath = errors.New("no database file path provided")

// SQLite describes a single-file SQLite database.
type SQLite struct {
	// Path is the path of the database file.
	Path string

	// BusyTimeout is how long to wait on a locked database. Defaults to 5 seconds.
	BusyTimeout time.Duration

	// Args are extra driver arguments appended to the DSN.
	Args url.Values
}

// DataSourceName builds the DSN passed to the driver.
func (s *SQLite) DataSourceName() string {
	args := url.Values{}
	for k, v := range s.Args {
		args[k] = v
	}

	busy := s.BusyTimeout
	if busy <= 0 {
		busy = defaultBusyTimeout
	}

	args.Set("_busy_timeout", fmt.Sprintf("%d", busy.Milliseconds()))
	args.Set("_foreign_keys", "on")

	// The path is percent-encoded, SQLite would otherwise cut the file name at the first '?' or '#'.
	path := (&url.URL{Path: s.Path}).EscapedPath()
	return "file:" + path + "?" + args.Encode()
}

// Open opens a handle to the database file. The handle is limited to a single connection and must be closed by the
// caller.
func (s *SQLite) Open(ctx context.Context) (*sqlx.DB, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, ErrNoPath
	}

	t := prometheus.NewTimer(dbMonitoring.SQLiteLatency.WithLabelValues("connection", "open"))
	defer t.ObserveDuration()
	dbMonitoring.SQLiteTotalRequests.WithLabelValues("connection", "open").Inc()

	db, err := sqlx.ConnectContext(ctx, DriverName, s.DataSourceName())
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}
