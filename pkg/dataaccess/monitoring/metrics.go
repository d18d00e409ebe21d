package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SQLiteLatency is the duration of SQLite queries.
	SQLiteLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_sqlite_latency",
			Help: "Duration of SQLite queries",
		},
		[]string{"dal", "query"},
	)

	// SQLiteTotalRequests is the total number of SQLite requests.
	SQLiteTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_sqlite_total_requests",
			Help: "Total number of SQLite requests",
		},
		[]string{"dal", "query"},
	)

	// SQLiteErrors is the total number of failed SQLite requests.
	SQLiteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_sqlite_errors",
			Help: "Total number of failed SQLite requests",
		},
		[]string{"dal", "query"},
	)

	// SchemaStatementsSkipped is the number of schema statements that failed during bootstrap.
	SchemaStatementsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataaccess_schema_statements_skipped",
			Help: "Number of schema statements that failed and were skipped during bootstrap",
		},
	)
)
