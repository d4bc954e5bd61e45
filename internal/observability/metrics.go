package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CascadeDeletions counts thoughts removed when their author is deleted.
	CascadeDeletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_cascade_deletions_total",
		Help: "Total number of thoughts deleted by user-deletion cascades",
	})

	// OrphanedThoughts counts thoughts created for usernames with no matching user.
	OrphanedThoughts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_orphaned_thoughts_total",
		Help: "Total number of thoughts created without a matching author",
	})

	// PartialWrites counts two-step writes whose second step failed.
	PartialWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_partial_writes_total",
		Help: "Total number of cross-entity writes that completed only partially",
	}, []string{"operation"})
)

const queryStartKey = "ripple:query_start"

// QueryMetricsPlugin is a GORM plugin that records per-query latency into
// DatabaseQueryLatency, labeled by operation and table.
type QueryMetricsPlugin struct{}

// Name implements gorm.Plugin.
func (QueryMetricsPlugin) Name() string { return "ripple:query_metrics" }

// Initialize implements gorm.Plugin, hooking before/after callbacks on every
// operation type.
func (QueryMetricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	errs := []error{
		cb.Create().Before("gorm:create").Register("ripple:metrics_start_create", markQueryStart),
		cb.Create().After("gorm:create").Register("ripple:metrics_observe_create", observeQuery("create")),
		cb.Query().Before("gorm:query").Register("ripple:metrics_start_query", markQueryStart),
		cb.Query().After("gorm:query").Register("ripple:metrics_observe_query", observeQuery("query")),
		cb.Update().Before("gorm:update").Register("ripple:metrics_start_update", markQueryStart),
		cb.Update().After("gorm:update").Register("ripple:metrics_observe_update", observeQuery("update")),
		cb.Delete().Before("gorm:delete").Register("ripple:metrics_start_delete", markQueryStart),
		cb.Delete().After("gorm:delete").Register("ripple:metrics_observe_delete", observeQuery("delete")),
		cb.Row().Before("gorm:row").Register("ripple:metrics_start_row", markQueryStart),
		cb.Row().After("gorm:row").Register("ripple:metrics_observe_row", observeQuery("row")),
		cb.Raw().Before("gorm:raw").Register("ripple:metrics_start_raw", markQueryStart),
		cb.Raw().After("gorm:raw").Register("ripple:metrics_observe_raw", observeQuery("raw")),
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func markQueryStart(tx *gorm.DB) {
	tx.InstanceSet(queryStartKey, time.Now())
}

func observeQuery(operation string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		table := tx.Statement.Table
		if table == "" {
			table = "unknown"
		}
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
