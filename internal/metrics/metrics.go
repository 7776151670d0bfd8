package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	requestsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "collection_requests_created_total",
			Help: "Total number of data-collection requests created",
		},
	)

	responsesSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collection_responses_submitted_total",
			Help: "Total number of data-collection responses submitted",
		},
		[]string{"kind"}, // submitted, not_applicable
	)

	approvalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approvals_total",
			Help: "Total number of work approval operations",
		},
		[]string{"action"}, // created, approved
	)

	documentsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "documents_created_total",
			Help: "Total number of documents created",
		},
	)

	exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exports_total",
			Help: "Total number of CSV exports generated",
		},
		[]string{"ledger"}, // collection, approval
	)

	websocketSessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_sessions_active",
			Help: "Number of connected change-feed sessions",
		},
	)

	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	databaseConnectionsMax = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_max",
			Help: "Maximum number of database connections",
		},
	)
)

var once sync.Once

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(requestsCreatedTotal)
	prometheus.MustRegister(responsesSubmittedTotal)
	prometheus.MustRegister(approvalsTotal)
	prometheus.MustRegister(documentsCreatedTotal)
	prometheus.MustRegister(exportsTotal)
	prometheus.MustRegister(websocketSessionsActive)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)
	prometheus.MustRegister(databaseConnectionsMax)

	once.Do(func() {
		// Runtime collectors may already be registered by other packages.
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest records one handled HTTP request.
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordRequestCreated records one data-collection request creation.
func RecordRequestCreated() {
	requestsCreatedTotal.Inc()
}

// RecordResponseSubmitted records one response submission.
func RecordResponseSubmitted(notApplicable bool) {
	kind := "submitted"
	if notApplicable {
		kind = "not_applicable"
	}
	responsesSubmittedTotal.WithLabelValues(kind).Inc()
}

// RecordApproval records one work approval operation.
func RecordApproval(action string) {
	approvalsTotal.WithLabelValues(action).Inc()
}

// RecordDocumentCreated records one document creation.
func RecordDocumentCreated() {
	documentsCreatedTotal.Inc()
}

// RecordExport records one CSV export.
func RecordExport(ledger string) {
	exportsTotal.WithLabelValues(ledger).Inc()
}

// SetWebsocketSessions tracks the connected change-feed session count.
func SetWebsocketSessions(count int) {
	websocketSessionsActive.Set(float64(count))
}

// UpdateDatabaseConnections refreshes the connection pool gauges.
func UpdateDatabaseConnections(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.OpenConnections - stats.Idle))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	databaseConnectionsMax.Set(float64(stats.MaxOpenConnections))

	return nil
}
