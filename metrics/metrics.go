package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crumbs_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crumbs_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	stockAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crumbs_stock_adjustments_total",
		Help: "Count of add-stock operations by result",
	}, []string{"result"})

	adminActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crumbs_admin_actions_total",
		Help: "Count of user administration actions by action and result",
	}, []string{"action", "result"})

	dashboardDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crumbs_dashboard_duration_seconds",
		Help:    "Duration of dashboard aggregation fan-outs",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func ObserveStockAdjustment(result string) {
	stockAdjustments.WithLabelValues(result).Inc()
}

func ObserveAdminAction(action, result string) {
	adminActions.WithLabelValues(action, result).Inc()
}

func ObserveDashboard(result string, duration time.Duration) {
	dashboardDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// Result labels an operation outcome for the counters above.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
