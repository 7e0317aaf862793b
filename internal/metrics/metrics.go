// Package metrics provides Prometheus metrics for the planner and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PlansTotal counts planning runs by outcome.
	PlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_plans_total",
			Help: "Total number of route planning runs",
		},
		[]string{"status"},
	)

	// PlanDuration tracks wall time spent planning.
	PlanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "route_plan_duration_seconds",
			Help:    "Route planning duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
	)

	// PlanReloads observes depot visits per plan.
	PlanReloads = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "route_plan_reloads",
			Help:    "Number of depot reloads per plan",
			Buckets: prometheus.LinearBuckets(1, 2, 10),
		},
	)

	// PlanElapsedHours observes the planned tour length.
	PlanElapsedHours = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "route_plan_elapsed_hours",
			Help:    "Planned tour duration (travel and stops) in hours",
			Buckets: prometheus.LinearBuckets(1, 1, 12),
		},
	)

	// DistanceCacheTotal tracks distance cache lookups.
	DistanceCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "distance_cache_lookups_total",
			Help: "Distance cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordPlan records metrics for one planning run.
func RecordPlan(duration time.Duration, status string, reloads int, elapsed time.Duration) {
	PlanDuration.Observe(duration.Seconds())
	PlansTotal.WithLabelValues(status).Inc()
	if status == "ok" || status == "overtime" {
		PlanReloads.Observe(float64(reloads))
		PlanElapsedHours.Observe(elapsed.Hours())
	}
}

// RecordDistanceCache records hit and miss counts for one batched lookup.
func RecordDistanceCache(hits, misses int) {
	if hits > 0 {
		DistanceCacheTotal.WithLabelValues("hit").Add(float64(hits))
	}
	if misses > 0 {
		DistanceCacheTotal.WithLabelValues("miss").Add(float64(misses))
	}
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	HTTPRequestTotal.WithLabelValues(method, path, code).Inc()
}
