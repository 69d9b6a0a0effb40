package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScoreComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jft_score_compute_duration_seconds",
			Help:    "Duration of score computations including provider reads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	ScoreComputeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jft_score_compute_errors_total",
			Help: "Score computations aborted by a failed provider read",
		},
		[]string{"operation", "provider"},
	)

	ScoredDays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jft_scored_days_total",
			Help: "Day records produced by the daily score calculator",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jft_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	SettingsCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jft_settings_cache_hits_total",
			Help: "Settings reads served from Redis",
		},
	)

	SettingsCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jft_settings_cache_misses_total",
			Help: "Settings reads that fell through to the store",
		},
	)
)
