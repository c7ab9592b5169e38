// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "musa_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "musa_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	UsersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "musa_users_registered_total",
			Help: "Total number of successful registrations",
		},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "musa_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	PlaylistsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "musa_playlists_created_total",
			Help: "Total number of playlists created",
		},
	)

	RateLimitBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "musa_rate_limit_blocked_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "musa_active_sessions",
			Help: "Number of issued session tokens",
		},
	)
)
